package worker

import (
	"context"
	"encoding/json"
	"maps"
	"sync"

	"spectre/internal/domain/types"
)

// UserState mirrors the worker's identity as seen by the caller.
type UserState struct {
	UserName      string
	Pending       bool
	Authenticated bool
	Identicon     *types.Identicon
	Error         string
	Cause         string
}

// SiteState mirrors the most recent site operation and every result received.
type SiteState struct {
	Pending bool
	Error   string
	Cause   string
	Results map[types.ResultKey]string
}

// State is a copy of the client's view.
type State struct {
	User UserState
	Site SiteState
}

// Client sends Requests to a worker and folds its Responses into State.
// Responses for a userName other than the client's current one are dropped.
type Client struct {
	requests chan<- types.Request

	mu        sync.Mutex
	user      UserState
	site      SiteState
	observers []func(State)
	changed   chan struct{}
}

// NewClient returns a client sending on requests. Feed it responses with Consume.
func NewClient(requests chan<- types.Request) *Client {
	return &Client{
		requests: requests,
		site:     SiteState{Results: make(map[types.ResultKey]string)},
		changed:  make(chan struct{}),
	}
}

// Connect starts wk on a private request stream and returns a client bound to it.
// The worker stops when ctx is done.
func Connect(ctx context.Context, wk *Worker) *Client {
	in := make(chan types.Request, 16)
	c := NewClient(in)
	go c.Consume(wk.Run(ctx, in))
	return c
}

// Observe registers fn to be called with the new state after every change.
func (c *Client) Observe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// State returns a copy of the current view.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Authenticate asks the worker to derive the identity of userName.
func (c *Client) Authenticate(ctx context.Context, userName, userSecret string, version types.AlgorithmVersion) error {
	c.update(func() {
		c.user.Pending = true
		c.user.UserName = userName
	})
	return c.send(ctx, types.Request{
		UserName:         userName,
		UserSecret:       userSecret,
		AlgorithmVersion: &version,
	})
}

// Invalidate asks the worker to forget the client's current identity.
func (c *Client) Invalidate(ctx context.Context) error {
	var userName string
	c.update(func() {
		c.user.Pending = true
		c.site.Pending = true
		userName = c.user.UserName
	})
	return c.send(ctx, types.Request{UserName: userName, Invalidate: true})
}

// Password requests an authentication result for siteName.
func (c *Client) Password(ctx context.Context, siteName string, resultType types.ResultType, counter types.Counter, keyContext *string) error {
	return c.Request(ctx, siteName, resultType, counter, types.PurposeAuthentication, keyContext)
}

// Login requests an identification result for siteName.
func (c *Client) Login(ctx context.Context, siteName string, resultType types.ResultType, counter types.Counter, keyContext *string) error {
	return c.Request(ctx, siteName, resultType, counter, types.PurposeIdentification, keyContext)
}

// Answer requests a recovery result for siteName.
func (c *Client) Answer(ctx context.Context, siteName string, resultType types.ResultType, counter types.Counter, keyContext *string) error {
	return c.Request(ctx, siteName, resultType, counter, types.PurposeRecovery, keyContext)
}

// Request asks the worker for a site result. Zero resultType and counter take
// the worker's defaults.
func (c *Client) Request(
	ctx context.Context,
	siteName string,
	resultType types.ResultType,
	counter types.Counter,
	purpose types.Purpose,
	keyContext *string,
) error {
	var userName string
	c.update(func() {
		c.site.Pending = true
		userName = c.user.UserName
	})
	return c.send(ctx, types.Request{
		UserName:   userName,
		SiteName:   siteName,
		ResultType: optionalNumber(uint64(resultType)),
		KeyCounter: optionalNumber(uint64(counter)),
		KeyPurpose: purpose.Scope(),
		KeyContext: keyContext,
	})
}

// Result returns the last result received for the (siteName, purpose, context) slot.
func (c *Client) Result(siteName string, purpose types.Purpose, keyContext *string) (string, bool) {
	key := types.SiteParams{SiteName: siteName, Purpose: purpose, Context: keyContext}.CacheKey()
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.site.Results[key]
	return res, ok
}

// Wait blocks until done reports true for the current state, or ctx is done.
func (c *Client) Wait(ctx context.Context, done func(State) bool) (State, error) {
	for {
		c.mu.Lock()
		st := c.stateLocked()
		changed := c.changed
		c.mu.Unlock()
		if done(st) {
			return st, nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

// Consume applies responses until the stream closes.
func (c *Client) Consume(responses <-chan types.Response) {
	for resp := range responses {
		c.Apply(resp)
	}
}

// Apply folds one response into the client's state.
func (c *Client) Apply(resp types.Response) {
	c.mu.Lock()
	if resp.UserName != c.user.UserName {
		c.mu.Unlock()
		return
	}

	switch resp.Operation {
	case types.OperationInvalidate:
		c.user = UserState{}
		c.site = SiteState{Results: make(map[types.ResultKey]string)}
	case types.OperationIdenticon:
		c.user.Identicon = resp.UserIdenticon
		if resp.Failed() {
			c.user.Error, c.user.Cause = resp.Error, resp.Cause
		}
	case types.OperationUser:
		c.user.Pending = false
		c.user.Authenticated = !resp.Failed()
		c.user.Error, c.user.Cause = resp.Error, resp.Cause
	case types.OperationSite:
		c.site.Pending = false
		c.site.Error, c.site.Cause = resp.Error, resp.Cause
		if !resp.Failed() {
			purpose, _ := types.PurposeFromScope(resp.KeyPurpose)
			key := types.SiteParams{SiteName: resp.SiteName, Purpose: purpose, Context: resp.KeyContext}.CacheKey()
			c.site.Results[key] = resp.SiteResult
		}
	}
	c.notifyLocked()
}

func (c *Client) update(fn func()) {
	c.mu.Lock()
	fn()
	c.notifyLocked()
}

// notifyLocked wakes waiters and runs observers. It releases c.mu.
func (c *Client) notifyLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
	st := c.stateLocked()
	observers := append([]func(State){}, c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(st)
	}
}

func (c *Client) stateLocked() State {
	st := State{User: c.user, Site: c.site}
	st.Site.Results = maps.Clone(c.site.Results)
	return st
}

func (c *Client) send(ctx context.Context, req types.Request) error {
	select {
	case c.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func optionalNumber(v uint64) json.Number {
	if v == 0 {
		return ""
	}
	return types.Number(v)
}
