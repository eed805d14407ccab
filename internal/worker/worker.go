package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"spectre/internal/domain"
	"spectre/internal/domain/types"
	"spectre/internal/util/memzero"
)

// Default user-key derivation throttle. Each derivation holds 32 MiB of scrypt state.
const (
	DefaultDerivationRate  = 2.0
	DefaultDerivationBurst = 4
)

// Worker dispatches Requests to a session and reports each settled operation.
type Worker struct {
	session domain.SessionService
	log     *slog.Logger
	limiter *rate.Limiter
}

// Option configures a Worker.
type Option func(*Worker)

// WithLogger sets the worker's logger.
func WithLogger(log *slog.Logger) Option {
	return func(w *Worker) {
		if log != nil {
			w.log = log
		}
	}
}

// WithDerivationLimit throttles authentications to rps per second with the given
// burst. A non-positive rps disables throttling.
func WithDerivationLimit(rps float64, burst int) Option {
	return func(w *Worker) {
		if rps <= 0 {
			w.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		w.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New returns a worker over session.
func New(session domain.SessionService, opts ...Option) *Worker {
	w := &Worker{
		session: session,
		log:     slog.Default(),
		limiter: rate.NewLimiter(rate.Limit(DefaultDerivationRate), DefaultDerivationBurst),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With("component", "worker")
	return w
}

// Emit receives the responses of one request. It may be called from several
// goroutines at once.
type Emit func(types.Response)

// Handle performs every operation whose inputs are present in req.
//
// Invalidate short-circuits the rest of the request. Authentication happens
// when the request carries a secret or no identity exists, and is applied
// before Handle returns. Identicon, user and site responses are emitted
// asynchronously as their derivations settle; the returned wait blocks until
// all of them have been emitted.
func (w *Worker) Handle(ctx context.Context, req types.Request, emit Emit) (wait func()) {
	var wg sync.WaitGroup

	if req.Invalidate {
		previous := w.session.Invalidate(req.UserName)
		emit(types.Response{Operation: types.OperationInvalidate, UserName: previous})
		return wg.Wait
	}

	if req.UserSecret != "" || w.session.CurrentUserName() == "" {
		w.authenticate(ctx, req, emit, &wg)
	}

	if req.SiteName != "" {
		w.site(ctx, req, emit, &wg)
	}
	return wg.Wait
}

func (w *Worker) authenticate(ctx context.Context, req types.Request, emit Emit, wg *sync.WaitGroup) {
	version := types.AlgorithmCurrent
	if req.AlgorithmVersion != nil {
		version = *req.AlgorithmVersion
	}

	if w.limiter != nil {
		if err := w.limiter.Wait(ctx); err != nil {
			w.emitUserFailure(req.UserName, err, emit)
			return
		}
	}

	secret := []byte(req.UserSecret)
	auth, err := w.session.Authenticate(req.UserName, secret, version)
	memzero.Zero(secret)
	if err != nil {
		w.log.Warn("authenticate rejected", "userName", req.UserName, "cause", types.CauseOf(err), "err", err)
		w.emitUserFailure(req.UserName, err, emit)
		return
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		resp := types.Response{Operation: types.OperationIdenticon, UserName: auth.UserName()}
		icon, err := auth.WaitIdenticon(ctx)
		if err != nil {
			fail(&resp, err)
		} else {
			resp.UserIdenticon = &icon
		}
		emit(resp)
	}()
	go func() {
		defer wg.Done()
		resp := types.Response{Operation: types.OperationUser, UserName: auth.UserName()}
		if err := auth.WaitUserKey(ctx); err != nil {
			fail(&resp, err)
		}
		emit(resp)
	}()
}

// emitUserFailure reports a rejected authentication on both the identicon and
// user operations, since neither derivation will start.
func (w *Worker) emitUserFailure(userName string, err error, emit Emit) {
	for _, op := range []types.Operation{types.OperationIdenticon, types.OperationUser} {
		resp := types.Response{Operation: op, UserName: userName}
		fail(&resp, err)
		emit(resp)
	}
}

func (w *Worker) site(ctx context.Context, req types.Request, emit Emit, wg *sync.WaitGroup) {
	resp := types.Response{
		Operation:  types.OperationSite,
		UserName:   req.UserName,
		SiteName:   req.SiteName,
		ResultType: req.ResultType,
		KeyCounter: req.KeyCounter,
		KeyPurpose: req.KeyPurpose,
		KeyContext: req.KeyContext,
	}
	if resp.UserName == "" {
		resp.UserName = w.session.CurrentUserName()
	}

	params, err := siteParams(req)
	if err != nil {
		fail(&resp, err)
		emit(resp)
		return
	}
	resp.ResultType = types.Number(uint64(params.ResultType))
	resp.KeyCounter = types.Number(uint64(params.Counter))
	resp.KeyPurpose = params.Purpose.Scope()
	if resp.UserName == "" {
		fail(&resp, types.Fail(types.ErrMissingUserKey, types.CauseUserKey, "No authenticated user."))
		emit(resp)
		return
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		result, err := w.session.RequestResult(ctx, resp.UserName, params)
		if err != nil {
			if errors.Is(err, types.ErrStale) {
				w.log.Debug("site result discarded", "userName", resp.UserName, "siteName", resp.SiteName)
			}
			fail(&resp, err)
		} else {
			resp.SiteResult = result
		}
		emit(resp)
	}()
}

// siteParams range-checks the numeric fields and applies the request defaults:
// counter 1, the authentication purpose and the purpose's default result type.
func siteParams(req types.Request) (types.SiteParams, error) {
	resultType, err := types.ParseResultType(req.ResultType)
	if err != nil {
		return types.SiteParams{}, err
	}
	counter, err := types.ParseCounter(req.KeyCounter)
	if err != nil {
		return types.SiteParams{}, err
	}
	purpose := types.PurposeAuthentication
	if req.KeyPurpose != "" {
		p, ok := types.ParsePurpose(req.KeyPurpose)
		if !ok {
			return types.SiteParams{}, types.Fail(types.ErrInvalidInput, types.CauseKeyPurpose,
				"Unsupported key purpose: "+req.KeyPurpose+".")
		}
		purpose = p
	}
	return types.SiteParams{
		SiteName:   req.SiteName,
		ResultType: resultType,
		Counter:    counter,
		Purpose:    purpose,
		Context:    req.KeyContext,
	}.WithDefaults(), nil
}

func fail(resp *types.Response, err error) {
	resp.Error = err.Error()
	resp.Cause = types.CauseOf(err)
}

// Run handles requests from in in receipt order until in is closed or ctx is
// done. The returned channel is closed once every response has been emitted.
func (w *Worker) Run(ctx context.Context, in <-chan types.Request) <-chan types.Response {
	out := make(chan types.Response, 16)
	emit := func(resp types.Response) {
		select {
		case out <- resp:
		case <-ctx.Done():
		}
	}

	go func() {
		var pending sync.WaitGroup
		defer func() {
			pending.Wait()
			close(out)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case req, ok := <-in:
				if !ok {
					return
				}
				wait := w.Handle(ctx, req, emit)
				pending.Add(1)
				go func() {
					defer pending.Done()
					wait()
				}()
			}
		}
	}()
	return out
}
