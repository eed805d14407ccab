package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"spectre/internal/domain"
	"spectre/internal/domain/types"
	"spectre/internal/protocol/spectre"
	"spectre/internal/util/memzero"
)

// Service owns the current identity and its result cache.
//
// Authenticate and Invalidate apply in call order. RequestResult calls may run
// concurrently and settle in any order; each writes only its own cache slot.
type Service struct {
	alg     domain.Algorithm
	log     *slog.Logger
	metrics *Metrics
	flight  singleflight.Group

	mu      sync.Mutex
	current *identity
	cache   map[types.ResultKey]string
	fatal   error
	seq     uint64

	// invalidated is the seq of the last identity Invalidate removed. Requests
	// started at or before it never deliver, even after a same-name login.
	invalidated uint64
}

// New returns a session over alg. A nil logger uses slog.Default and nil
// metrics are created unregistered.
func New(alg domain.Algorithm, log *slog.Logger, metrics *Metrics) *Service {
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Service{
		alg:     alg,
		log:     log.With("component", "session"),
		metrics: metrics,
		cache:   make(map[types.ResultKey]string),
	}
}

// Authenticate makes userName the current identity and starts deriving its
// user key and identicon.
//
// A different userName replaces the identity and clears the cache. The same
// userName keeps the cache and only refreshes the derivations, so a mistyped
// secret can be corrected without losing results. Invalid inputs are rejected
// before any state changes. The caller keeps ownership of userSecret.
func (s *Service) Authenticate(
	userName string,
	userSecret []byte,
	version types.AlgorithmVersion,
) (domain.Authentication, error) {
	if err := spectre.ValidateUser(userName, userSecret, version); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.fatal != nil {
		err := s.fatal
		s.mu.Unlock()
		return nil, err
	}
	s.seq++
	id := newIdentity(userName, version, s.seq)
	switched := s.current == nil || s.current.userName != userName
	if s.current != nil {
		s.current.retire()
	}
	if switched {
		s.clearCacheLocked()
	}
	s.current = id
	s.mu.Unlock()

	s.log.Info("authenticate",
		"userName", userName,
		"algorithmVersion", int(version),
		"switched", switched,
	)

	go s.deriveUserKey(id, bytes.Clone(userSecret))
	go s.deriveIdenticon(id, bytes.Clone(userSecret))
	return &authentication{id: id}, nil
}

// Invalidate forgets the current identity when userName is empty or matches it,
// wiping its user key and clearing the cache. It returns the userName that was
// current before the call.
func (s *Service) Invalidate(userName string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ""
	}
	previous := s.current.userName
	if userName != "" && userName != previous {
		return previous
	}
	s.current.retire()
	s.invalidated = s.current.seq
	s.current = nil
	s.clearCacheLocked()
	s.log.Info("invalidate", "userName", previous)
	return previous
}

// RequestResult derives the result for params against the current identity.
//
// A non-empty userName must match the current identity. While the user key is
// pending the request waits for it. The result is cached and returned only if
// the identity is still current when derivation completes; otherwise the
// request fails with types.ErrStale.
func (s *Service) RequestResult(
	ctx context.Context,
	userName string,
	params types.SiteParams,
) (string, error) {
	params = params.WithDefaults()
	if err := spectre.ValidateResultType(params.ResultType); err != nil {
		return "", err
	}
	if err := spectre.ValidateSite(params); err != nil {
		return "", err
	}

	for {
		id, err := s.lookup(userName)
		if err != nil {
			return "", err
		}

		var result string
		key, err := id.userKey.wait(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return "", err
		}
		if err == nil {
			result, err = s.deriveSite(id, key, params)
		}

		s.mu.Lock()
		current := s.current
		switch {
		case s.continuesLocked(id) && err == nil:
			s.cache[params.CacheKey()] = result
			s.metrics.cached.Set(float64(len(s.cache)))
			s.mu.Unlock()
			return result, nil
		case current == id:
			s.mu.Unlock()
			return "", err
		case s.continuesLocked(id):
			// The key was refreshed underneath this request; retry with the new one.
			s.mu.Unlock()
			continue
		default:
			s.mu.Unlock()
			s.metrics.stale.Inc()
			s.log.Debug("discard stale result", "userName", id.userName, "siteName", params.SiteName)
			return "", stale(id.userName)
		}
	}
}

// CachedResult returns the last result cached for key, without side effects.
func (s *Service) CachedResult(key types.ResultKey) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.cache[key]
	return res, ok
}

// CurrentUserName returns the current identity's userName, or "".
func (s *Service) CurrentUserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.userName
}

// Snapshot describes the current identity.
type Snapshot struct {
	UserName         string
	AlgorithmVersion types.AlgorithmVersion
	Status           Status
	Err              error
	Identicon        types.Identicon
	CachedResults    int
}

// Snapshot returns the state of the current identity.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Snapshot{Status: StatusAbsent, Err: s.fatal}
	}
	snap := Snapshot{
		UserName:         s.current.userName,
		AlgorithmVersion: s.current.version,
		CachedResults:    len(s.cache),
	}
	snap.Status, snap.Err = s.current.status()
	if icon, ok, err := s.current.identicon.peek(); ok && err == nil {
		snap.Identicon = icon
	}
	return snap
}

// continuesLocked reports whether a request started against id may deliver to
// the current identity: same userName and no Invalidate in between.
func (s *Service) continuesLocked(id *identity) bool {
	return s.current != nil && s.current.userName == id.userName && id.seq > s.invalidated
}

func (s *Service) lookup(userName string) (*identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.fatal != nil:
		return nil, s.fatal
	case s.current == nil:
		return nil, types.Fail(types.ErrMissingUserKey, types.CauseUserKey, "No authenticated user.")
	case userName != "" && userName != s.current.userName:
		return nil, stale(userName)
	}
	return s.current, nil
}

func (s *Service) deriveUserKey(id *identity, secret []byte) {
	defer memzero.Zero(secret)

	start := time.Now()
	key, err := s.alg.UserKey(id.userName, secret, id.version)
	s.metrics.observe(stageUser, start, err)

	s.mu.Lock()
	if errors.Is(err, types.ErrPrimitiveUnavailable) && s.fatal == nil {
		s.fatal = err
	}
	id.userKey.resolve(key, err)
	retired := id.retired
	s.mu.Unlock()

	if retired && key != nil {
		key.Wipe()
	}
	if err != nil {
		s.log.Error("user key derivation failed", "userName", id.userName, "cause", types.CauseOf(err), "err", err)
		return
	}
	s.log.Debug("user key ready", "userName", id.userName, "elapsed", time.Since(start))
}

func (s *Service) deriveIdenticon(id *identity, secret []byte) {
	defer memzero.Zero(secret)

	start := time.Now()
	icon, err := s.alg.Identicon(id.userName, secret)
	s.metrics.observe(stageIdenticon, start, err)
	id.identicon.resolve(icon, err)
	if err != nil {
		s.log.Error("identicon derivation failed", "userName", id.userName, "cause", types.CauseOf(err), "err", err)
	}
}

// deriveSite computes a site result, sharing the work of identical requests
// that are in flight against the same identity.
func (s *Service) deriveSite(id *identity, key *types.UserKey, params types.SiteParams) (string, error) {
	flightKey := fmt.Sprintf("%d|%d|%d|%d|%q", id.seq, params.Counter, params.Purpose, params.ResultType, params.SiteName)
	if params.Context != nil {
		flightKey += fmt.Sprintf("|%q", *params.Context)
	}

	start := time.Now()
	v, err, shared := s.flight.Do(flightKey, func() (any, error) {
		return s.alg.SiteResult(key, params)
	})
	if shared {
		s.metrics.coalesced.Inc()
	}
	s.metrics.observe(stageSite, start, err)
	if err != nil {
		if errors.Is(err, types.ErrPrimitiveUnavailable) {
			s.mu.Lock()
			if s.fatal == nil {
				s.fatal = err
			}
			s.mu.Unlock()
		}
		return "", err
	}
	return v.(string), nil
}

func (s *Service) clearCacheLocked() {
	clear(s.cache)
	s.metrics.cached.Set(0)
}

func stale(userName string) error {
	return types.Fail(types.ErrStale, types.CauseUserName,
		fmt.Sprintf("User %q is no longer authenticated.", userName))
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
