package session

import (
	"context"

	"spectre/internal/domain"
	"spectre/internal/domain/types"
)

// Status is the user-key state of the current identity.
type Status int

const (
	StatusAbsent Status = iota
	StatusPending
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "absent"
	}
}

// identity is one authenticated user. Fields other than the futures are
// guarded by Service.mu.
type identity struct {
	userName string
	version  types.AlgorithmVersion
	seq      uint64

	userKey   *future[*types.UserKey]
	identicon *future[types.Identicon]

	retired bool
}

func newIdentity(userName string, version types.AlgorithmVersion, seq uint64) *identity {
	return &identity{
		userName:  userName,
		version:   version,
		seq:       seq,
		userKey:   newFuture[*types.UserKey](),
		identicon: newFuture[types.Identicon](),
	}
}

// retire marks the identity as no longer current and wipes its key once no
// derivation holds it. Callers hold Service.mu.
func (id *identity) retire() {
	id.retired = true
	if key, ok, err := id.userKey.peek(); ok && err == nil {
		go key.Wipe()
	}
}

func (id *identity) status() (Status, error) {
	_, ok, err := id.userKey.peek()
	switch {
	case !ok:
		return StatusPending, nil
	case err != nil:
		return StatusFailed, err
	default:
		return StatusReady, nil
	}
}

// authentication is the handle Authenticate returns.
type authentication struct {
	id *identity
}

func (a *authentication) UserName() string { return a.id.userName }

// WaitUserKey blocks until the user key settles and returns its error.
func (a *authentication) WaitUserKey(ctx context.Context) error {
	_, err := a.id.userKey.wait(ctx)
	return err
}

// WaitIdenticon blocks until the identicon settles.
func (a *authentication) WaitIdenticon(ctx context.Context) (types.Identicon, error) {
	return a.id.identicon.wait(ctx)
}

var _ domain.Authentication = (*authentication)(nil)
