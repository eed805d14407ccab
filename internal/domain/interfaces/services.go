package interfaces

import (
	"context"

	domaintypes "spectre/internal/domain/types"
)

// Algorithm performs the stateless derivations.
type Algorithm interface {
	UserKey(
		userName string,
		userSecret []byte,
		version domaintypes.AlgorithmVersion,
	) (*domaintypes.UserKey, error)
	SiteResult(key *domaintypes.UserKey, params domaintypes.SiteParams) (string, error)
	Identicon(userName string, userSecret []byte) (domaintypes.Identicon, error)
}

// Authentication tracks the derivations started for one identity.
type Authentication interface {
	UserName() string
	WaitUserKey(ctx context.Context) error
	WaitIdenticon(ctx context.Context) (domaintypes.Identicon, error)
}

// SessionService holds the single current identity and its result cache.
type SessionService interface {
	Authenticate(
		userName string,
		userSecret []byte,
		version domaintypes.AlgorithmVersion,
	) (Authentication, error)
	Invalidate(userName string) (previous string)
	RequestResult(
		ctx context.Context,
		userName string,
		params domaintypes.SiteParams,
	) (string, error)
	CachedResult(key domaintypes.ResultKey) (string, bool)
	CurrentUserName() string
}
