package types

import "errors"

// Error kinds. Every failure raised by derivation or the session unwraps to one of these.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnsupportedVersion    = errors.New("unsupported algorithm version")
	ErrInvalidCounter        = errors.New("invalid counter")
	ErrUnsupportedResultType = errors.New("unsupported result type")
	ErrMissingUserKey        = errors.New("missing user key")
	ErrPrimitiveUnavailable  = errors.New("cryptographic primitive unavailable")
	ErrInternal              = errors.New("internal error")

	// ErrStale marks a result whose identity is no longer current; it is never cached.
	ErrStale = errors.New("identity no longer current")
)

// Cause tokens reported to callers.
const (
	CauseUserName         = "userName"
	CauseUserSecret       = "userSecret"
	CauseAlgorithmVersion = "algorithmVersion"
	CauseUserKey          = "userKey"
	CauseSiteName         = "siteName"
	CauseKeyCounter       = "keyCounter"
	CauseKeyPurpose       = "keyPurpose"
	CauseResultType       = "resultType"
	CauseInvalidate       = "invalidate"
	CauseInternal         = "internal"
)

// Error is a failure with a stable cause token naming the field or condition at fault.
type Error struct {
	Cause string
	Err   error
	Msg   string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Fail builds an *Error of the given kind.
func Fail(kind error, cause, msg string) error {
	return &Error{Cause: cause, Err: kind, Msg: msg}
}

// CauseOf returns the cause token carried by err, or "internal" when it carries none.
func CauseOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Cause != "" {
		return e.Cause
	}
	return CauseInternal
}
