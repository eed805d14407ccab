// Package session holds the single current identity and serializes result
// requests against it.
//
// Authenticate starts the user-key and identicon derivations in the background;
// RequestResult waits for the user key, derives, and applies the result to the
// cache only if the identity that issued it is still current. Results for an
// identity that was replaced or invalidated in the meantime are discarded with
// types.ErrStale.
//
// Retired user keys are wiped as soon as no derivation is using them.
package session
