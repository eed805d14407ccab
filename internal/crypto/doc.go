// Package crypto exposes the primitives the derivation engine is built on.
//
// Contents
//
//   - Scrypt, the memory-hard password-based KDF (golang.org/x/crypto/scrypt)
//   - HMACSHA256, the keyed MAC used for site keys and identicons
//
// # Notes
//
// Both types satisfy the contracts in internal/domain/interfaces so tests can
// substitute cheaper or gated implementations. Failures of either primitive
// are reported as types.ErrPrimitiveUnavailable.
package crypto
