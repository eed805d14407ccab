package crypto

import (
	"crypto/hmac"
	"crypto/sha256"

	"spectre/internal/domain"
	"spectre/internal/domain/types"
)

// HMACSHA256 computes HMAC-SHA-256.
type HMACSHA256 struct{}

// Sum returns the 32-byte MAC of message under key.
func (HMACSHA256) Sum(key, message []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, types.Fail(types.ErrPrimitiveUnavailable, types.CauseInternal, "hmac: empty key")
	}
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil), nil
}

// Size returns the MAC output length in bytes.
func (HMACSHA256) Size() int { return sha256.Size }

// Compile-time assertion that HMACSHA256 implements domain.MAC.
var _ domain.MAC = HMACSHA256{}
