package spectre_test

import (
	"golang.org/x/crypto/scrypt"

	"spectre/internal/crypto"
	"spectre/internal/domain"
)

// cheapKDF keeps the salt framing but replaces the cost parameters.
type cheapKDF struct{}

func (cheapKDF) Key(secret, salt []byte, _, _, _, keyLen int) ([]byte, error) {
	return scrypt.Key(secret, salt, 16, 1, 1, keyLen)
}

type brokenKDF struct{}

func (brokenKDF) Key(secret, salt []byte, _, _, _, keyLen int) ([]byte, error) {
	// scrypt rejects N values that are not powers of two.
	return crypto.Scrypt{}.Key(secret, salt, 3, 1, 1, keyLen)
}

func hmacOnly() domain.MAC { return crypto.HMACSHA256{} }

var _ domain.KDF = cheapKDF{}
