package crypto

import (
	"fmt"

	"golang.org/x/crypto/scrypt"

	"spectre/internal/domain"
	"spectre/internal/domain/types"
)

// Scrypt derives keys with scrypt.
type Scrypt struct{}

// Key runs scrypt over secret and salt with the given cost parameters.
func (Scrypt) Key(secret, salt []byte, n, r, p, keyLen int) ([]byte, error) {
	key, err := scrypt.Key(secret, salt, n, r, p, keyLen)
	if err != nil {
		return nil, &types.Error{
			Cause: types.CauseInternal,
			Err:   types.ErrPrimitiveUnavailable,
			Msg:   fmt.Sprintf("scrypt unavailable: %v", err),
		}
	}
	return key, nil
}

// Compile-time assertion that Scrypt implements domain.KDF.
var _ domain.KDF = Scrypt{}
