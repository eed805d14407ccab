package spectre

import (
	"fmt"

	"spectre/internal/domain/types"
	"spectre/internal/util/memzero"
)

// UserKey derives the user key for userName from userSecret.
//
// The salt is scope(authentication) | uint32(#userName) | userName. The caller
// keeps ownership of userSecret.
func (e *Engine) UserKey(
	userName string,
	userSecret []byte,
	version types.AlgorithmVersion,
) (*types.UserKey, error) {
	if err := e.primitivesReady(); err != nil {
		return nil, err
	}
	if err := ValidateUser(userName, userSecret, version); err != nil {
		return nil, err
	}

	salt := userSalt(userName, version)
	material, err := e.kdf.Key(userSecret, salt, scryptN, scryptR, scryptP, userKeyBytes)
	memzero.Zero(salt)
	if err != nil {
		return nil, err
	}
	if len(material) != userKeyBytes {
		memzero.Zero(material)
		return nil, types.Fail(types.ErrInternal, types.CauseInternal,
			fmt.Sprintf("kdf returned %d bytes, want %d", len(material), userKeyBytes))
	}
	return types.NewUserKey(material, version), nil
}

// ValidateUser checks the inputs of a user-key derivation.
func ValidateUser(userName string, userSecret []byte, version types.AlgorithmVersion) error {
	switch {
	case !version.Valid():
		return types.Fail(types.ErrUnsupportedVersion, types.CauseAlgorithmVersion,
			fmt.Sprintf("Unsupported algorithm version: %d.", version))
	case userName == "":
		return types.Fail(types.ErrInvalidInput, types.CauseUserName, "Missing user name.")
	case len(userSecret) == 0:
		return types.Fail(types.ErrInvalidInput, types.CauseUserSecret, "Missing user secret.")
	}
	return nil
}

func userSalt(userName string, version types.AlgorithmVersion) []byte {
	scope := types.PurposeAuthentication.Scope()
	salt := make([]byte, 0, len(scope)+4+len(userName))
	salt = append(salt, scope...)
	salt = appendUint32(salt, nameLength(userName, version, types.AlgorithmV3))
	salt = append(salt, userName...)
	return salt
}
