package spectre

import (
	"errors"
	"fmt"

	"spectre/internal/domain/types"
	"spectre/internal/util/memzero"
)

// SiteKey derives the site key for params under key.
//
// The salt is scope(purpose) | uint32(#siteName) | siteName | int32(counter)
// [| uint32(#context) | context]; the context block is omitted when the context
// is nil or empty.
func (e *Engine) SiteKey(key *types.UserKey, params types.SiteParams) (*types.SiteKey, error) {
	if err := e.primitivesReady(); err != nil {
		return nil, err
	}
	if key == nil {
		return nil, types.Fail(types.ErrMissingUserKey, types.CauseUserKey, "Missing user key.")
	}
	if err := ValidateSite(params); err != nil {
		return nil, err
	}

	version := key.Version()
	salt := siteSalt(params, version)
	defer memzero.Zero(salt)

	var (
		sum    []byte
		macErr error
	)
	if !key.Use(func(material []byte) { sum, macErr = e.mac.Sum(material, salt) }) {
		return nil, types.Fail(types.ErrMissingUserKey, types.CauseUserKey, "Missing user key.")
	}
	if macErr != nil {
		var te *types.Error
		if errors.As(macErr, &te) {
			return nil, macErr
		}
		return nil, types.Fail(types.ErrPrimitiveUnavailable, types.CauseInternal, macErr.Error())
	}
	defer memzero.Zero(sum)

	values := make([]uint16, len(sum))
	for i, b := range sum {
		if version < types.AlgorithmV1 {
			values[i] = widenV0(b)
		} else {
			values[i] = uint16(b)
		}
	}
	return &types.SiteKey{Values: values, Version: version}, nil
}

// ValidateSite checks the inputs of a site-key derivation.
func ValidateSite(params types.SiteParams) error {
	switch {
	case params.SiteName == "":
		return types.Fail(types.ErrInvalidInput, types.CauseSiteName, "Missing site name.")
	case !params.Counter.Valid():
		return types.Fail(types.ErrInvalidCounter, types.CauseKeyCounter,
			fmt.Sprintf("Invalid counter value: %d.", params.Counter))
	case !params.Purpose.Valid():
		return types.Fail(types.ErrInvalidInput, types.CauseKeyPurpose,
			fmt.Sprintf("Unsupported key purpose: %s.", params.Purpose))
	}
	return nil
}

// widenV0 reproduces the V0 conversion of a key byte into a 16-bit big-endian value.
func widenV0(b byte) uint16 {
	v := uint16(b) << 8
	if b > 127 {
		v |= 0x00ff
	}
	return v
}

func siteSalt(params types.SiteParams, version types.AlgorithmVersion) []byte {
	scope := params.Purpose.Scope()
	size := len(scope) + 4 + len(params.SiteName) + 4
	hasContext := params.Context != nil && *params.Context != ""
	if hasContext {
		size += 4 + len(*params.Context)
	}

	salt := make([]byte, 0, size)
	salt = append(salt, scope...)
	salt = appendUint32(salt, nameLength(params.SiteName, version, types.AlgorithmV2))
	salt = append(salt, params.SiteName...)
	salt = appendUint32(salt, uint32(params.Counter))
	if hasContext {
		salt = appendUint32(salt, uint32(len(*params.Context)))
		salt = append(salt, *params.Context...)
	}
	return salt
}
