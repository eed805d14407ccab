package spectre

import (
	"errors"

	"spectre/internal/domain/types"
	"spectre/internal/util/memzero"
)

// Identicon derives the visual fingerprint of userName under userSecret.
//
// The secret is the MAC key directly; no memory-hard stage is involved and the
// algorithm version plays no part. All four components index with the first
// seed byte.
func (e *Engine) Identicon(userName string, userSecret []byte) (types.Identicon, error) {
	if err := e.primitivesReady(); err != nil {
		return types.Identicon{}, err
	}
	seed, err := e.mac.Sum(userSecret, []byte(userName))
	if err != nil {
		var te *types.Error
		if errors.As(err, &te) {
			return types.Identicon{}, err
		}
		return types.Identicon{}, types.Fail(types.ErrPrimitiveUnavailable, types.CauseInternal, err.Error())
	}
	defer memzero.Zero(seed)
	if len(seed) == 0 {
		return types.Identicon{}, types.Fail(types.ErrInternal, types.CauseInternal, "empty identicon seed")
	}

	s := int(seed[0])
	return types.Identicon{
		LeftArm:   types.IdenticonLeftArms[s%len(types.IdenticonLeftArms)],
		Body:      types.IdenticonBodies[s%len(types.IdenticonBodies)],
		RightArm:  types.IdenticonRightArms[s%len(types.IdenticonRightArms)],
		Accessory: types.IdenticonAccessories[s%len(types.IdenticonAccessories)],
	}, nil
}
