package spectre

import (
	"encoding/binary"
	"unicode/utf16"

	"spectre/internal/crypto"
	"spectre/internal/domain"
	"spectre/internal/domain/types"
)

// scrypt cost parameters for user keys.
const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 2
	userKeyBytes = 64
)

// Engine performs the stateless derivations over a KDF and a MAC.
type Engine struct {
	kdf domain.KDF
	mac domain.MAC
}

// New returns an engine over the given primitives.
func New(kdf domain.KDF, mac domain.MAC) *Engine {
	return &Engine{kdf: kdf, mac: mac}
}

// Default returns an engine over scrypt and HMAC-SHA-256.
func Default() *Engine {
	return New(crypto.Scrypt{}, crypto.HMACSHA256{})
}

func (e *Engine) primitivesReady() error {
	if e == nil || e.kdf == nil || e.mac == nil {
		return types.Fail(types.ErrPrimitiveUnavailable, types.CauseInternal, "Cryptography unavailable.")
	}
	return nil
}

// charLength returns the length of s in UTF-16 code units.
func charLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// nameLength returns the length field for a name: its character count when the
// version predates byteCountSince, its UTF-8 byte count otherwise.
func nameLength(name string, v, byteCountSince types.AlgorithmVersion) uint32 {
	if v < byteCountSince {
		return uint32(charLength(name))
	}
	return uint32(len(name))
}

func appendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// Compile-time assertion that Engine implements domain.Algorithm.
var _ domain.Algorithm = (*Engine)(nil)
