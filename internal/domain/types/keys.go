package types

import (
	"sync"

	"spectre/internal/util/memzero"
)

// UserKey is the secret-derived key material of one (userName, algorithm version) pair.
// It is consumed by site-key derivation and never decomposed by callers.
type UserKey struct {
	mu       sync.RWMutex
	material []byte
	version  AlgorithmVersion
}

// NewUserKey takes ownership of material.
func NewUserKey(material []byte, version AlgorithmVersion) *UserKey {
	return &UserKey{material: material, version: version}
}

// Version returns the algorithm version the key was derived with.
func (k *UserKey) Version() AlgorithmVersion { return k.version }

// Use calls fn with the key material under a read lock. It reports false
// without calling fn when the key is nil or has been wiped.
func (k *UserKey) Use(fn func(material []byte)) bool {
	if k == nil {
		return false
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.material == nil {
		return false
	}
	fn(k.material)
	return true
}

// Wipe overwrites the key material and drops it. Wipe waits for in-progress Use calls.
func (k *UserKey) Wipe() {
	if k == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	memzero.Zero(k.material)
	k.material = nil
}

// Wiped reports whether the key material is gone.
func (k *UserKey) Wiped() bool {
	if k == nil {
		return true
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.material == nil
}

// SiteKey is the per-request key for one (UserKey, site, counter, purpose, context).
//
// Values holds one entry per MAC output byte. For AlgorithmV0 each entry is the
// byte widened into a 16-bit big-endian value; later versions keep the byte value.
type SiteKey struct {
	Values  []uint16
	Version AlgorithmVersion
}

// Wipe zeroes the key values.
func (k *SiteKey) Wipe() {
	if k == nil {
		return
	}
	for i := range k.Values {
		k.Values[i] = 0
	}
	k.Values = nil
}
