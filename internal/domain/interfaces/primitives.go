package interfaces

// KDF is a memory-hard password-based key derivation function.
type KDF interface {
	Key(secret, salt []byte, n, r, p, keyLen int) ([]byte, error)
}

// MAC is a keyed message authentication code with a fixed-size output.
type MAC interface {
	Sum(key, message []byte) ([]byte, error)
	Size() int
}
