package crypto_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"spectre/internal/crypto"
	"spectre/internal/domain/types"
)

func TestHMACSHA256Vector(t *testing.T) {
	// RFC 4231 test case 2.
	sum, err := crypto.HMACSHA256{}.Sum([]byte("Jefe"), []byte("what do ya want for nothing?"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	want := "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"
	if got := hex.EncodeToString(sum); got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
	if n := (crypto.HMACSHA256{}).Size(); n != len(sum) {
		t.Fatalf("Size %d does not match output %d", n, len(sum))
	}
}

func TestHMACSHA256RejectsEmptyKey(t *testing.T) {
	if _, err := (crypto.HMACSHA256{}).Sum(nil, []byte("msg")); !errors.Is(err, types.ErrPrimitiveUnavailable) {
		t.Fatalf("want ErrPrimitiveUnavailable, got %v", err)
	}
}

func TestScryptVector(t *testing.T) {
	// RFC 7914 section 12, first vector.
	key, err := crypto.Scrypt{}.Key(nil, nil, 16, 1, 1, 64)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	want := "77d6576238657b203b19ca42c18a0497f16b4844e3074ae8dfdffa3fede21442" +
		"fcd0069ded0948f8326a753a0fc81f17e8d3e0fb2e0d3628cf35e20c38d18906"
	if got := hex.EncodeToString(key); got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestScryptRejectsBadCost(t *testing.T) {
	_, err := crypto.Scrypt{}.Key([]byte("secret"), []byte("salt"), 3, 1, 1, 64)
	if !errors.Is(err, types.ErrPrimitiveUnavailable) || types.CauseOf(err) != types.CauseInternal {
		t.Fatalf("want ErrPrimitiveUnavailable, got %v", err)
	}
}
