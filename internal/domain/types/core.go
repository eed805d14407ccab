package types

import (
	"fmt"
	"strings"
)

// AlgorithmVersion selects the byte-packing rules used at each derivation stage.
type AlgorithmVersion int

const (
	// AlgorithmV0 performed host-endian math with key bytes widened to 16-bit big-endian values.
	AlgorithmV0 AlgorithmVersion = 0
	// AlgorithmV1 sized site name fields by character count rather than byte count.
	AlgorithmV1 AlgorithmVersion = 1
	// AlgorithmV2 sized user name fields by character count rather than byte count.
	AlgorithmV2 AlgorithmVersion = 2
	// AlgorithmV3 is the current version.
	AlgorithmV3 AlgorithmVersion = 3

	AlgorithmFirst   = AlgorithmV0
	AlgorithmLast    = AlgorithmV3
	AlgorithmCurrent = AlgorithmV3
)

// Valid reports whether v is a known algorithm version.
func (v AlgorithmVersion) Valid() bool { return v >= AlgorithmFirst && v <= AlgorithmLast }

// Purpose is the semantic role of a derived result.
type Purpose int

const (
	PurposeAuthentication Purpose = iota
	PurposeIdentification
	PurposeRecovery
)

var purposeScopes = [...]string{
	PurposeAuthentication: "com.lyndir.masterpassword",
	PurposeIdentification: "com.lyndir.masterpassword.login",
	PurposeRecovery:       "com.lyndir.masterpassword.answer",
}

var purposeNames = [...]string{
	PurposeAuthentication: "authentication",
	PurposeIdentification: "identification",
	PurposeRecovery:       "recovery",
}

// Scope returns the fixed scope string mixed into derivation salts.
func (p Purpose) Scope() string {
	if p < 0 || int(p) >= len(purposeScopes) {
		return ""
	}
	return purposeScopes[p]
}

// String returns the purpose name.
func (p Purpose) String() string {
	if p < 0 || int(p) >= len(purposeNames) {
		return fmt.Sprintf("Purpose(%d)", int(p))
	}
	return purposeNames[p]
}

// Valid reports whether p is one of the three known purposes.
func (p Purpose) Valid() bool { return p >= PurposeAuthentication && p <= PurposeRecovery }

// DefaultResultType returns the result type used when a request names none.
func (p Purpose) DefaultResultType() ResultType {
	switch p {
	case PurposeIdentification:
		return ResultDefaultLogin
	case PurposeRecovery:
		return ResultDefaultAnswer
	default:
		return ResultDefaultPassword
	}
}

// PurposeFromScope maps a scope string back to its Purpose.
func PurposeFromScope(scope string) (Purpose, bool) {
	for p, s := range purposeScopes {
		if s == scope {
			return Purpose(p), true
		}
	}
	return 0, false
}

// ParsePurpose accepts either a purpose name or its scope string.
func ParsePurpose(s string) (Purpose, bool) {
	s = strings.TrimSpace(s)
	for p, name := range purposeNames {
		if strings.EqualFold(name, s) {
			return Purpose(p), true
		}
	}
	return PurposeFromScope(s)
}

// Counter lets a user obtain an alternate result for the same site.
// It is wider than uint32 so out-of-range values can be represented and rejected.
type Counter uint64

const (
	// CounterTOTP is reserved for time-based counters and never valid for a site key.
	CounterTOTP    Counter = 0
	CounterInitial Counter = 1
	CounterDefault         = CounterInitial
	CounterFirst           = CounterInitial
	CounterLast    Counter = 1<<32 - 1
)

// Valid reports whether c lies in [1, 2^32-1].
func (c Counter) Valid() bool { return c >= CounterFirst && c <= CounterLast }
