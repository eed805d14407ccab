package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Operation names the sub-operation a Response reports on.
type Operation string

const (
	OperationInvalidate Operation = "invalidate"
	OperationIdenticon  Operation = "identicon"
	OperationUser       Operation = "user"
	OperationSite       Operation = "site"
)

// Request is one inbound message to the worker. Every operation whose inputs
// are present is performed.
//
//	| field            | invalidate | identicon | user     | site     |
//	|------------------|------------|-----------|----------|----------|
//	| userName         | optional   | required  | required | optional |
//	| userSecret       |            | required  | required |          |
//	| algorithmVersion |            | optional  | optional |          |
//	| siteName         |            |           |          | required |
//	| resultType       |            |           |          | optional |
//	| keyCounter       |            |           |          | optional |
//	| keyPurpose       |            |           |          | optional |
//	| keyContext       |            |           |          | optional |
//	| invalidate       | required   |           |          |          |
//
// ResultType and KeyCounter stay raw numbers so that out-of-range values reach
// validation and fail with their own cause.
type Request struct {
	UserName         string            `json:"userName,omitempty"`
	UserSecret       string            `json:"userSecret,omitempty"`
	AlgorithmVersion *AlgorithmVersion `json:"algorithmVersion,omitempty"`
	SiteName         string            `json:"siteName,omitempty"`
	ResultType       json.Number       `json:"resultType,omitempty"`
	KeyCounter       json.Number       `json:"keyCounter,omitempty"`
	KeyPurpose       string            `json:"keyPurpose,omitempty"`
	KeyContext       *string           `json:"keyContext,omitempty"`
	Invalidate       bool              `json:"invalidate,omitempty"`
}

// Response reports the outcome of one operation. Site responses echo every
// request field so callers can correlate them without a request ID.
type Response struct {
	Operation     Operation  `json:"operation"`
	UserName      string     `json:"userName"`
	UserIdenticon *Identicon `json:"userIdenticon,omitempty"`

	SiteName   string      `json:"siteName,omitempty"`
	ResultType json.Number `json:"resultType,omitempty"`
	KeyCounter json.Number `json:"keyCounter,omitempty"`
	KeyPurpose string      `json:"keyPurpose,omitempty"`
	KeyContext *string     `json:"keyContext,omitempty"`
	SiteResult string      `json:"siteResult,omitempty"`

	Error string `json:"error,omitempty"`
	Cause string `json:"cause,omitempty"`
}

// Failed reports whether the response carries an error.
func (r Response) Failed() bool { return r.Error != "" }

// Number formats v as a wire number.
func Number(v uint64) json.Number { return json.Number(strconv.FormatUint(v, 10)) }

// ParseCounter reads a wire counter. An absent counter is CounterTOTP, which
// site requests replace with the default.
func ParseCounter(n json.Number) (Counter, error) {
	if n == "" {
		return CounterTOTP, nil
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil || v < 0 || v > math.MaxUint32 {
		return 0, Fail(ErrInvalidCounter, CauseKeyCounter, fmt.Sprintf("Invalid counter value: %s.", n))
	}
	return Counter(v), nil
}

// ParseResultType reads a wire result type. An absent type is ResultNone.
func ParseResultType(n json.Number) (ResultType, error) {
	if n == "" {
		return ResultNone, nil
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil || v < 0 || v > math.MaxUint32 {
		return 0, Fail(ErrUnsupportedResultType, CauseResultType, fmt.Sprintf("Unsupported result template: %s.", n))
	}
	return ResultType(v), nil
}
