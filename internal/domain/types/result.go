package types

import (
	"fmt"
	"strings"
)

// ResultType is bit-packed: low 4 bits select the template family, bits 4-6 the
// class and bits 10-12 the feature flags.
type ResultType uint32

const (
	ClassTemplate ResultType = 1 << 4
	ClassStateful ResultType = 1 << 5
	ClassDerive   ResultType = 1 << 6

	FeatureNone          ResultType = 0
	FeatureExportContent ResultType = 1 << 10
	FeatureDevicePrivate ResultType = 1 << 11
	FeatureAlternate     ResultType = 1 << 12

	familyMask  ResultType = 0xF
	classMask   ResultType = 0x7 << 4
	featureMask ResultType = 0x7 << 10
)

const (
	ResultNone ResultType = 0

	ResultTemplateMaximum ResultType = 0x0 | ClassTemplate | FeatureNone // pg^VMAUBk5x3p%HP%i4=
	ResultTemplateLong    ResultType = 0x1 | ClassTemplate | FeatureNone // BiroYena8:Kixa
	ResultTemplateMedium  ResultType = 0x2 | ClassTemplate | FeatureNone // BirSuj0-
	ResultTemplateShort   ResultType = 0x3 | ClassTemplate | FeatureNone // Bir8
	ResultTemplateBasic   ResultType = 0x4 | ClassTemplate | FeatureNone // pO98MoD0
	ResultTemplatePIN     ResultType = 0x5 | ClassTemplate | FeatureNone // 2798
	ResultTemplateName    ResultType = 0xE | ClassTemplate | FeatureNone // birsujano
	ResultTemplatePhrase  ResultType = 0xF | ClassTemplate | FeatureNone // bir yennoquce fefi

	ResultStatePersonal ResultType = 0x0 | ClassStateful | FeatureExportContent
	ResultStateDevice   ResultType = 0x1 | ClassStateful | FeatureDevicePrivate

	ResultDeriveKey ResultType = 0x0 | ClassDerive | FeatureAlternate

	ResultDefaultPassword = ResultTemplateLong
	ResultDefaultLogin    = ResultTemplateName
	ResultDefaultAnswer   = ResultTemplatePhrase
)

// Family returns the template-family index.
func (t ResultType) Family() int { return int(t & familyMask) }

// Class returns the class bits.
func (t ResultType) Class() ResultType { return t & classMask }

// Features returns the feature-flag bits.
func (t ResultType) Features() ResultType { return t & featureMask }

// Name returns the display name, or "" for an unknown type.
func (t ResultType) Name() string { return resultNames[t] }

func (t ResultType) String() string {
	if n := t.Name(); n != "" {
		return n
	}
	return fmt.Sprintf("ResultType(%d)", uint32(t))
}

// Templates returns the ordered template list for a template-class type.
func (t ResultType) Templates() ([]string, bool) {
	if t.Class() != ClassTemplate {
		return nil, false
	}
	tpl, ok := templates[t]
	return tpl, ok
}

// ResultTypeByName looks a result type up by its display name, case-insensitively.
func ResultTypeByName(name string) (ResultType, bool) {
	name = strings.TrimSpace(name)
	for t, n := range resultNames {
		if strings.EqualFold(n, name) {
			return t, true
		}
	}
	return ResultNone, false
}

var resultNames = map[ResultType]string{
	ResultTemplateMaximum: "Maximum",
	ResultTemplateLong:    "Long",
	ResultTemplateMedium:  "Medium",
	ResultTemplateShort:   "Short",
	ResultTemplateBasic:   "Basic",
	ResultTemplatePIN:     "PIN",
	ResultTemplateName:    "Name",
	ResultTemplatePhrase:  "Phrase",
	ResultStatePersonal:   "Own",
	ResultStateDevice:     "Device",
	ResultDeriveKey:       "Key",
}
