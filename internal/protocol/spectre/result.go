package spectre

import (
	"fmt"
	"strings"

	"spectre/internal/domain/types"
)

// Render maps a site key onto a template of the result type.
func Render(siteKey *types.SiteKey, resultType types.ResultType) (string, error) {
	templates, ok := resultType.Templates()
	if !ok || len(templates) == 0 {
		return "", unsupportedResultType(resultType)
	}
	if siteKey == nil || len(siteKey.Values) == 0 {
		return "", types.Fail(types.ErrMissingUserKey, types.CauseUserKey, "Missing site key.")
	}

	values := siteKey.Values
	template := templates[int(values[0])%len(templates)]
	if len(template)+1 > len(values) {
		return "", types.Fail(types.ErrInternal, types.CauseInternal,
			fmt.Sprintf("site key too short for template %q", template))
	}

	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		class, ok := types.CharacterClass(template[i])
		if !ok {
			return "", types.Fail(types.ErrInternal, types.CauseInternal,
				fmt.Sprintf("unknown character class %q", template[i]))
		}
		b.WriteByte(class[int(values[i+1])%len(class)])
	}
	return b.String(), nil
}

// SiteResult derives the site key for params and renders it.
func (e *Engine) SiteResult(key *types.UserKey, params types.SiteParams) (string, error) {
	if err := ValidateResultType(params.ResultType); err != nil {
		return "", err
	}
	siteKey, err := e.SiteKey(key, params)
	if err != nil {
		return "", err
	}
	defer siteKey.Wipe()
	return Render(siteKey, params.ResultType)
}

func unsupportedResultType(t types.ResultType) error {
	return types.Fail(types.ErrUnsupportedResultType, types.CauseResultType,
		fmt.Sprintf("Unsupported result template: %d.", uint32(t)))
}

// ValidateResultType checks that t is a template-class type this package renders.
func ValidateResultType(t types.ResultType) error {
	if _, ok := t.Templates(); !ok {
		return unsupportedResultType(t)
	}
	return nil
}
