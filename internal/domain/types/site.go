package types

// SiteParams are the inputs of one site-result derivation.
// A nil Context and an empty one derive the same key but are cached separately.
type SiteParams struct {
	SiteName   string
	ResultType ResultType
	Counter    Counter
	Purpose    Purpose
	Context    *string
}

// WithDefaults fills the counter and result type when they are unset.
func (p SiteParams) WithDefaults() SiteParams {
	if p.Counter == CounterTOTP {
		p.Counter = CounterDefault
	}
	if p.ResultType == ResultNone {
		p.ResultType = p.Purpose.DefaultResultType()
	}
	return p
}

// CacheKey identifies the cache slot a result for p is stored in.
func (p SiteParams) CacheKey() ResultKey {
	k := ResultKey{SiteName: p.SiteName, Purpose: p.Purpose}
	if p.Context != nil {
		k.Context = *p.Context
		k.HasContext = true
	}
	return k
}

// ResultKey is the (siteName, purpose, context) triple a cached result is stored under.
type ResultKey struct {
	SiteName   string
	Purpose    Purpose
	Context    string
	HasContext bool
}

// ContextPtr returns a pointer to s, for building SiteParams literals.
func ContextPtr(s string) *string { return &s }
