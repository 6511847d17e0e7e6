package request

// Search parameter defaults.
const (
	DefaultQuery    = "recovery from addiction"
	DefaultCategory = "1028"
	DefaultLimit    = 5
	MaxLimit        = 100
)

// Defaults holds the values applied when a request omits a parameter.
type Defaults struct {
	Query    string
	Category string
	Limit    int
}

// DefaultValues returns the built-in defaults.
func DefaultValues() Defaults {
	return Defaults{
		Query:    DefaultQuery,
		Category: DefaultCategory,
		Limit:    DefaultLimit,
	}
}

// normalize fills zero fields with the built-in defaults and clamps the limit.
func (d Defaults) normalize() Defaults {
	if d.Query == "" {
		d.Query = DefaultQuery
	}
	if d.Category == "" {
		d.Category = DefaultCategory
	}
	if d.Limit <= 0 {
		d.Limit = DefaultLimit
	}
	if d.Limit > MaxLimit {
		d.Limit = MaxLimit
	}
	return d
}

// Request is a normalized story search query. Immutable once built.
type Request struct {
	query    string
	category string
	limit    int
}

// FromParams builds a Request from optional parameters. Only a nil parameter
// takes its default; a present empty value is kept, so an empty category
// filters to zero matches and an empty query goes to the provider as is.
func FromParams(query, category *string, d Defaults) Request {
	d = d.normalize()
	r := Request{query: d.Query, category: d.Category, limit: d.Limit}
	if query != nil {
		r.query = *query
	}
	if category != nil {
		r.category = *category
	}
	return r
}

// New builds a Request, substituting defaults for empty parameters.
// The category is otherwise passed through verbatim as an equality filter,
// so unknown values simply produce zero matches.
func New(query, category string, d Defaults) Request {
	return FromParams(nonEmpty(query), nonEmpty(category), d)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Query returns the free-text query to embed.
func (r Request) Query() string { return r.query }

// Category returns the exact-match category filter value.
func (r Request) Category() string { return r.category }

// Limit returns the maximum number of stories to return.
func (r Request) Limit() int { return r.limit }
