package filter

import "fmt"

// MaxConditions is the maximum number of conditions in one expression.
const MaxConditions = 32

// Expression is a conjunction of exact-match conditions evaluated by the index
// before ranking.
type Expression struct {
	must []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must ...Condition) (Expression, error) {
	if len(must) > MaxConditions {
		return Expression{}, fmt.Errorf("too many filter conditions (max %d)", MaxConditions)
	}
	return Expression{must: must}, nil
}

// Must returns the conditions that every match has to satisfy.
func (e Expression) Must() []Condition { return e.must }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.must) == 0 }

// Condition is a single equality clause over a metadata field.
// It is an exact match: no prefix, range or fuzzy semantics.
type Condition struct {
	key   string
	value string
}

// NewMatch creates an exact equality condition. An empty value is allowed
// and matches only fields holding the empty string.
func NewMatch(key, value string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{key: key, value: value}, nil
}

// Key returns the metadata field name.
func (c Condition) Key() string { return c.key }

// Value returns the value the field must equal.
func (c Condition) Value() string { return c.value }
