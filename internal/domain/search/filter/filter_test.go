package filter

import (
	"strings"
	"testing"
)

func TestNewMatch_Valid(t *testing.T) {
	c, err := NewMatch("category", "1028")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Key() != "category" {
		t.Errorf("Key() = %q", c.Key())
	}
	if c.Value() != "1028" {
		t.Errorf("Value() = %q", c.Value())
	}
}

func TestNewMatch_EmptyKey(t *testing.T) {
	_, err := NewMatch("", "1028")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "key is required") {
		t.Errorf("error %q does not contain %q", err, "key is required")
	}
}

func TestNewMatch_EmptyValueAllowed(t *testing.T) {
	c, err := NewMatch("category", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Value() != "" {
		t.Errorf("Value() = %q, want empty", c.Value())
	}
}

func TestNewExpression_TooManyConditions(t *testing.T) {
	conds := make([]Condition, MaxConditions+1)
	for i := range conds {
		conds[i] = Condition{key: "k", value: "v"}
	}
	if _, err := NewExpression(conds...); err == nil {
		t.Fatal("expected error")
	}
}

func TestExpression_IsEmpty(t *testing.T) {
	if !(Expression{}).IsEmpty() {
		t.Error("zero Expression should be empty")
	}
	c, _ := NewMatch("category", "1028")
	e, err := NewExpression(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.IsEmpty() {
		t.Error("expression with one condition should not be empty")
	}
	if len(e.Must()) != 1 {
		t.Errorf("Must() len = %d", len(e.Must()))
	}
}
