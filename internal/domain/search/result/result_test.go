package result

import "testing"

func TestNew(t *testing.T) {
	s := New("a1", 0.91, "Hope Story", "...")

	if s.ID() != "a1" {
		t.Errorf("ID() = %q", s.ID())
	}
	if s.Score() != 0.91 {
		t.Errorf("Score() = %f", s.Score())
	}
	if s.Title() != "Hope Story" {
		t.Errorf("Title() = %q", s.Title())
	}
	if s.Description() != "..." {
		t.Errorf("Description() = %q", s.Description())
	}
}

func TestNew_EmptyDescription(t *testing.T) {
	s := New("a2", 0.87, "Recovery Tale", "")
	if s.Description() != "" {
		t.Errorf("Description() = %q, want empty", s.Description())
	}
}
