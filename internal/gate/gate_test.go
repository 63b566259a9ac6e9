package gate

import (
	"errors"
	"testing"
)

func TestSubmit(t *testing.T) {
	t.Parallel()

	g, err := New("633574", "wrong")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name   string
		digits string
		want   bool
	}{
		{"correct", "633574", true},
		{"zeros", "000000", false},
		{"short", "63357", false},
		{"long", "6335740", false},
		{"letters", "63357a", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := g.Submit(tt.digits)
			if res.Accepted != tt.want {
				t.Fatalf("Submit(%q).Accepted = %v, want %v", tt.digits, res.Accepted, tt.want)
			}
			if !tt.want && res.Message != "wrong" {
				t.Errorf("Submit(%q).Message = %q, want %q", tt.digits, res.Message, "wrong")
			}
			if tt.want && res.Message != "" {
				t.Errorf("accepted result carries message %q", res.Message)
			}
		})
	}
}

func TestSubmit_RepeatedRejectionsKeepGate(t *testing.T) {
	t.Parallel()

	g, err := New("8753", "no")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for range 3 {
		if !g.Submit("1111").Rejected() {
			t.Fatal("wrong code accepted")
		}
	}
	if !g.Submit("8753").Accepted {
		t.Error("correct code rejected after earlier failures")
	}
	if g.Len() != 4 {
		t.Errorf("Len() = %d, want 4", g.Len())
	}
}

func TestNew_BadSecret(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "12a4", " 123"} {
		if _, err := New(s, ""); !errors.Is(err, ErrBadSecret) {
			t.Errorf("New(%q) error = %v, want ErrBadSecret", s, err)
		}
	}
}
