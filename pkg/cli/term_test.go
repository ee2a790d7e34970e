package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "close the string", 40, []string{"close the string"}},
		{"wraps", "you need to close the string with a double quote", 16,
			[]string{"you need to", "close the string", "with a double", "quote"}},
		{"long word", "abcdefghijklmnop xy", 5, []string{"abcdefghijklmnop", "xy"}},
		{"empty", "   ", 10, []string{}},
		{"no width", "a b", 0, []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, WrapText(tt.text, tt.width)); diff != "" {
				t.Errorf("WrapText mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIndentState(t *testing.T) {
	is := NewIndentState()
	if is.Current() != "" {
		t.Fatalf("initial indent = %q", is.Current())
	}
	is.Push()
	is.Push()
	if got := is.Current(); got != "    " {
		t.Errorf("indent after two pushes = %q", got)
	}
	is.Pop()
	is.Pop()
	is.Pop()
	if is.Current() != "" {
		t.Errorf("indent should not go below zero, got %q", is.Current())
	}
}
