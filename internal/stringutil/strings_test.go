package stringutil

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Ocean Lab", "ocean lab"},
		{"trim", "  krupp  ", "krupp"},
		{"collapse_whitespace", "college   iii", "college iii"},
		{"diacritics", "Café", "cafe"},
		{"german_umlaut", "Ausländerbehörde", "auslanderbehorde"},
		{"empty", "", ""},
		{"only_spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Where is the Ocean Lab?")
	want := []string{"where", "is", "the", "ocean", "lab"}
	if !slices.Equal(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"basic", "OL, ocean laboratory", []string{"OL", "ocean laboratory"}},
		{"empty", "", nil},
		{"trailing_comma", "printer,", []string{"printer"}},
		{"blank_items", " , ,study", []string{"study"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitList(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("SplitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestContainsWord(t *testing.T) {
	if !ContainsWord("where is krupp college", "Krupp") {
		t.Error("expected whole-word match for krupp")
	}
	if ContainsWord("handbook", "book") {
		t.Error("substring must not count as a whole word")
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"short_unchanged", "hello", 10, "hello"},
		{"exact_unchanged", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"tiny_budget", "hello", 2, "he"},
		{"multibyte", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.input, tt.maxRunes); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.maxRunes, got, tt.want)
			}
		})
	}
}
