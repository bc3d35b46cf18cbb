// Package stringutil provides text normalization helpers shared by the
// resolver, classifier, and tools.
package stringutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticFolder strips combining marks so that "café" folds to "cafe".
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics removes diacritical marks from s.
// Returns s unchanged if the transform fails (never happens for valid UTF-8).
func FoldDiacritics(s string) string {
	folded, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		return s
	}
	return folded
}

// Normalize lower-cases, trims, folds diacritics, and collapses internal
// whitespace. This is the canonical form used for matching and cache keys.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(FoldDiacritics(s)))
	return strings.Join(strings.Fields(s), " ")
}

// Tokens splits s into normalized word tokens, dropping punctuation.
func Tokens(s string) []string {
	return strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// SplitList splits a comma-separated value into trimmed non-empty items.
// Catalog aliases and tags are stored in this form.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ContainsWord reports whether any whole token of text equals word
// (both normalized).
func ContainsWord(text, word string) bool {
	word = Normalize(word)
	for _, tok := range Tokens(text) {
		if tok == word {
			return true
		}
	}
	return false
}

// ContainsAny reports whether the normalized text contains any of the
// given substrings.
func ContainsAny(text string, subs ...string) bool {
	text = Normalize(text)
	for _, sub := range subs {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}

// TruncateRunes shortens text to at most maxRunes runes, appending an
// ellipsis when anything was cut.
func TruncateRunes(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
