// Package resolve matches free-form user text against catalog entries.
//
// Matching runs a fixed cascade from the most precise strategy to the
// loosest. The first strategy that produces a hit wins, so a query that
// names an entry exactly never falls through to fuzzy scoring.
package resolve

import (
	"strings"

	"github.com/campusbot/campus-linebot-go/internal/catalog"
	"github.com/campusbot/campus-linebot-go/internal/stringutil"
)

// Strategy identifies which step of the cascade produced a match.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyAbbrev
	StrategyExactName
	StrategyExactAlias
	StrategyWholeWord
	StrategySubstring
	StrategyAliasSubstring
	StrategyAliasOverlap
	StrategySimilarity
)

var strategyNames = map[Strategy]string{
	StrategyNone:           "none",
	StrategyAbbrev:         "abbrev",
	StrategyExactName:      "exact_name",
	StrategyExactAlias:     "exact_alias",
	StrategyWholeWord:      "whole_word",
	StrategySubstring:      "substring",
	StrategyAliasSubstring: "alias_substring",
	StrategyAliasOverlap:   "alias_overlap",
	StrategySimilarity:     "similarity",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// Match is a resolved entry with the strategy and confidence that found it.
type Match struct {
	Entry    catalog.Entry
	Strategy Strategy
	Score    float64
}

// Config tunes the resolver.
type Config struct {
	// SimilarityThreshold is the minimum ratio the fuzzy step accepts.
	SimilarityThreshold float64

	// Abbreviations maps short forms to the phrase they expand to,
	// e.g. "cs" to "computer science". Expansion happens before the
	// cascade so the expanded form goes through every strategy.
	Abbreviations map[string]string
}

// DefaultThreshold is the similarity cutoff used when none is configured.
const DefaultThreshold = 0.6

// Resolver matches query text against a fixed set of entries.
type Resolver struct {
	entries   []catalog.Entry
	cfg       Config
	nameIndex map[string]int
}

// New builds a resolver over the given entries. Entry order is preserved
// and breaks ties in the fuzzy step.
func New(entries []catalog.Entry, cfg Config) *Resolver {
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = DefaultThreshold
	}
	nameIndex := make(map[string]int, len(entries))
	for i, e := range entries {
		nameIndex[stringutil.Normalize(e.PrimaryName())] = i
	}
	return &Resolver{entries: entries, cfg: cfg, nameIndex: nameIndex}
}

// Resolve runs the cascade and returns the best match, or ok=false when
// nothing clears the similarity threshold.
func (r *Resolver) Resolve(query string) (Match, bool) {
	q := stringutil.Normalize(query)
	if q == "" {
		return Match{}, false
	}

	abbrevUsed := false
	if expanded, ok := r.cfg.Abbreviations[q]; ok {
		q = stringutil.Normalize(expanded)
		abbrevUsed = true
	}

	if m, ok := r.exact(q); ok {
		if abbrevUsed {
			m.Strategy = StrategyAbbrev
		}
		return m, true
	}
	if m, ok := r.wholeWord(q); ok {
		return m, true
	}
	if m, ok := r.substring(q); ok {
		return m, true
	}
	if m, ok := r.aliasSubstring(q); ok {
		return m, true
	}
	if m, ok := r.aliasOverlap(q); ok {
		return m, true
	}
	return r.similarity(q)
}

// exact matches the whole query against a primary name or alias.
func (r *Resolver) exact(q string) (Match, bool) {
	if i, ok := r.nameIndex[q]; ok {
		return Match{Entry: r.entries[i], Strategy: StrategyExactName, Score: 1.0}, true
	}
	for _, e := range r.entries {
		for _, alias := range e.Aliases() {
			if stringutil.Normalize(alias) == q {
				return Match{Entry: e, Strategy: StrategyExactAlias, Score: 1.0}, true
			}
		}
	}
	return Match{}, false
}

// wholeWord matches when a single query token equals a whole token of an
// entry's primary name, so "where is the ocean lab located" still finds
// Ocean Lab.
func (r *Resolver) wholeWord(q string) (Match, bool) {
	queryTokens := stringutil.Tokens(q)
	if len(queryTokens) == 0 {
		return Match{}, false
	}
	for _, e := range r.entries {
		nameTokens := make(map[string]struct{})
		for _, t := range stringutil.Tokens(stringutil.Normalize(e.PrimaryName())) {
			nameTokens[t] = struct{}{}
		}
		for _, token := range queryTokens {
			if _, ok := nameTokens[token]; ok {
				return Match{Entry: e, Strategy: StrategyWholeWord, Score: 0.9}, true
			}
		}
	}
	return Match{}, false
}

// substring matches names embedded without word boundaries.
func (r *Resolver) substring(q string) (Match, bool) {
	for _, e := range r.entries {
		name := stringutil.Normalize(e.PrimaryName())
		if name != "" && (strings.Contains(q, name) || strings.Contains(name, q)) {
			return Match{Entry: e, Strategy: StrategySubstring, Score: 0.8}, true
		}
	}
	return Match{}, false
}

// aliasSubstring extends the substring step to aliases.
func (r *Resolver) aliasSubstring(q string) (Match, bool) {
	for _, e := range r.entries {
		for _, alias := range e.Aliases() {
			a := stringutil.Normalize(alias)
			if a == "" {
				continue
			}
			if strings.Contains(q, a) || strings.Contains(a, q) {
				return Match{Entry: e, Strategy: StrategyAliasSubstring, Score: 0.7}, true
			}
		}
	}
	return Match{}, false
}

// aliasOverlap matches when a query token longer than two characters appears
// anywhere inside an alias, catching clipped forms like "newm" for "NewMerc".
// Short tokens are skipped so stop words never collide with short aliases.
func (r *Resolver) aliasOverlap(q string) (Match, bool) {
	queryTokens := stringutil.Tokens(q)
	for _, e := range r.entries {
		for _, alias := range e.Aliases() {
			a := stringutil.Normalize(alias)
			if a == "" {
				continue
			}
			for _, token := range queryTokens {
				if len(token) > 2 && strings.Contains(a, token) {
					return Match{Entry: e, Strategy: StrategyAliasOverlap, Score: 0.6}, true
				}
			}
		}
	}
	return Match{}, false
}

// similarity is the last resort: the best ratio over names and aliases,
// accepted only above the configured threshold. Ties keep catalog order.
func (r *Resolver) similarity(q string) (Match, bool) {
	var best Match
	for _, e := range r.entries {
		candidates := append([]string{e.PrimaryName()}, e.Aliases()...)
		for _, candidate := range candidates {
			score := Ratio(q, stringutil.Normalize(candidate))
			if score > best.Score {
				best = Match{Entry: e, Strategy: StrategySimilarity, Score: score}
			}
		}
	}
	if best.Score < r.cfg.SimilarityThreshold {
		return Match{}, false
	}
	return best, true
}
