package tools

import (
	"context"

	"github.com/campusbot/campus-linebot-go/internal/catalog"
	"github.com/campusbot/campus-linebot-go/internal/channel"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/metrics"
	"github.com/campusbot/campus-linebot-go/internal/rag"
	"github.com/campusbot/campus-linebot-go/internal/resolve"
	"github.com/campusbot/campus-linebot-go/internal/stringutil"
)

// FAQTool answers recurring questions from the curated FAQ. Questions
// that miss every entry fall through to the answer chain.
type FAQTool struct {
	faq       []catalog.FAQEntry
	threshold float64
	answers   rag.Answerer
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewFAQTool builds the FAQ handler. answers may be nil.
func NewFAQTool(faq []catalog.FAQEntry, threshold float64, answers rag.Answerer, log *logger.Logger, m *metrics.Metrics) *FAQTool {
	if threshold <= 0 {
		threshold = resolve.DefaultThreshold
	}
	return &FAQTool{
		faq:       faq,
		threshold: threshold,
		answers:   answers,
		log:       log.WithModule("faq"),
		metrics:   m,
	}
}

func (t *FAQTool) Name() string {
	return "faq"
}

func (t *FAQTool) Description() string {
	return "curated answers to common campus questions like wifi, campus card, housing, registration"
}

func (t *FAQTool) Handle(ctx context.Context, req *Request) (*channel.Response, error) {
	if entry, strategy, ok := t.match(req.Text); ok {
		t.metrics.RecordResolve("faq", strategy)
		return channel.NewText(entry.Answer), nil
	}

	if t.answers != nil {
		answer, err := t.answers.Answer(ctx, req.Text)
		if err == nil {
			t.metrics.RecordResolve("faq", "qa_chain")
			return channel.NewText(answer.Text), nil
		}
		t.log.WithUserID(req.UserID).WithError(err).Warnf("qa chain gave no answer")
	}

	return channel.NewText("🤔 I don't have an answer for that one. " +
		"The student services desk in the Campus Center can probably help."), nil
}

// match runs exact, fuzzy, then word-overlap matching over the FAQ.
func (t *FAQTool) match(text string) (catalog.FAQEntry, string, bool) {
	q := stringutil.Normalize(text)
	if q == "" {
		return catalog.FAQEntry{}, "", false
	}

	for _, entry := range t.faq {
		if stringutil.Normalize(entry.Question) == q {
			return entry, "exact", true
		}
	}

	var best catalog.FAQEntry
	bestScore := 0.0
	for _, entry := range t.faq {
		score := resolve.Ratio(q, stringutil.Normalize(entry.Question))
		if score > bestScore {
			best, bestScore = entry, score
		}
	}
	if bestScore >= t.threshold {
		return best, "similarity", true
	}

	// Word overlap catches rephrasings the ratio misses, requiring at
	// least two shared content words.
	queryTokens := tokenSet(q)
	for _, entry := range t.faq {
		shared := 0
		for token := range tokenSet(stringutil.Normalize(entry.Question)) {
			if stopWords[token] {
				continue
			}
			if _, ok := queryTokens[token]; ok {
				shared++
			}
		}
		if shared >= 2 {
			return entry, "word_overlap", true
		}
	}

	return catalog.FAQEntry{}, "", false
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "i": true, "my": true, "do": true,
	"how": true, "where": true, "who": true, "to": true, "on": true,
	"in": true, "is": true, "can": true, "get": true,
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range stringutil.Tokens(s) {
		set[tok] = struct{}{}
	}
	return set
}
