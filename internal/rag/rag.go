// Package rag answers open questions over campus documents.
//
// A remote retrieval backend does the heavy lifting when one is
// configured. A local BM25 index over the catalog text serves as the
// fallback, so the bot can still answer from its own data when the
// backend is down or absent.
package rag

import "context"

// SourceRef names a document a generated answer drew on.
type SourceRef struct {
	Title string
	URL   string
}

// Answer is a generated reply with its supporting sources.
type Answer struct {
	Text    string
	Sources []SourceRef
}

// Answerer produces answers for open questions.
type Answerer interface {
	// Answer responds to the question, or returns an error when no
	// answer can be produced.
	Answer(ctx context.Context, question string) (*Answer, error)

	// Name identifies the backend for metrics and logs.
	Name() string
}

// Chain tries each answerer in order and returns the first answer.
type Chain struct {
	backends []Answerer
}

// NewChain builds an answer chain. nil entries are skipped.
func NewChain(backends ...Answerer) *Chain {
	var kept []Answerer
	for _, b := range backends {
		if b != nil {
			kept = append(kept, b)
		}
	}
	return &Chain{backends: kept}
}

// Answer walks the chain. The last error wins when every backend fails.
func (c *Chain) Answer(ctx context.Context, question string) (*Answer, error) {
	var lastErr error
	for _, b := range c.backends {
		answer, err := b.Answer(ctx, question)
		if err == nil {
			return answer, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = ErrNoAnswer
	}
	return nil, lastErr
}

// Name implements Answerer.
func (c *Chain) Name() string {
	return "chain"
}

// Len reports how many backends the chain holds.
func (c *Chain) Len() int {
	return len(c.backends)
}
