package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	bm25 "github.com/iwilltry42/bm25-go/bm25"

	"github.com/campusbot/campus-linebot-go/internal/catalog"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/stringutil"
)

// document is one indexed chunk of catalog text. indexText feeds the
// scorer; reply is what the user sees when the chunk wins.
type document struct {
	title     string
	indexText string
	reply     string
}

// FallbackIndex is a BM25 index over the catalog's own text: FAQ answers,
// handbook titles, and location descriptions. It answers by returning the
// best matching chunk verbatim.
type FallbackIndex struct {
	mu     sync.RWMutex
	okapi  *bm25.BM25Okapi
	docs   []document
	cutoff float64
	log    *logger.Logger
}

// tokenize splits on whitespace after normalization.
func tokenize(s string) []string {
	return stringutil.Tokens(s)
}

// NewFallbackIndex builds the index from the loaded catalog.
func NewFallbackIndex(cat *catalog.Catalog, log *logger.Logger) (*FallbackIndex, error) {
	var docs []document
	var corpus []string

	add := func(title, indexText, reply string) {
		if strings.TrimSpace(indexText) == "" {
			return
		}
		docs = append(docs, document{title: title, indexText: indexText, reply: reply})
		corpus = append(corpus, indexText)
	}

	for _, faq := range cat.FAQ {
		add(faq.Question, faq.Question+" "+faq.Answer, faq.Answer)
	}
	for _, hb := range cat.Handbooks {
		add(hb.Major,
			fmt.Sprintf("%s handbook %s", hb.Major, strings.Join(hb.AliasList, " ")),
			fmt.Sprintf("The %s handbook is available for download, just ask me for it.", hb.Major))
	}
	for _, loc := range cat.Locations {
		add(loc.Name,
			fmt.Sprintf("%s %s %s %s",
				loc.Name, strings.Join(loc.AliasList, " "), strings.Join(loc.Tags, " "), loc.Address),
			fmt.Sprintf("%s is on campus, ask me where it is for directions.", loc.Name))
	}

	idx := &FallbackIndex{docs: docs, cutoff: 1.0, log: log.WithModule("rag")}
	if len(corpus) == 0 {
		return idx, nil
	}

	// k1=1.5, b=0.75 are the standard BM25 parameters.
	okapi, err := bm25.NewBM25Okapi(corpus, tokenize, 1.5, 0.75, nil)
	if err != nil {
		return nil, fmt.Errorf("build bm25 index: %w", err)
	}
	idx.okapi = okapi
	idx.log.WithField("docs", len(docs)).Infof("fallback index ready")
	return idx, nil
}

// Answer implements Answerer with the best scoring chunk.
func (idx *FallbackIndex) Answer(_ context.Context, question string) (*Answer, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.okapi == nil {
		return nil, ErrNoAnswer
	}
	tokens := tokenize(question)
	if len(tokens) == 0 {
		return nil, ErrNoAnswer
	}

	scores, err := idx.okapi.GetScores(tokens)
	if err != nil {
		return nil, fmt.Errorf("bm25 scoring: %w", err)
	}

	type scored struct {
		docID int
		score float64
	}
	var hits []scored
	for docID, score := range scores {
		if score > 0 {
			hits = append(hits, scored{docID: docID, score: score})
		}
	}
	if len(hits) == 0 {
		return nil, ErrNoAnswer
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	best := hits[0]
	if best.score < idx.cutoff {
		return nil, ErrNoAnswer
	}
	doc := idx.docs[best.docID]
	return &Answer{
		Text:    doc.reply,
		Sources: []SourceRef{{Title: doc.title}},
	}, nil
}

// Name implements Answerer.
func (idx *FallbackIndex) Name() string {
	return "bm25"
}
