package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/campusbot/campus-linebot-go/internal/catalog"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/rag"
)

func newFAQTool(t *testing.T, answers rag.Answerer) *FAQTool {
	t.Helper()
	return NewFAQTool(catalog.DefaultFAQ, 0.6, answers, logger.New("error"), nil)
}

func TestFAQExactMatch(t *testing.T) {
	tool := newFAQTool(t, nil)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "How do I get a locker?"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(resp.Text, "basement service windows") {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestFAQFuzzyMatch(t *testing.T) {
	tool := newFAQTool(t, nil)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "how do i get a lockr"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(resp.Text, "basement service windows") {
		t.Errorf("fuzzy match failed: %q", resp.Text)
	}
}

func TestFAQWordOverlap(t *testing.T) {
	tool := newFAQTool(t, nil)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "campus card top up location"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(resp.Text, "Top-up terminals") {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestFAQFallsThroughToQA(t *testing.T) {
	answers := &stubAnswers{answer: &rag.Answer{Text: "From the backend."}}
	tool := newFAQTool(t, answers)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "can I bring my pet iguana"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if answers.calls != 1 {
		t.Errorf("answer chain calls = %d, want 1", answers.calls)
	}
	if resp.Text != "From the backend." {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestFAQApologyWhenNothingMatches(t *testing.T) {
	answers := &stubAnswers{err: errors.New("down")}
	tool := newFAQTool(t, answers)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "can I bring my pet iguana"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(resp.Text, "student services desk") {
		t.Errorf("Text = %q", resp.Text)
	}
}
