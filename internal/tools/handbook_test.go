package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/campusbot/campus-linebot-go/internal/catalog"
	"github.com/campusbot/campus-linebot-go/internal/convstate"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/rag"
	"github.com/campusbot/campus-linebot-go/internal/resolve"
)

type stubDocs struct {
	lastFile string
	err      error
}

func (s *stubDocs) DownloadURL(_ context.Context, fileName string) (string, error) {
	s.lastFile = fileName
	if s.err != nil {
		return "", s.err
	}
	return "https://files.example/" + fileName + "?signed=1", nil
}

type stubAnswers struct {
	answer *rag.Answer
	err    error
	calls  int
}

func (s *stubAnswers) Answer(context.Context, string) (*rag.Answer, error) {
	s.calls++
	return s.answer, s.err
}

func (s *stubAnswers) Name() string { return "stub" }

func newHandbookTool(t *testing.T, docs Documents, answers rag.Answerer) *HandbookTool {
	t.Helper()
	states := convstate.NewStore(time.Minute, nil)
	return NewHandbookTool(catalog.DefaultHandbooks, resolve.Config{}, states, docs, answers, logger.New("error"), nil)
}

func TestHandbookDownloadByAbbreviation(t *testing.T) {
	docs := &stubDocs{}
	tool := newHandbookTool(t, docs, nil)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "send me the cs handbook"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if docs.lastFile != "handbook-computer-science.pdf" {
		t.Errorf("presigned file = %q", docs.lastFile)
	}
	if resp.FileURL == "" {
		t.Error("FileURL missing")
	}
	if !strings.Contains(resp.Text, "Computer Science") {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestHandbookDownloadByName(t *testing.T) {
	docs := &stubDocs{}
	tool := newHandbookTool(t, docs, nil)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "physics handbook please"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if docs.lastFile != "handbook-physics.pdf" {
		t.Errorf("presigned file = %q", docs.lastFile)
	}
	if !strings.Contains(resp.FileURL, "signed=1") {
		t.Errorf("FileURL = %q", resp.FileURL)
	}
}

func TestHandbookContentQuestionGoesToQA(t *testing.T) {
	docs := &stubDocs{}
	answers := &stubAnswers{answer: &rag.Answer{Text: "You need 180 credits."}}
	tool := newHandbookTool(t, docs, answers)

	resp, err := tool.Handle(context.Background(), &Request{
		UserID: "u1",
		Text:   "what courses are in the cs handbook?",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if answers.calls != 1 {
		t.Errorf("answer chain calls = %d, want 1", answers.calls)
	}
	if resp.Text != "You need 180 credits." {
		t.Errorf("Text = %q", resp.Text)
	}
	if docs.lastFile != "" {
		t.Errorf("download happened for a content question: %q", docs.lastFile)
	}
}

func TestHandbookArtifactPhraseBeatsContentWords(t *testing.T) {
	docs := &stubDocs{}
	answers := &stubAnswers{answer: &rag.Answer{Text: "ignored"}}
	tool := newHandbookTool(t, docs, answers)

	// "download" marks this as a file request despite the "what".
	resp, err := tool.Handle(context.Background(), &Request{
		UserID: "u1",
		Text:   "what is the link to download the physics handbook",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if answers.calls != 0 {
		t.Errorf("answer chain called %d times, want 0", answers.calls)
	}
	if resp.FileURL == "" {
		t.Error("FileURL missing")
	}
}

func TestHandbookContentQuestionFallsBackToDownload(t *testing.T) {
	docs := &stubDocs{}
	answers := &stubAnswers{err: errors.New("backend down")}
	tool := newHandbookTool(t, docs, answers)

	resp, err := tool.Handle(context.Background(), &Request{
		UserID: "u1",
		Text:   "what are the prerequisites in the cs handbook?",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if resp.FileURL == "" {
		t.Error("expected download fallback when the answer chain fails")
	}
}

func TestHandbookQuestionMarkGoesToQA(t *testing.T) {
	docs := &stubDocs{}
	answers := &stubAnswers{answer: &rag.Answer{Text: "The CS program takes three years."}}
	tool := newHandbookTool(t, docs, answers)

	resp, err := tool.Handle(context.Background(), &Request{
		UserID: "u1",
		Text:   "Computer Science handbook?",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if answers.calls != 1 {
		t.Errorf("answer chain calls = %d, want 1", answers.calls)
	}
	if resp.Text != "The CS program takes three years." {
		t.Errorf("Text = %q", resp.Text)
	}
	if docs.lastFile != "" {
		t.Errorf("download happened for a bare question: %q", docs.lastFile)
	}
}

func TestHandbookUnknownMajorFallsBackToQA(t *testing.T) {
	answers := &stubAnswers{answer: &rag.Answer{Text: "That program moved to the partner campus."}}
	tool := newHandbookTool(t, &stubDocs{}, answers)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "handbook for underwater basket weaving"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if answers.calls != 1 {
		t.Errorf("answer chain calls = %d, want 1", answers.calls)
	}
	if !strings.Contains(resp.Text, "underwater basket weaving") {
		t.Errorf("Text = %q, want the program name echoed", resp.Text)
	}
	if !strings.Contains(resp.Text, "That program moved to the partner campus.") {
		t.Errorf("Text = %q, want the answer included", resp.Text)
	}
	if len(resp.Options) != 0 {
		t.Errorf("Options = %v, want none for a named program", resp.Options)
	}
}

func TestHandbookUnknownMajorWithoutQA(t *testing.T) {
	tool := newHandbookTool(t, &stubDocs{}, nil)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "handbook for underwater basket weaving"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(resp.Text, "academic office") {
		t.Errorf("Text = %q, want academic office referral", resp.Text)
	}
}

func TestHandbookMissingProgramAsksFollowUp(t *testing.T) {
	tool := newHandbookTool(t, &stubDocs{}, nil)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "i need a handbook"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(resp.Options) == 0 {
		t.Fatalf("expected program options, got %+v", resp)
	}
	found := false
	for _, opt := range resp.Options {
		if opt == "Computer Science" {
			found = true
		}
	}
	if !found {
		t.Errorf("Computer Science missing from options %v", resp.Options)
	}

	state, ok := tool.states.Peek("u1")
	if !ok {
		t.Fatal("no pending state recorded")
	}
	if state.PendingIntent != "handbook" {
		t.Errorf("PendingIntent = %q, want handbook", state.PendingIntent)
	}
	if state.PendingSlot != convstate.SlotProgram {
		t.Errorf("PendingSlot = %q, want %q", state.PendingSlot, convstate.SlotProgram)
	}
}

func TestHandbookFollowUpReply(t *testing.T) {
	docs := &stubDocs{}
	tool := newHandbookTool(t, docs, nil)
	ctx := context.Background()

	if _, err := tool.Handle(ctx, &Request{UserID: "u1", Text: "i need a handbook"}); err != nil {
		t.Fatalf("first Handle() error = %v", err)
	}

	resp, err := tool.Handle(ctx, &Request{UserID: "u1", Text: "Physics"})
	if err != nil {
		t.Fatalf("second Handle() error = %v", err)
	}
	if docs.lastFile != "handbook-physics.pdf" {
		t.Errorf("presigned file = %q", docs.lastFile)
	}
	if resp.FileURL == "" {
		t.Error("FileURL missing")
	}
	if _, ok := tool.states.Peek("u1"); ok {
		t.Error("pending state should be consumed")
	}
}

func TestHandbookWithoutStorage(t *testing.T) {
	tool := newHandbookTool(t, nil, nil)

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "send me the cs handbook"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if resp.FileURL != "" {
		t.Errorf("FileURL = %q, want empty", resp.FileURL)
	}
	if !strings.Contains(resp.Text, "not available") {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestIsContentQuestion(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"what courses are in the cs handbook?", true},
		{"do i need prerequisites for physics?", true},
		{"tell me about the iba program requirements", true},
		{"Computer Science handbook?", true},
		{"send me the cs handbook", false},
		{"cs handbook pdf?", false},
		{"cs handbook pdf", false},
		{"handbook for physics", false},
	}
	for _, tt := range tests {
		if got := isContentQuestion(tt.text); got != tt.want {
			t.Errorf("isContentQuestion(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
