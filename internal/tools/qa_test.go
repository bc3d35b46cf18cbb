package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/rag"
)

func TestQAAnswer(t *testing.T) {
	answers := &stubAnswers{answer: &rag.Answer{Text: "The gym opens at 7."}}
	tool := NewQATool(answers, logger.New("error"))

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "when does the gym open"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if resp.Text != "The gym opens at 7." {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestQAAnswerWithSources(t *testing.T) {
	answers := &stubAnswers{answer: &rag.Answer{
		Text: "The gym opens at 7.",
		Sources: []rag.SourceRef{
			{Title: "Sports Guide"},
			{Title: "Campus Site", URL: "https://campus.example/gym"},
		},
	}}
	tool := NewQATool(answers, logger.New("error"))

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "when does the gym open"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	for _, want := range []string{"📚 Sources:", "- Sports Guide", "- Campus Site (https://campus.example/gym)"} {
		if !strings.Contains(resp.Text, want) {
			t.Errorf("response missing %q:\n%s", want, resp.Text)
		}
	}
}

func TestQAApologyOnError(t *testing.T) {
	answers := &stubAnswers{err: errors.New("down")}
	tool := NewQATool(answers, logger.New("error"))

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "anything"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if resp.Text != qaApology {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestQAApologyWithoutBackend(t *testing.T) {
	tool := NewQATool(nil, logger.New("error"))

	resp, err := tool.Handle(context.Background(), &Request{UserID: "u1", Text: "anything"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if resp.Text != qaApology {
		t.Errorf("Text = %q", resp.Text)
	}
}
