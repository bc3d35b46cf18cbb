package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusbot/campus-linebot-go/internal/channel"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/rag"
)

// QATool answers open questions through the retrieval chain. It is also
// the sink for everything no other tool claims.
type QATool struct {
	answers rag.Answerer
	log     *logger.Logger
}

// NewQATool builds the open QA handler. answers may be nil.
func NewQATool(answers rag.Answerer, log *logger.Logger) *QATool {
	return &QATool{answers: answers, log: log.WithModule("qa")}
}

func (t *QATool) Name() string {
	return "qa"
}

func (t *QATool) Description() string {
	return "any other question, answered from campus documents when possible"
}

const qaApology = "🙇 Sorry, I can't answer that right now. Please try again later."

func (t *QATool) Handle(ctx context.Context, req *Request) (*channel.Response, error) {
	if t.answers == nil {
		return channel.NewText(qaApology), nil
	}

	answer, err := t.answers.Answer(ctx, req.Text)
	if err != nil {
		t.log.WithUserID(req.UserID).WithError(err).Warnf("answer chain failed")
		return channel.NewText(qaApology), nil
	}

	return channel.NewText(formatAnswer(answer)), nil
}

// formatAnswer appends a source list when the answer cites documents.
func formatAnswer(answer *rag.Answer) string {
	if len(answer.Sources) == 0 {
		return answer.Text
	}
	var sb strings.Builder
	sb.WriteString(answer.Text)
	sb.WriteString("\n\n📚 Sources:")
	for _, src := range answer.Sources {
		if src.URL != "" {
			fmt.Fprintf(&sb, "\n- %s (%s)", src.Title, src.URL)
		} else {
			fmt.Fprintf(&sb, "\n- %s", src.Title)
		}
	}
	return sb.String()
}
