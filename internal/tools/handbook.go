package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusbot/campus-linebot-go/internal/catalog"
	"github.com/campusbot/campus-linebot-go/internal/channel"
	"github.com/campusbot/campus-linebot-go/internal/convstate"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/metrics"
	"github.com/campusbot/campus-linebot-go/internal/rag"
	"github.com/campusbot/campus-linebot-go/internal/resolve"
	"github.com/campusbot/campus-linebot-go/internal/stringutil"
)

// Documents returns presigned handbook download links.
type Documents interface {
	DownloadURL(ctx context.Context, fileName string) (string, error)
}

// HandbookTool delivers major handbooks. Requests for the document itself
// get a download link; questions about its contents are forwarded to the
// answer chain instead, since a PDF link does not answer "what courses do
// I need".
type HandbookTool struct {
	handbooks []catalog.Handbook
	resolver  *resolve.Resolver
	states    *convstate.Store
	docs      Documents
	answers   rag.Answerer
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// MajorAbbreviations expands the short forms students actually type.
var MajorAbbreviations = map[string]string{
	"cs":      "computer science",
	"ris":     "robotics and intelligent systems",
	"sdt":     "software, data and technology",
	"iba":     "international business administration",
	"bccb":    "biochemistry and cell biology",
	"gem":     "global economics and management",
	"biochem": "biochemistry and cell biology",
}

// NewHandbookTool builds the handbook handler. docs may be nil when no
// object storage is configured; answers may be nil when no QA backend
// exists.
func NewHandbookTool(handbooks []catalog.Handbook, cfg resolve.Config, states *convstate.Store, docs Documents, answers rag.Answerer, log *logger.Logger, m *metrics.Metrics) *HandbookTool {
	if cfg.Abbreviations == nil {
		cfg.Abbreviations = MajorAbbreviations
	}
	return &HandbookTool{
		handbooks: handbooks,
		resolver:  resolve.New(catalog.HandbookEntries(handbooks), cfg),
		states:    states,
		docs:      docs,
		answers:   answers,
		log:       log.WithModule("handbook"),
		metrics:   m,
	}
}

func (t *HandbookTool) Name() string {
	return "handbook"
}

func (t *HandbookTool) Description() string {
	return "download the official handbook PDF for a study program"
}

// contentIndicators signal a question about what the handbook says.
var contentIndicators = []string{
	"what", "how", "why", "explain", "tell me about", "describe",
	"is there", "are there", "do i need", "requirements", "courses",
	"prerequisites", "credits",
}

// artifactIndicators signal a request for the document itself and
// override the content heuristic.
var artifactIndicators = []string{
	"send me", "send the", "download", "link", "pdf", "file", "document",
}

// isContentQuestion reports whether the message asks about handbook
// contents rather than for the handbook file. A question mark alone
// marks a content question unless an artifact phrase overrides it.
func isContentQuestion(text string) bool {
	q := stringutil.Normalize(text)
	if stringutil.ContainsAny(q, artifactIndicators...) {
		return false
	}
	return strings.Contains(q, "?") || stringutil.ContainsAny(q, contentIndicators...)
}

const programNotRecognized = "😕 I couldn't match that to a study program. " +
	"Please name one of the listed majors."

func (t *HandbookTool) Handle(ctx context.Context, req *Request) (*channel.Response, error) {
	text := req.Text
	followUp := false
	if state, ok := t.states.Peek(req.UserID); ok && state.PendingIntent == t.Name() {
		t.states.Consume(req.UserID)
		text = state.OriginalQuery + " " + req.Text
		followUp = true
	}

	if isContentQuestion(text) && t.answers != nil {
		answer, err := t.answers.Answer(ctx, text)
		if err == nil {
			return channel.NewText(answer.Text), nil
		}
		t.log.WithUserID(req.UserID).WithError(err).Warnf("content question fell back to download")
	}

	// When the message names its program explicitly, only that phrase
	// goes through the resolver. Filler words never match an alias then.
	query := text
	major, majorMentioned := extractMajor(text)
	if majorMentioned {
		query = major
	}

	match, ok := t.resolver.Resolve(query)
	if !ok {
		if majorMentioned {
			return t.programFallback(ctx, req.UserID, major)
		}
		if followUp {
			// One follow-up only. A second miss ends the exchange.
			return channel.NewText(programNotRecognized), nil
		}
		t.states.Begin(req.UserID, convstate.State{
			PendingIntent: t.Name(),
			PendingSlot:   convstate.SlotProgram,
			OriginalQuery: req.Text,
		})
		return channel.NewFollowUp("📖 Which program's handbook do you need?", t.majors()...), nil
	}
	t.metrics.RecordResolve("handbook", match.Strategy.String())

	hb, ok := match.Entry.(catalog.Handbook)
	if !ok {
		return nil, fmt.Errorf("handbook resolver returned %T", match.Entry)
	}

	if t.docs == nil {
		return channel.NewText(fmt.Sprintf(
			"The %s handbook exists but downloads are not available right now. "+
				"Please ask your academic advisor for a copy.", hb.Major)), nil
	}

	url, err := t.docs.DownloadURL(ctx, hb.FileName)
	if err != nil {
		return nil, fmt.Errorf("presign handbook %q: %w", hb.FileName, err)
	}

	resp := channel.NewText(fmt.Sprintf("📖 Here is the %s handbook. The link is valid for 24 hours.", hb.Major))
	resp.FileURL = url
	return resp, nil
}

// programFallback answers with whatever the QA chain knows about a
// program no handbook covers.
func (t *HandbookTool) programFallback(ctx context.Context, userID, major string) (*channel.Response, error) {
	if t.answers != nil {
		question := fmt.Sprintf(
			"What information do you have about the %s program at the university?", major)
		answer, err := t.answers.Answer(ctx, question)
		if err == nil {
			return channel.NewText(fmt.Sprintf(
				"I couldn't find a handbook for %s, but here's what I know:\n\n%s",
				major, answer.Text)), nil
		}
		t.log.WithUserID(userID).WithError(err).Warnf("program fallback answer failed")
	}
	return channel.NewText(fmt.Sprintf(
		"I couldn't find a handbook for %s. Please check with the academic office for information.",
		major)), nil
}

func (t *HandbookTool) majors() []string {
	out := make([]string, 0, len(t.handbooks))
	for _, hb := range t.handbooks {
		out = append(out, hb.Major)
	}
	return out
}
