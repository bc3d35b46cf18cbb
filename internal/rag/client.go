package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/campusbot/campus-linebot-go/internal/metrics"
)

// ErrNoAnswer signals that no backend produced an answer.
var ErrNoAnswer = errors.New("no answer available")

const qaSystemPrompt = "You are a helpful assistant for a university campus. " +
	"Answer the student's question concisely. If you cite campus documents, " +
	"list each title on its own line after the answer, prefixed with 'Source: '."

// Client asks a remote OpenAI-compatible retrieval backend.
type Client struct {
	client  openai.Client
	model   string
	timeout time.Duration
	metrics *metrics.Metrics
}

// ClientConfig configures the remote backend.
type ClientConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
	Metrics  *metrics.Metrics
}

// NewClient builds the remote backend. Returns nil when no endpoint is
// configured.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Endpoint == "" {
		return nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	opts := []option.RequestOption{option.WithBaseURL(cfg.Endpoint)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return &Client{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		metrics: cfg.Metrics,
	}
}

// Answer implements Answerer against the remote backend.
func (c *Client) Answer(ctx context.Context, question string) (*Answer, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(callCtx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(qaSystemPrompt),
			openai.UserMessage(question),
		},
		Temperature: openai.Float(0.3),
	})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		c.metrics.RecordQABackend(c.Name(), "error", elapsed)
		return nil, fmt.Errorf("qa backend: %w", err)
	}
	if len(resp.Choices) == 0 {
		c.metrics.RecordQABackend(c.Name(), "empty", elapsed)
		return nil, ErrNoAnswer
	}
	c.metrics.RecordQABackend(c.Name(), "ok", elapsed)

	return parseAnswer(resp.Choices[0].Message.Content), nil
}

// Name implements Answerer.
func (c *Client) Name() string {
	return "remote"
}

// parseAnswer splits 'Source: ' trailer lines out of the reply body.
func parseAnswer(content string) *Answer {
	var bodyLines []string
	var sources []SourceRef
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if title, ok := strings.CutPrefix(trimmed, "Source: "); ok {
			sources = append(sources, SourceRef{Title: strings.TrimSpace(title)})
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	return &Answer{
		Text:    strings.TrimSpace(strings.Join(bodyLines, "\n")),
		Sources: sources,
	}
}
