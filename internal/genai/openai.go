package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiClassifier talks to any OpenAI-compatible chat completion API.
type openaiClassifier struct {
	client   openai.Client
	model    string
	provider Provider
}

func newOpenAIClassifier(provider Provider, apiKey, model string) (*openaiClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("api key is empty")
	}
	baseURL, ok := ProviderEndpoint[provider]
	if !ok {
		return nil, fmt.Errorf("no endpoint for provider %s", provider)
	}
	if model == "" {
		model = DefaultGroqModel
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &openaiClassifier{client: client, model: model, provider: provider}, nil
}

func (c *openaiClassifier) Classify(ctx context.Context, system, text string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(text),
		},
		// Low temperature keeps the label choice stable.
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(16),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *openaiClassifier) Provider() Provider {
	return c.provider
}

func (c *openaiClassifier) Close() error {
	return nil
}
