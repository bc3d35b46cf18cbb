package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// geminiClassifier talks to the Gemini API through the official SDK.
type geminiClassifier struct {
	client *genai.Client
	model  string
}

func newGeminiClassifier(ctx context.Context, apiKey, model string) (*geminiClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("api key is empty")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &geminiClassifier{client: client, model: model}, nil
}

func (c *geminiClassifier) Classify(ctx context.Context, system, text string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.1),
		MaxOutputTokens:   16,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(text), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(result.Candidates) == 0 {
		return "", errors.New("empty response from model")
	}
	candidate := result.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", errors.New("no text in response")
	}
	return reply, nil
}

func (c *geminiClassifier) Provider() Provider {
	return ProviderGemini
}

func (c *geminiClassifier) Close() error {
	return nil
}
