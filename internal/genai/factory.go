package genai

import "context"

// NewClassifier creates a classifier from the configuration. It returns
// nil with no error when no API key is configured; callers treat a nil
// classifier as disabled.
func NewClassifier(ctx context.Context, cfg Config) (Classifier, error) {
	switch {
	case cfg.GeminiAPIKey != "":
		return newGeminiClassifier(ctx, cfg.GeminiAPIKey, cfg.Model)
	case cfg.GroqAPIKey != "":
		return newOpenAIClassifier(ProviderGroq, cfg.GroqAPIKey, cfg.Model)
	default:
		return nil, nil
	}
}
