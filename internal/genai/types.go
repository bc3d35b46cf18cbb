// Package genai wraps the LLM APIs used for message classification.
//
// Two provider families are supported: Gemini through the official
// google.golang.org/genai SDK, and Groq (or any OpenAI-compatible
// endpoint) through github.com/openai/openai-go.
package genai

import "context"

// Provider identifies an LLM backend.
type Provider string

const (
	// ProviderGemini is Google's Gemini API (native SDK).
	ProviderGemini Provider = "gemini"
	// ProviderGroq is Groq's OpenAI-compatible API.
	ProviderGroq Provider = "groq"
)

// ProviderEndpoint maps OpenAI-compatible providers to their base URL.
var ProviderEndpoint = map[Provider]string{
	ProviderGroq: "https://api.groq.com/openai/v1/",
}

func (p Provider) String() string {
	return string(p)
}

// Classifier sends a classification prompt to a model and returns its raw
// text reply. Callers own prompt construction and reply parsing.
type Classifier interface {
	// Classify sends the system instruction and user text and returns
	// the model's text reply.
	Classify(ctx context.Context, system, text string) (string, error)

	// Provider returns the backend type for metrics and logs.
	Provider() Provider

	// Close releases resources held by the classifier.
	Close() error
}

// Config selects and configures the classification backend.
type Config struct {
	// GeminiAPIKey enables the Gemini backend when set.
	GeminiAPIKey string

	// GroqAPIKey enables the Groq backend when set. Gemini wins when
	// both keys are present.
	GroqAPIKey string

	// Model overrides the provider's default model.
	Model string
}

// Default models per provider.
const (
	DefaultGeminiModel = "gemini-2.5-flash-lite"
	DefaultGroqModel   = "llama-3.1-8b-instant"
)
