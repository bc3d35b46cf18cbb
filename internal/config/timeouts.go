package config

import "time"

// Timeout constants shared across adapters.
// External calls get their own deadlines here; the dispatch core itself
// never enforces timeouts (see the adapters for ownership).
const (
	// ClassifierTimeout bounds a single classification LLM call.
	ClassifierTimeout = 10 * time.Second

	// QABackendTimeout bounds a semantic QA backend call.
	QABackendTimeout = 30 * time.Second

	// PresignExpiry is how long handbook download links stay valid.
	PresignExpiry = 24 * time.Hour

	// WebhookHTTPRead is the HTTP server read/header timeout.
	WebhookHTTPRead = 10 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout.
	WebhookHTTPWrite = 60 * time.Second

	// WebhookHTTPIdle is the HTTP server idle timeout.
	WebhookHTTPIdle = 120 * time.Second

	// WebhookProcessing bounds processing of a single webhook event batch.
	WebhookProcessing = 50 * time.Second

	// StateCleanupInterval is how often expired conversation states and
	// inactive rate limiters are swept.
	StateCleanupInterval = time.Minute
)
