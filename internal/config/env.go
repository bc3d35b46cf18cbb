// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Core (Required)
	EnvLineChannelToken  = "CAMPUS_LINE_CHANNEL_ACCESS_TOKEN"
	EnvLineChannelSecret = "CAMPUS_LINE_CHANNEL_SECRET"

	// Server
	EnvPort            = "CAMPUS_PORT"
	EnvLogLevel        = "CAMPUS_LOG_LEVEL"
	EnvShutdownTimeout = "CAMPUS_SHUTDOWN_TIMEOUT"

	// Data
	EnvDataDir = "CAMPUS_DATA_DIR"

	// Dispatch core
	EnvSimilarityThreshold = "CAMPUS_SIMILARITY_THRESHOLD"
	EnvConversationTTL     = "CAMPUS_CONVERSATION_TTL"
	EnvClassificationCache = "CAMPUS_CLASSIFICATION_CACHE_SIZE"

	// Rate Limits
	EnvUserRateBurst  = "CAMPUS_USER_RATE_BURST"
	EnvUserRateRefill = "CAMPUS_USER_RATE_REFILL"

	// Classification LLM
	EnvGeminiAPIKey    = "CAMPUS_GEMINI_API_KEY"
	EnvGroqAPIKey      = "CAMPUS_GROQ_API_KEY"
	EnvClassifierModel = "CAMPUS_CLASSIFIER_MODEL"

	// Semantic QA backend
	EnvQABackendEndpoint = "CAMPUS_QA_BACKEND_ENDPOINT"
	EnvQABackendAPIKey   = "CAMPUS_QA_BACKEND_API_KEY"
	EnvQABackendModel    = "CAMPUS_QA_BACKEND_MODEL"

	// Handbook artifact storage (S3-compatible)
	EnvStorageEndpoint  = "CAMPUS_STORAGE_ENDPOINT"
	EnvStorageAccessKey = "CAMPUS_STORAGE_ACCESS_KEY_ID"
	EnvStorageSecretKey = "CAMPUS_STORAGE_SECRET_ACCESS_KEY"
	EnvStorageBucket    = "CAMPUS_STORAGE_BUCKET"

	// Observability
	EnvMetricsUsername     = "CAMPUS_METRICS_USERNAME"
	EnvMetricsPassword     = "CAMPUS_METRICS_PASSWORD"
	EnvSentryToken         = "CAMPUS_SENTRY_TOKEN"
	EnvSentryHost          = "CAMPUS_SENTRY_HOST"
	EnvBetterStackToken    = "CAMPUS_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "CAMPUS_BETTERSTACK_ENDPOINT"
	EnvEnvironment         = "CAMPUS_ENVIRONMENT"
)
