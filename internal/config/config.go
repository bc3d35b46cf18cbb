// Package config provides application configuration management.
// It loads settings from environment variables (with .env support) and
// provides defaults for the server, classifier, resolver, and adapters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// LINE Bot Configuration
	LineChannelToken  string
	LineChannelSecret string

	// Classification LLM (optional; empty keys disable the LLM pass)
	GeminiAPIKey    string // Gemini classifier provider
	GroqAPIKey      string // Groq classifier provider (OpenAI-compatible)
	ClassifierModel string // Model override (empty = provider default)

	// Semantic QA backend (optional; empty endpoint falls back to local BM25)
	QABackendEndpoint string // OpenAI-compatible RAG endpoint base URL
	QABackendAPIKey   string
	QABackendModel    string

	// Handbook artifact storage (optional; empty endpoint disables file delivery)
	StorageEndpoint  string // S3-compatible endpoint (e.g. Cloudflare R2)
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string

	// Observability
	MetricsUsername     string // Username for /metrics Basic Auth (default: "prometheus")
	MetricsPassword     string // Password for /metrics Basic Auth (empty = no auth)
	SentryToken         string // Better Stack Errors token (empty = disabled)
	SentryHost          string // Better Stack Errors ingest host
	BetterStackToken    string // Better Stack Logs token (empty = disabled)
	BetterStackEndpoint string
	Environment         string // Deployment environment for error tracking

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir string // Directory holding the catalog SQLite database

	// Dispatch core tuning
	SimilarityThreshold float64       // Resolver similarity cutoff (default 0.6)
	ConversationTTL     time.Duration // Pending slot-filling state expiry (default 10m)
	ClassificationCache int           // Bounded LRU size for LLM classifications

	// Rate limiting
	UserRateBurst  float64 // Maximum burst tokens per user
	UserRateRefill float64 // Tokens refilled per second
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LineChannelToken:  getEnv(EnvLineChannelToken, ""),
		LineChannelSecret: getEnv(EnvLineChannelSecret, ""),

		GeminiAPIKey:    getEnv(EnvGeminiAPIKey, ""),
		GroqAPIKey:      getEnv(EnvGroqAPIKey, ""),
		ClassifierModel: getEnv(EnvClassifierModel, ""),

		QABackendEndpoint: getEnv(EnvQABackendEndpoint, ""),
		QABackendAPIKey:   getEnv(EnvQABackendAPIKey, ""),
		QABackendModel:    getEnv(EnvQABackendModel, "campus-rag"),

		StorageEndpoint:  getEnv(EnvStorageEndpoint, ""),
		StorageAccessKey: getEnv(EnvStorageAccessKey, ""),
		StorageSecretKey: getEnv(EnvStorageSecretKey, ""),
		StorageBucket:    getEnv(EnvStorageBucket, "handbooks"),

		MetricsUsername:     getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword:     getEnv(EnvMetricsPassword, ""),
		SentryToken:         getEnv(EnvSentryToken, ""),
		SentryHost:          getEnv(EnvSentryHost, "errors.betterstack.com"),
		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
		Environment:         getEnv(EnvEnvironment, "production"),

		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		DataDir: getEnv(EnvDataDir, getDefaultDataDir()),

		SimilarityThreshold: getFloatEnv(EnvSimilarityThreshold, 0.6),
		ConversationTTL:     getDurationEnv(EnvConversationTTL, 10*time.Minute),
		ClassificationCache: getIntEnv(EnvClassificationCache, 256),

		UserRateBurst:  getFloatEnv(EnvUserRateBurst, 15.0),
		UserRateRefill: getFloatEnv(EnvUserRateRefill, 0.1), // 1 per 10s
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.LineChannelToken == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvLineChannelToken))
	}
	if c.LineChannelSecret == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvLineChannelSecret))
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		errs = append(errs, fmt.Errorf("%s must be in (0, 1]", EnvSimilarityThreshold))
	}
	if c.ConversationTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", EnvConversationTTL))
	}
	if c.ClassificationCache <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", EnvClassificationCache))
	}

	return errors.Join(errs...)
}

// HasLLMClassifier reports whether any classification LLM provider is configured.
func (c *Config) HasLLMClassifier() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != ""
}

// HasQABackend reports whether a remote semantic QA backend is configured.
func (c *Config) HasQABackend() bool {
	return c.QABackendEndpoint != ""
}

// HasStorage reports whether handbook artifact storage is configured.
func (c *Config) HasStorage() bool {
	return c.StorageEndpoint != "" && c.StorageAccessKey != "" && c.StorageSecretKey != ""
}

// SQLitePath returns the full path to the catalog database.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "catalog.db")
}

func getDefaultDataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "campus-linebot")
	}
	return "data"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
