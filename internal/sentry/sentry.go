// Package sentry wraps Sentry SDK initialization for Better Stack error
// tracking.
package sentry

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds Sentry configuration.
type Config struct {
	// Token is the Better Stack Errors application token. Empty
	// disables Sentry.
	Token string

	// Host is the ingesting host (e.g. "errors.betterstack.com").
	Host string

	// Environment names the deployment (e.g. "production").
	Environment string

	// Release identifies the application version.
	Release string
}

// Initialize sets up the SDK. The DSN is https://$TOKEN@$HOST/1; the
// project id is required by the SDK but ignored by Better Stack.
func Initialize(cfg Config) error {
	if cfg.Token == "" {
		return nil
	}
	if cfg.Host == "" {
		return fmt.Errorf("sentry host is required when token is provided")
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              fmt.Sprintf("https://%s@%s/1", cfg.Token, cfg.Host),
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		AttachStacktrace: true,
	})
}

// IsEnabled reports whether the SDK was initialized.
func IsEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// Flush drains buffered events. Returns false on timeout.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// CaptureException reports an error, using the hub bound to ctx when the
// middleware put one there.
func CaptureException(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
