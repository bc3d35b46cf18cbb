// Package tools implements the handlers behind each intent: campus
// locations, locker and servery hours, handbook downloads, the FAQ, and
// open question answering.
package tools

import (
	"context"

	"github.com/campusbot/campus-linebot-go/internal/channel"
)

// Request is one user message routed to a tool.
type Request struct {
	UserID string
	Text   string
}

// Tool answers one category of message.
type Tool interface {
	// Name is the stable identifier used for routing and metrics.
	Name() string

	// Description tells the classifier what the tool covers.
	Description() string

	// Handle produces the reply. A returned error means the tool
	// could not answer at all; the dispatcher apologizes on its
	// behalf.
	Handle(ctx context.Context, req *Request) (*channel.Response, error)
}
