// Package webhook receives LINE webhook events, enforces per-user rate
// limits, and forwards text messages to the dispatcher.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/campusbot/campus-linebot-go/internal/channel"
	"github.com/campusbot/campus-linebot-go/internal/config"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/metrics"
	"github.com/campusbot/campus-linebot-go/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

const throttleReply = "⏳ You're sending messages a bit fast. Please wait a moment and try again."

// Dispatcher answers one user message.
type Dispatcher interface {
	HandleMessage(ctx context.Context, userID, text string) *channel.Response
}

// Handler handles LINE webhook events.
type Handler struct {
	channelSecret string
	client        *messaging_api.MessagingApiAPI
	dispatcher    Dispatcher
	userLimiter   *ratelimit.KeyedLimiter
	metrics       *metrics.Metrics
	logger        *logger.Logger
	wg            sync.WaitGroup
}

// Config holds the dependencies for a webhook handler.
type Config struct {
	ChannelSecret string
	ChannelToken  string
	Dispatcher    Dispatcher
	UserLimiter   *ratelimit.KeyedLimiter
	Metrics       *metrics.Metrics
	Logger        *logger.Logger
}

// NewHandler creates a webhook handler with its own messaging client.
func NewHandler(cfg Config) (*Handler, error) {
	client, err := messaging_api.NewMessagingApiAPI(cfg.ChannelToken)
	if err != nil {
		return nil, fmt.Errorf("create messaging API client: %w", err)
	}

	return &Handler{
		channelSecret: cfg.ChannelSecret,
		client:        client,
		dispatcher:    cfg.Dispatcher,
		userLimiter:   cfg.UserLimiter,
		metrics:       cfg.Metrics,
		logger:        cfg.Logger.WithModule("webhook"),
	}, nil
}

// Handle is the Gin handler for the webhook endpoint. It acknowledges
// the request immediately and processes events asynchronously, as the
// LINE platform requires.
func (h *Handler) Handle(c *gin.Context) {
	cb, err := webhook.ParseRequest(h.channelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.logger.Warn("Invalid webhook signature")
			c.Status(http.StatusBadRequest)
		} else {
			h.logger.WithError(err).Error("Failed to parse webhook request")
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)

	// Copy events so processing does not race the request lifecycle.
	events := make([]webhook.EventInterface, len(cb.Events))
	copy(events, cb.Events)

	h.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				h.logger.WithField("panic", r).Error("Panic in async event processing")
			}
		}()

		for _, event := range events {
			h.processEvent(event)
		}
	})
}

// processEvent handles a single webhook event.
func (h *Handler) processEvent(event webhook.EventInterface) {
	e, ok := event.(webhook.MessageEvent)
	if !ok {
		h.logger.WithField("event_type", fmt.Sprintf("%T", event)).Debug("Ignoring non-message event")
		return
	}

	text, ok := messageText(e)
	if !ok {
		h.metrics.RecordWebhook("message", "ignored", 0)
		return
	}

	userID := sourceUserID(e.Source)
	log := h.logger.WithUserID(userID)

	if !h.userLimiter.Allow(userID) {
		log.Warn("User rate limit exceeded")
		h.reply(e.ReplyToken, []messaging_api.MessageInterface{newTextMessage(throttleReply)}, log)
		h.metrics.RecordWebhook("message", "throttled", 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.WebhookProcessing)
	defer cancel()

	start := time.Now()
	resp := h.dispatcher.HandleMessage(ctx, userID, text)
	h.metrics.RecordWebhook("message", "success", time.Since(start).Seconds())

	h.reply(e.ReplyToken, renderMessages(resp), log)
	log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Event processed")
}

func (h *Handler) reply(replyToken string, messages []messaging_api.MessageInterface, log *logger.Logger) {
	if replyToken == "" || len(messages) == 0 {
		return
	}

	if _, err := h.client.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	}); err != nil {
		if strings.Contains(err.Error(), "Invalid reply token") {
			log.WithError(err).Debug("Reply token already used or invalid")
		} else {
			log.WithError(err).Error("Failed to send reply")
		}
		h.metrics.RecordWebhook("message", "reply_error", 0)
	}
}

// messageText extracts the text body of a message event. Non-text
// messages yield no reply.
func messageText(e webhook.MessageEvent) (string, bool) {
	msg, ok := e.Message.(webhook.TextMessageContent)
	if !ok {
		return "", false
	}
	text := strings.TrimSpace(msg.Text)
	return text, text != ""
}

// sourceUserID extracts the sender's user ID from an event source.
func sourceUserID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	default:
		return ""
	}
}

// Shutdown waits for in-flight event processing to finish.
func (h *Handler) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.wg.Wait()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
