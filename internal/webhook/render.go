package webhook

import (
	"github.com/campusbot/campus-linebot-go/internal/channel"
	"github.com/campusbot/campus-linebot-go/internal/stringutil"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// LINE API limits.
const (
	maxTextRunes    = 5000
	maxQuickReplies = 13
	maxActionLabel  = 20
)

// renderMessages converts a transport-neutral response into LINE
// messages.
func renderMessages(resp *channel.Response) []messaging_api.MessageInterface {
	if resp == nil {
		return nil
	}

	var messages []messaging_api.MessageInterface

	if resp.Text != "" {
		msg := newTextMessage(resp.Text)
		if len(resp.Options) > 0 {
			msg.QuickReply = newQuickReply(resp.Options)
		}
		messages = append(messages, msg)
	}

	if resp.FileURL != "" {
		messages = append(messages, newTextMessage(resp.FileURL))
	}

	if resp.Venue != nil {
		messages = append(messages, &messaging_api.LocationMessage{
			Title:     resp.Venue.Title,
			Address:   resp.Venue.Address,
			Latitude:  resp.Venue.Latitude,
			Longitude: resp.Venue.Longitude,
		})
	}

	return messages
}

func newTextMessage(text string) *messaging_api.TextMessage {
	return &messaging_api.TextMessage{
		Text: stringutil.TruncateRunes(text, maxTextRunes),
	}
}

// newQuickReply renders follow-up options as tappable buttons that
// send their label back as a message.
func newQuickReply(options []string) *messaging_api.QuickReply {
	if len(options) > maxQuickReplies {
		options = options[:maxQuickReplies]
	}

	items := make([]messaging_api.QuickReplyItem, len(options))
	for i, opt := range options {
		items[i] = messaging_api.QuickReplyItem{
			Action: &messaging_api.MessageAction{
				Label: stringutil.TruncateRunes(opt, maxActionLabel),
				Text:  opt,
			},
		}
	}

	return &messaging_api.QuickReply{Items: items}
}
