// Package channel defines the transport-neutral reply types tools
// produce. The webhook layer renders them into messenger-specific
// messages.
package channel

// Venue is a geographic point the transport can render as a map pin.
type Venue struct {
	Title     string
	Address   string
	Latitude  float64
	Longitude float64
}

// Response is one reply to one user message.
type Response struct {
	// Text is the reply body.
	Text string

	// Options, when set, are short follow-up choices the transport
	// may render as quick-reply buttons.
	Options []string

	// FileURL, when set, points at a downloadable document.
	FileURL string

	// Venue, when set, locates a place on the map.
	Venue *Venue
}

// NewText wraps a plain text reply.
func NewText(text string) *Response {
	return &Response{Text: text}
}

// NewFollowUp builds a question with quick-reply options.
func NewFollowUp(text string, options ...string) *Response {
	return &Response{Text: text, Options: options}
}
