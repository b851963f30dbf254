// Package transport defines the Messenger webhook wire types.
package transport

// WebhookPayload is the envelope Messenger posts to the webhook. Object is
// "page" for page subscriptions; anything else is not for us.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is one page entry, carrying a batch of messaging events.
type Entry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent is a single inbound event. Exactly one of Message or
// Postback is set.
type MessagingEvent struct {
	Sender    Party     `json:"sender"`
	Recipient Party     `json:"recipient"`
	Timestamp int64     `json:"timestamp"`
	Message   *Message  `json:"message,omitempty"`
	Postback  *Postback `json:"postback,omitempty"`
}

// Party identifies a sender or recipient by page-scoped id.
type Party struct {
	ID string `json:"id"`
}

// Message is an inbound text message. Echoes are our own outbound messages
// reflected back and must be ignored.
type Message struct {
	MID        string      `json:"mid,omitempty"`
	Text       string      `json:"text,omitempty"`
	IsEcho     bool        `json:"is_echo,omitempty"`
	QuickReply *QuickReply `json:"quick_reply,omitempty"`
}

// QuickReply carries the developer payload of a tapped quick reply.
type QuickReply struct {
	Payload string `json:"payload"`
}

// Postback is a button tap, like the persistent menu's get-started button.
type Postback struct {
	Title   string `json:"title,omitempty"`
	Payload string `json:"payload,omitempty"`
}

// GetStartedPayload is the postback payload of the get-started button.
const GetStartedPayload = "GET_STARTED"

// Text returns the usable text of the event: quick reply payloads win over
// typed text.
func (ev MessagingEvent) Text() string {
	if ev.Message == nil {
		return ""
	}
	if ev.Message.QuickReply != nil && ev.Message.QuickReply.Payload != "" {
		return ev.Message.QuickReply.Payload
	}
	return ev.Message.Text
}
