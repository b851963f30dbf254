// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import "exterior_chat_backend/platform/events"

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// Event names for subscription.
const (
	QualificationBookedName   = "dialogue.qualification.booked"
	ConversationRejectedName  = "dialogue.conversation.rejected"
	HumanHandoffRequestedName = "dialogue.handoff.requested"
)

// QualificationBooked is published when a prospect completes qualification
// and is sent the booking link.
type QualificationBooked struct {
	BaseEvent
	ConversationID string `json:"conversationId"`
	Service        string `json:"service"`
	Intent         string `json:"intent"`
	Detail         string `json:"detail"`
	Timeline       string `json:"timeline"`
	ScheduleNote   string `json:"scheduleNote"`
	ZIP            string `json:"zip"`
}

func (e QualificationBooked) EventName() string { return QualificationBookedName }

// ConversationRejected is published when a conversation ends without a
// booking: an opt-out, window repair, or a declined repair minimum.
type ConversationRejected struct {
	BaseEvent
	ConversationID string `json:"conversationId"`
	Service        string `json:"service,omitempty"`
	Stage          string `json:"stage"`
}

func (e ConversationRejected) EventName() string { return ConversationRejectedName }

// HumanHandoffRequested is published when a prospect asks for a person and
// leaves contact info.
type HumanHandoffRequested struct {
	BaseEvent
	ConversationID string `json:"conversationId"`
	Contact        string `json:"contact"`
	Service        string `json:"service,omitempty"`
}

func (e HumanHandoffRequested) EventName() string { return HumanHandoffRequestedName }
