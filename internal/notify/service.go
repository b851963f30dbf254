package notify

import (
	"context"
	"fmt"

	"exterior_chat_backend/internal/events"
	"exterior_chat_backend/platform/logger"
)

// AlertSender delivers a handoff alert. The SMTP sender implements it; tests
// substitute a recorder.
type AlertSender interface {
	SendHandoffAlert(ctx context.Context, conversationID, contact, service string) error
}

// Service turns HumanHandoffRequested events into alerts for the business.
type Service struct {
	sender AlertSender
	log    *logger.Logger
}

// NewService creates the notifier. A nil sender disables alerts but keeps the
// subscription wiring uniform.
func NewService(sender AlertSender, log *logger.Logger) *Service {
	return &Service{sender: sender, log: log}
}

// Subscribe registers the event handlers on the bus.
func (s *Service) Subscribe(bus events.Bus) {
	bus.Subscribe(events.HumanHandoffRequestedName, events.HandlerFunc(s.handleHandoff))
}

func (s *Service) handleHandoff(ctx context.Context, event events.Event) error {
	handoff, ok := event.(events.HumanHandoffRequested)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	if s.sender == nil {
		s.log.Info("handoff alert skipped, email disabled",
			"conversation_id", handoff.ConversationID,
		)
		return nil
	}

	if err := s.sender.SendHandoffAlert(ctx, handoff.ConversationID, handoff.Contact, handoff.Service); err != nil {
		return fmt.Errorf("sending handoff alert for %s: %w", handoff.ConversationID, err)
	}

	s.log.Info("handoff alert sent", "conversation_id", handoff.ConversationID)
	return nil
}
