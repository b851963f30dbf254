package leadsink

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"exterior_chat_backend/internal/events"
	"exterior_chat_backend/platform/logger"
	"exterior_chat_backend/platform/validator"
)

// LeadWriter persists booked leads. Nil-able: without a database the sink
// only forwards.
type LeadWriter interface {
	Insert(ctx context.Context, lead *Lead) error
}

// Forwarder enqueues CRM delivery. Nil-able for development.
type Forwarder interface {
	EnqueueForwardLead(ctx context.Context, payload ForwardLeadPayload) error
}

// Service turns QualificationBooked events into stored and forwarded leads.
type Service struct {
	repo      LeadWriter
	forwarder Forwarder
	val       *validator.Validator
	log       *logger.Logger
}

// NewService creates the lead sink service. repo and forwarder may be nil.
func NewService(repo LeadWriter, forwarder Forwarder, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		forwarder: forwarder,
		val:       val,
		log:       log,
	}
}

// Subscribe registers the event handlers on the bus.
func (s *Service) Subscribe(bus events.Bus) {
	bus.Subscribe(events.QualificationBookedName, events.HandlerFunc(s.handleBooked))
}

func (s *Service) handleBooked(ctx context.Context, event events.Event) error {
	booked, ok := event.(events.QualificationBooked)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	lead := &Lead{
		ID:             uuid.New(),
		ConversationID: booked.ConversationID,
		Service:        booked.Service,
		Intent:         booked.Intent,
		Detail:         booked.Detail,
		Timeline:       booked.Timeline,
		ScheduleNote:   booked.ScheduleNote,
		ZIP:            booked.ZIP,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.val.Struct(lead); err != nil {
		return fmt.Errorf("invalid lead for conversation %s: %w", booked.ConversationID, err)
	}

	if s.repo != nil {
		if err := s.repo.Insert(ctx, lead); err != nil {
			return err
		}
	}

	if s.forwarder != nil {
		payload := ForwardLeadPayload{
			LeadID:         lead.ID.String(),
			ConversationID: lead.ConversationID,
			Service:        lead.Service,
			Intent:         lead.Intent,
			Detail:         lead.Detail,
			Timeline:       lead.Timeline,
			ScheduleNote:   lead.ScheduleNote,
			ZIP:            lead.ZIP,
		}
		if err := s.forwarder.EnqueueForwardLead(ctx, payload); err != nil {
			return fmt.Errorf("enqueueing CRM forward for lead %s: %w", lead.ID, err)
		}
	}

	s.log.Info("lead captured",
		"lead_id", lead.ID.String(),
		"conversation_id", lead.ConversationID,
		"service", lead.Service,
	)
	return nil
}
