// Package dialogue drives the qualification conversation: it owns the
// session store, runs the engine on every inbound message, dispatches the
// resulting replies, and publishes the terminal outcomes as domain events.
package dialogue

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"exterior_chat_backend/internal/dialogue/engine"
	"exterior_chat_backend/internal/dialogue/session"
	"exterior_chat_backend/internal/events"
	"exterior_chat_backend/platform/logger"
)

// Sender delivers outbound replies. The Messenger client implements it; tests
// substitute a recorder.
type Sender interface {
	SendText(ctx context.Context, recipientID, text string) error
	SendBookingPrompt(ctx context.Context, recipientID, bookingURL, label string) error
}

// maxPasses bounds the reprocess loop so a malformed verdict can never spin.
const maxPasses = 2

// lockShards fixes the size of the keyed lock set. Conversations hash onto a
// shard, so memory stays constant no matter how many ids pass through;
// colliding ids only serialize a little more than strictly required.
const lockShards = 256

// Service serializes message handling per conversation and wires the engine
// to the store, the sender, and the event bus.
type Service struct {
	engine *engine.Engine
	store  session.Store
	sender Sender
	bus    events.Bus
	log    *logger.Logger
	locks  [lockShards]sync.Mutex
}

// NewService assembles the dialogue driver.
func NewService(eng *engine.Engine, store session.Store, sender Sender, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		engine: eng,
		store:  store,
		sender: sender,
		bus:    bus,
		log:    log,
	}
}

// HandleMessage processes one inbound text for a conversation. Messages for
// the same conversation are handled strictly one at a time; the session is
// persisted before any reply is dispatched.
func (s *Service) HandleMessage(ctx context.Context, conversationID, text string) error {
	mu := s.lockFor(conversationID)
	mu.Lock()
	defer mu.Unlock()

	for pass := 0; pass < maxPasses; pass++ {
		sess, err := s.store.Get(ctx, conversationID)
		if err != nil {
			return fmt.Errorf("loading session: %w", err)
		}
		if sess == nil {
			sess = engine.NewSession(conversationID)
		}
		fromStage := sess.Stage
		service := sess.Service

		res := s.engine.Step(sess, text)

		if res.Session != nil {
			if err := s.store.Put(ctx, res.Session); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}
		} else if err := s.store.Delete(ctx, conversationID); err != nil {
			return fmt.Errorf("deleting session: %w", err)
		}

		s.dispatch(ctx, conversationID, res.Actions)
		s.publish(ctx, conversationID, string(service), string(fromStage), res)

		toStage := "deleted"
		if res.Session != nil {
			toStage = string(res.Session.Stage)
		}
		s.log.DialogueStep(conversationID, string(fromStage), toStage, len(res.Actions))

		if !res.Reprocess {
			break
		}
	}
	return nil
}

// Restart clears any existing session and replays a restart trigger, used for
// the GET_STARTED postback.
func (s *Service) Restart(ctx context.Context, conversationID string) error {
	mu := s.lockFor(conversationID)
	mu.Lock()
	if err := s.store.Delete(ctx, conversationID); err != nil {
		mu.Unlock()
		return fmt.Errorf("deleting session: %w", err)
	}
	mu.Unlock()

	return s.HandleMessage(ctx, conversationID, "get started")
}

func (s *Service) lockFor(conversationID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(conversationID))
	return &s.locks[h.Sum32()%lockShards]
}

// dispatch delivers the ordered actions. Delivery failures are logged and
// swallowed; the session has already advanced.
func (s *Service) dispatch(ctx context.Context, conversationID string, actions []engine.Action) {
	for _, a := range actions {
		var err error
		switch a.Kind {
		case engine.ActionSendText:
			err = s.sender.SendText(ctx, conversationID, a.Text)
		case engine.ActionSendBookingPrompt:
			err = s.sender.SendBookingPrompt(ctx, conversationID, a.URL, a.Label)
		case engine.ActionEndSession, engine.ActionBeginHandoff:
			// Markers for the transport layer; nothing to deliver.
		}
		if err != nil {
			s.log.DispatchError(conversationID, err)
		}
	}
}

func (s *Service) publish(ctx context.Context, conversationID, service, stage string, res engine.Result) {
	if res.Booked != nil {
		s.bus.Publish(ctx, events.QualificationBooked{
			BaseEvent:      events.NewBaseEvent(),
			ConversationID: res.Booked.ConversationID,
			Service:        res.Booked.Service,
			Intent:         res.Booked.Intent,
			Detail:         res.Booked.Detail,
			Timeline:       res.Booked.Timeline,
			ScheduleNote:   res.Booked.ScheduleNote,
			ZIP:            res.Booked.ZIP,
		})
	}
	if res.Rejected {
		s.bus.Publish(ctx, events.ConversationRejected{
			BaseEvent:      events.NewBaseEvent(),
			ConversationID: conversationID,
			Service:        service,
			Stage:          stage,
		})
	}
	if res.Handoff != nil {
		s.bus.Publish(ctx, events.HumanHandoffRequested{
			BaseEvent:      events.NewBaseEvent(),
			ConversationID: res.Handoff.ConversationID,
			Contact:        res.Handoff.Contact,
			Service:        res.Handoff.Service,
		})
	}
}
