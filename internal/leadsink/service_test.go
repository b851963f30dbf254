package leadsink

import (
	"context"
	"testing"

	"exterior_chat_backend/internal/events"
	"exterior_chat_backend/platform/logger"
	"exterior_chat_backend/platform/validator"
)

type fakeWriter struct {
	inserted []*Lead
	err      error
}

func (f *fakeWriter) Insert(_ context.Context, lead *Lead) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, lead)
	return nil
}

type fakeForwarder struct {
	enqueued []ForwardLeadPayload
}

func (f *fakeForwarder) EnqueueForwardLead(_ context.Context, payload ForwardLeadPayload) error {
	f.enqueued = append(f.enqueued, payload)
	return nil
}

func bookedEvent() events.QualificationBooked {
	return events.QualificationBooked{
		BaseEvent:      events.NewBaseEvent(),
		ConversationID: "conv-1",
		Service:        "fence",
		Intent:         "replace",
		Detail:         "fence_type=cedar; linear_feet=120",
		Timeline:       "next month",
		ScheduleNote:   "weekday mornings",
		ZIP:            "98033",
	}
}

func TestHandleBookedStoresAndForwards(t *testing.T) {
	writer := &fakeWriter{}
	forwarder := &fakeForwarder{}
	svc := NewService(writer, forwarder, validator.New(), logger.New("development"))

	if err := svc.handleBooked(context.Background(), bookedEvent()); err != nil {
		t.Fatal(err)
	}

	if len(writer.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(writer.inserted))
	}
	lead := writer.inserted[0]
	if lead.Service != "fence" || lead.ZIP != "98033" {
		t.Fatalf("unexpected lead: %+v", lead)
	}
	if lead.ID.String() == "" || lead.CreatedAt.IsZero() {
		t.Fatalf("lead missing identity or timestamp: %+v", lead)
	}

	if len(forwarder.enqueued) != 1 {
		t.Fatalf("expected 1 enqueue, got %d", len(forwarder.enqueued))
	}
	if forwarder.enqueued[0].LeadID != lead.ID.String() {
		t.Fatal("forward payload must reference the stored lead")
	}
}

func TestHandleBookedRejectsInvalidLead(t *testing.T) {
	writer := &fakeWriter{}
	svc := NewService(writer, nil, validator.New(), logger.New("development"))

	ev := bookedEvent()
	ev.ZIP = "not-a-zip"
	if err := svc.handleBooked(context.Background(), ev); err == nil {
		t.Fatal("expected validation error for malformed ZIP")
	}
	if len(writer.inserted) != 0 {
		t.Fatal("invalid lead must not be stored")
	}
}

func TestHandleBookedWithoutDatabaseStillForwards(t *testing.T) {
	forwarder := &fakeForwarder{}
	svc := NewService(nil, forwarder, validator.New(), logger.New("development"))

	if err := svc.handleBooked(context.Background(), bookedEvent()); err != nil {
		t.Fatal(err)
	}
	if len(forwarder.enqueued) != 1 {
		t.Fatalf("expected 1 enqueue, got %d", len(forwarder.enqueued))
	}
}
