package engine

// ActionKind identifies what the transport should do with an action.
type ActionKind int

const (
	// ActionSendText sends a plain text reply.
	ActionSendText ActionKind = iota
	// ActionSendBookingPrompt sends the booking link with a call-to-action.
	ActionSendBookingPrompt
	// ActionEndSession marks the conversation closed for the transport.
	ActionEndSession
	// ActionBeginHandoff pauses automated replies pending a human.
	ActionBeginHandoff
)

// Action is a single outbound effect ordered by the engine. The engine never
// performs the effect itself.
type Action struct {
	Kind  ActionKind
	Text  string
	URL   string
	Label string
}

func sendText(text string) Action {
	return Action{Kind: ActionSendText, Text: text}
}

// LeadRecord captures a fully qualified prospect at booking time.
type LeadRecord struct {
	ConversationID string
	Service        string
	Intent         string
	Detail         string
	Timeline       string
	ScheduleNote   string
	ZIP            string
}

// HandoffRequest carries the contact info a prospect left for a human
// follow-up.
type HandoffRequest struct {
	ConversationID string
	Contact        string
	Service        string
	Stage          Stage
}

// Result is the engine's verdict for one inbound message.
//
// Session is the state to persist; nil means the session must be deleted.
// Reprocess asks the driver to feed the same raw input through Step again
// with a fresh session (used after a completed handoff winds down).
type Result struct {
	Session   *Session
	Actions   []Action
	Reprocess bool
	Booked    *LeadRecord
	Rejected  bool
	Handoff   *HandoffRequest
}

func reply(s *Session, texts ...string) Result {
	actions := make([]Action, len(texts))
	for i, t := range texts {
		actions[i] = sendText(t)
	}
	return Result{Session: s, Actions: actions}
}
