package engine

import (
	"strings"
	"testing"
)

func testEngine() *Engine {
	return New(NewServiceArea(), "https://book.example.com/estimate", "Book your estimate")
}

// runScript feeds the inputs through Step the way the driver does: a fresh
// session is created whenever none exists, and a reprocess verdict replays the
// same message once against a fresh session.
func runScript(t *testing.T, e *Engine, inputs ...string) ([]Result, *Session) {
	t.Helper()

	var sess *Session
	results := make([]Result, 0, len(inputs))
	for _, msg := range inputs {
		var res Result
		for pass := 0; pass < 2; pass++ {
			if sess == nil {
				sess = NewSession("conv-1")
			}
			res = e.Step(sess, msg)
			sess = res.Session
			if !res.Reprocess {
				break
			}
		}
		results = append(results, res)
	}
	return results, sess
}

func lastText(t *testing.T, res Result) string {
	t.Helper()
	text := ""
	for _, a := range res.Actions {
		if a.Kind == ActionSendText {
			text = a.Text
		}
	}
	return text
}

func countBookings(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Booked != nil {
			n++
		}
	}
	return n
}

func TestEveryStageHasAHandler(t *testing.T) {
	for _, stage := range AllStages {
		if _, ok := stageHandlers[stage]; !ok {
			t.Fatalf("stage %q has no handler", stage)
		}
	}
	if len(stageHandlers) != len(AllStages) {
		t.Fatalf("transition table has %d entries, stage list has %d", len(stageHandlers), len(AllStages))
	}
}

func TestZipGateAcceptsServedZip(t *testing.T) {
	e := testEngine()
	_, sess := runScript(t, e, "windows", "98033")
	if sess == nil {
		t.Fatal("session should survive the ZIP gate")
	}
	if sess.ZIP != "98033" {
		t.Fatalf("expected ZIP 98033 recorded, got %q", sess.ZIP)
	}
	if sess.Stage != StageAwaitingIntent {
		t.Fatalf("expected awaiting_intent after gate, got %q", sess.Stage)
	}
}

func TestZipGateSoftRejectsOutOfArea(t *testing.T) {
	e := testEngine()
	results, sess := runScript(t, e, "replace my windows", "00000")
	if sess == nil {
		t.Fatal("out-of-area must not delete the session")
	}
	if sess.Stage != StageAwaitingZip {
		t.Fatalf("expected to stay at awaiting_zip, got %q", sess.Stage)
	}
	if sess.Service != "windows" || sess.Intent != "replace" {
		t.Fatalf("captured service/intent must survive: %q/%q", sess.Service, sess.Intent)
	}
	if got := lastText(t, results[len(results)-1]); got != msgZipOutOfArea {
		t.Fatalf("expected out-of-area reply, got %q", got)
	}

	// A second, served ZIP recovers the conversation where it left off.
	res := e.Step(sess, "98033")
	if res.Session == nil || res.Session.Stage != StageWindowsQuantity {
		t.Fatalf("expected fast-forward to windows quantity, got %+v", res.Session)
	}
}

func TestZipGateReprompsWithoutZip(t *testing.T) {
	e := testEngine()
	results, sess := runScript(t, e, "fence", "it is for my house")
	if sess.Stage != StageAwaitingZip {
		t.Fatalf("expected to stay at awaiting_zip, got %q", sess.Stage)
	}
	if got := lastText(t, results[len(results)-1]); got != msgZipMalformed {
		t.Fatalf("expected malformed-zip reply, got %q", got)
	}
}

func TestOptOutFromEveryStage(t *testing.T) {
	e := testEngine()
	for _, stage := range AllStages {
		s := NewSession("conv-stop")
		s.Stage = stage
		s.Service = "windows"

		res := e.Step(s, "stop")
		if !res.Rejected {
			t.Fatalf("stage %q: expected rejection for 'stop'", stage)
		}
		if res.Session != nil {
			t.Fatalf("stage %q: rejection must delete the session", stage)
		}
		if got := lastText(t, res); got != msgRejected {
			t.Fatalf("stage %q: expected rejection reply, got %q", stage, got)
		}
	}
}

func TestOptOutIsIdempotent(t *testing.T) {
	e := testEngine()
	results, sess := runScript(t, e, "stop", "stop")
	if sess != nil {
		t.Fatal("session must stay deleted after repeated opt-out")
	}
	for i, res := range results {
		if !res.Rejected {
			t.Fatalf("message %d: expected rejection", i)
		}
	}
}

func TestGreetingThenServiceIntentZip(t *testing.T) {
	e := testEngine()
	results, sess := runScript(t, e, "hi", "windows", "replace", "98033")
	if sess == nil || sess.Stage != StageWindowsQuantity {
		t.Fatalf("expected windows quantity stage, got %+v", sess)
	}
	if got := lastText(t, results[len(results)-1]); got != msgWindowsQuantity {
		t.Fatalf("expected quantity prompt, got %q", got)
	}
}

func TestWindowsRepairAlwaysRejected(t *testing.T) {
	e := testEngine()

	scripts := [][]string{
		{"windows", "98033", "repair"},
		{"i need my windows fixed", "98033"},
		{"hi", "windows", "98033", "can you fix them"},
	}
	for i, script := range scripts {
		results, sess := runScript(t, e, script...)
		last := results[len(results)-1]
		if !last.Rejected {
			t.Fatalf("script %d: expected fixed rejection for window repair", i)
		}
		if sess != nil {
			t.Fatalf("script %d: rejection must delete the session", i)
		}
		if got := lastText(t, last); got != msgWindowsRepairRejected {
			t.Fatalf("script %d: expected repair rejection reply, got %q", i, got)
		}
	}
}

func TestHappyPathsBookExactlyOnce(t *testing.T) {
	cases := []struct {
		name    string
		script  []string
		service string
		intent  string
	}{
		{
			name:    "windows",
			script:  []string{"hi", "windows", "98033", "replace", "10", "next month", "weekday mornings"},
			service: "windows",
			intent:  "replace",
		},
		{
			name:    "doors repair",
			script:  []string{"doors", "98033", "fix", "yes", "asap", "whenever works"},
			service: "doors",
			intent:  "repair",
		},
		{
			name:    "doors replacement",
			script:  []string{"doors", "98033", "replace", "exterior", "2", "next month", "weekday mornings"},
			service: "doors",
			intent:  "replace",
		},
		{
			name:    "deck resurface",
			script:  []string{"deck", "98033", "resurface", "composite", "this summer", "weekends"},
			service: "deck",
			intent:  "replace",
		},
		{
			name:    "fence replacement",
			script:  []string{"fence", "98033", "replace", "cedar", "120", "yes", "as early as possible", "any weekday"},
			service: "fence",
			intent:  "replace",
		},
		{
			name:    "roofing",
			script:  []string{"roof", "98033", "replace", "metal", "no", "this fall", "saturday"},
			service: "roofing",
			intent:  "replace",
		},
		{
			name:    "gutters",
			script:  []string{"gutters", "98033", "80 feet", "next week", "monday morning"},
			service: "gutters",
			intent:  "replace",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := testEngine()
			results, sess := runScript(t, e, tc.script...)
			if n := countBookings(results); n != 1 {
				t.Fatalf("expected exactly one booking, got %d", n)
			}
			if sess != nil {
				t.Fatalf("booked conversation must delete the session, got stage %q", sess.Stage)
			}

			last := results[len(results)-1]
			lead := last.Booked
			if lead == nil {
				t.Fatal("booking must land on the final message")
			}
			if lead.Service != tc.service || lead.Intent != tc.intent {
				t.Fatalf("lead = %s/%s, want %s/%s", lead.Service, lead.Intent, tc.service, tc.intent)
			}
			if lead.ZIP != "98033" {
				t.Fatalf("lead ZIP = %q, want 98033", lead.ZIP)
			}
			if lead.Timeline == "" || lead.ScheduleNote == "" {
				t.Fatalf("lead missing timeline or schedule note: %+v", lead)
			}

			var sawBookingPrompt bool
			for _, a := range last.Actions {
				if a.Kind == ActionSendBookingPrompt {
					sawBookingPrompt = true
					if a.URL == "" || a.Label == "" {
						t.Fatal("booking prompt missing URL or label")
					}
				}
			}
			if !sawBookingPrompt {
				t.Fatal("booked conversation must send the booking prompt")
			}
		})
	}
}

func TestDeckRecordsProjectPhrase(t *testing.T) {
	e := testEngine()
	_, sess := runScript(t, e, "deck", "98033", "new construction")
	if sess == nil || sess.Stage != StageDeckMaterial {
		t.Fatalf("expected deck material stage, got %+v", sess)
	}
	if sess.Details["project"] != "new construction" {
		t.Fatalf("expected project phrase recorded, got %q", sess.Details["project"])
	}
}

func TestDeckRepairAlwaysRejected(t *testing.T) {
	e := testEngine()

	scripts := [][]string{
		{"deck", "98033", "repair"},
		{"hi", "deck", "98033", "repair"},
	}
	for i, script := range scripts {
		results, sess := runScript(t, e, script...)
		last := results[len(results)-1]
		if !last.Rejected {
			t.Fatalf("script %d: expected fixed rejection for deck repair", i)
		}
		if sess != nil {
			t.Fatalf("script %d: rejection must delete the session", i)
		}
		if got := lastText(t, last); got != msgDeckRepairRejected {
			t.Fatalf("script %d: expected repair rejection reply, got %q", i, got)
		}
	}
}

func TestRoofingRepairAlwaysRejected(t *testing.T) {
	e := testEngine()

	scripts := [][]string{
		{"roofing", "98033", "repair"},
		{"hi", "roofing", "98033", "repair"},
	}
	for i, script := range scripts {
		results, sess := runScript(t, e, script...)
		last := results[len(results)-1]
		if !last.Rejected {
			t.Fatalf("script %d: expected fixed rejection for roof repair", i)
		}
		if sess != nil {
			t.Fatalf("script %d: rejection must delete the session", i)
		}
		if got := lastText(t, last); got != msgRoofingRepairRejected {
			t.Fatalf("script %d: expected repair rejection reply, got %q", i, got)
		}
	}
}

func TestRepairMinimumDeclinedEndsConversation(t *testing.T) {
	e := testEngine()
	results, sess := runScript(t, e, "fence", "98033", "repair", "no")
	last := results[len(results)-1]
	if !last.Rejected || sess != nil {
		t.Fatalf("declining the minimum must end the conversation: rejected=%v sess=%+v", last.Rejected, sess)
	}
	if got := lastText(t, last); got != msgDeclined {
		t.Fatalf("expected decline acknowledgment, got %q", got)
	}
}

func TestCedarShingleRepromptThenProceed(t *testing.T) {
	e := testEngine()
	results, sess := runScript(t, e, "roofing", "98033", "replace", "cedar shingle")
	if sess == nil || sess.Stage != StageRoofingCedarConfirm {
		t.Fatalf("expected cedar confirmation stage, got %+v", sess)
	}
	if got := lastText(t, results[len(results)-1]); got != msgRoofCedarConfirm {
		t.Fatalf("expected cedar re-prompt, got %q", got)
	}

	res := e.Step(sess, "yes")
	if res.Session == nil || res.Session.Stage != StageRoofingGutterAddon {
		t.Fatalf("expected gutter add-on after confirmation, got %+v", res.Session)
	}
	if res.Session.Details["material_requested"] != "cedar shingle" {
		t.Fatalf("requested material must be recorded, got %q", res.Session.Details["material_requested"])
	}
}

func TestCedarConfirmAcceptsDirectMaterial(t *testing.T) {
	e := testEngine()
	_, sess := runScript(t, e, "roofing", "98033", "replace", "cedar", "metal")
	if sess == nil || sess.Stage != StageRoofingGutterAddon {
		t.Fatalf("expected gutter add-on stage, got %+v", sess)
	}
	if sess.Details["material"] != "metal" {
		t.Fatalf("expected metal recorded, got %q", sess.Details["material"])
	}
}

func TestCedarConfirmDeclineRepromptsMaterials(t *testing.T) {
	e := testEngine()
	results, sess := runScript(t, e, "roofing", "98033", "replace", "cedar", "no")
	if sess == nil || sess.Stage != StageRoofingMaterial {
		t.Fatalf("expected return to material stage, got %+v", sess)
	}
	if got := lastText(t, results[len(results)-1]); got != msgRoofMaterialRestricted {
		t.Fatalf("expected restricted materials reply, got %q", got)
	}
}

func TestHandoffCollectsContactAndWindsDown(t *testing.T) {
	e := testEngine()
	results, sess := runScript(t, e, "windows", "98033", "can i talk to a human")
	if sess == nil || sess.Stage != StageCollectContact {
		t.Fatalf("expected contact collection, got %+v", sess)
	}
	if got := lastText(t, results[len(results)-1]); got != msgHandoffAskContact {
		t.Fatalf("expected contact prompt, got %q", got)
	}

	res := e.Step(sess, "me@example.com")
	if res.Handoff == nil || res.Handoff.Contact != "me@example.com" {
		t.Fatalf("expected handoff record with contact, got %+v", res.Handoff)
	}
	if res.Session == nil || res.Session.Stage != StageHandoffDone {
		t.Fatalf("expected handoff_done stage, got %+v", res.Session)
	}
	var sawBegin bool
	for _, a := range res.Actions {
		if a.Kind == ActionBeginHandoff {
			sawBegin = true
		}
	}
	if !sawBegin {
		t.Fatal("expected a begin-handoff action")
	}
	sess = res.Session

	// One thank-you is swallowed silently.
	res = e.Step(sess, "thanks!")
	if res.Session == nil || !res.Session.ThanksSeen {
		t.Fatalf("expected thanks to be swallowed, got %+v", res)
	}
	if len(res.Actions) != 0 {
		t.Fatalf("swallowed thanks must not reply, got %d actions", len(res.Actions))
	}
	sess = res.Session

	// The next message retires the session and is replayed fresh.
	res = e.Step(sess, "actually i have a fence question")
	if !res.Reprocess || res.Session != nil {
		t.Fatalf("expected reprocess with deleted session, got %+v", res)
	}
}

func TestHandoffNormalizesPhoneContact(t *testing.T) {
	e := testEngine()
	_, sess := runScript(t, e, "doors", "98033", "get me an agent")
	if sess == nil || sess.Stage != StageCollectContact {
		t.Fatalf("expected contact collection, got %+v", sess)
	}
	res := e.Step(sess, "you can reach me at 2068675309")
	if res.Handoff == nil || res.Handoff.Contact == "" {
		t.Fatalf("expected contact captured, got %+v", res.Handoff)
	}
	if !strings.ContainsAny(res.Handoff.Contact, "0123456789") {
		t.Fatalf("phone contact lost its digits: %q", res.Handoff.Contact)
	}
}

func TestPricingQuestionBeforeDialogue(t *testing.T) {
	e := testEngine()
	results, sess := runScript(t, e, "how much does it cost")
	if sess == nil || sess.Stage != StageStart {
		t.Fatalf("pricing must not advance the stage, got %+v", sess)
	}
	if got := lastText(t, results[len(results)-1]); got != msgPricingGeneral {
		t.Fatalf("expected general pricing reply, got %q", got)
	}

	results, _ = runScript(t, e, "how much is a new fence")
	if got := lastText(t, results[len(results)-1]); got != msgPricingFence {
		t.Fatalf("expected fence pricing reply, got %q", got)
	}
}

func TestPricingDoesNotTriggerMidDialogue(t *testing.T) {
	e := testEngine()
	_, sess := runScript(t, e, "fence", "98033", "replace", "chain link, whatever costs less")
	if sess == nil || sess.Stage != StageFenceLinearFeet {
		t.Fatalf("cost talk mid-dialogue must be treated as an answer, got %+v", sess)
	}
}

func TestTimeQuestionIsNotPricing(t *testing.T) {
	e := testEngine()
	results, sess := runScript(t, e, "how much time does an estimate take")
	if got := lastText(t, results[len(results)-1]); got == msgPricingGeneral || got == msgPricingFence {
		t.Fatalf("'time' must defeat the pricing intercept, got %q", got)
	}
	if sess == nil || sess.Stage != StageAwaitingService {
		t.Fatalf("expected service prompt instead, got %+v", sess)
	}
}

func TestRestartMidDialogue(t *testing.T) {
	e := testEngine()
	_, sess := runScript(t, e, "doors", "98033", "replace", "start over")
	if sess == nil || sess.Stage != StageAwaitingService {
		t.Fatalf("expected restart to the service prompt, got %+v", sess)
	}
	if sess.Service != "" || sess.ZIP != "" {
		t.Fatalf("restart must clear captured state, got %+v", sess)
	}
}

func TestServiceAndZipInOneMessage(t *testing.T) {
	e := testEngine()
	_, sess := runScript(t, e, "need a new roof, zip is 98052")
	if sess == nil {
		t.Fatal("expected a live session")
	}
	if sess.Service != "roofing" || sess.ZIP != "98052" {
		t.Fatalf("expected roofing/98052 captured, got %q/%q", sess.Service, sess.ZIP)
	}
	if sess.Stage != StageRoofingMaterial {
		t.Fatalf("expected fast-forward to roofing material, got %q", sess.Stage)
	}
}

func TestUnknownStageResets(t *testing.T) {
	e := testEngine()
	s := NewSession("conv-odd")
	s.Stage = Stage("does_not_exist")

	res := e.Step(s, "hello")
	if res.Session != nil {
		t.Fatal("unknown stage must delete the session")
	}
	if got := lastText(t, res); got != msgUnknownStageReset {
		t.Fatalf("expected reset message, got %q", got)
	}
}
