package engine

import (
	"errors"
	"strings"
	"time"

	"exterior_chat_backend/internal/dialogue/vocab"
	"exterior_chat_backend/platform/phone"
	"exterior_chat_backend/platform/textnorm"
)

// Engine evaluates one inbound message against the current session and
// produces the next state plus the outbound actions. It holds only immutable
// configuration, so a single instance is safe for concurrent use.
type Engine struct {
	area         *ServiceArea
	bookingURL   string
	bookingLabel string
}

// New builds an engine around the service-area registry and booking link.
func New(area *ServiceArea, bookingURL, bookingLabel string) *Engine {
	return &Engine{
		area:         area,
		bookingURL:   bookingURL,
		bookingLabel: bookingLabel,
	}
}

type stageHandler func(e *Engine, s *Session, in textnorm.Input) Result

// stageHandlers is the transition table. CollectContact and HandoffDone are
// intercepted before stage dispatch, so their entries only matter for table
// completeness.
var stageHandlers = map[Stage]stageHandler{
	StageStart:           (*Engine).handleStart,
	StageAwaitingService: (*Engine).handleAwaitingService,
	StageAwaitingZip:     (*Engine).handleAwaitingZip,
	StageAwaitingIntent:  (*Engine).handleAwaitingIntent,

	StageWindowsQuantity: (*Engine).handleWindowsQuantity,
	StageWindowsTimeline: (*Engine).handleTimeline,

	StageDoorsConfirmRepair: (*Engine).handleDoorsConfirmRepair,
	StageDoorsType:          (*Engine).handleDoorsType,
	StageDoorsQuantity:      (*Engine).handleDoorsQuantity,
	StageDoorsTimeline:      (*Engine).handleTimeline,

	StageDeckMaterial: (*Engine).handleDeckMaterial,
	StageDeckTimeline: (*Engine).handleTimeline,

	StageFenceConfirmRepair:  (*Engine).handleFenceConfirmRepair,
	StageFenceRepairPart:     (*Engine).handleFenceRepairPart,
	StageFenceRepairQuantity: (*Engine).handleFenceRepairQuantity,
	StageFenceType:           (*Engine).handleFenceType,
	StageFenceLinearFeet:     (*Engine).handleFenceLinearFeet,
	StageFenceRemoval:        (*Engine).handleFenceRemoval,
	StageFenceTimeline:       (*Engine).handleTimeline,

	StageRoofingMaterial:     (*Engine).handleRoofingMaterial,
	StageRoofingCedarConfirm: (*Engine).handleRoofingCedarConfirm,
	StageRoofingGutterAddon:  (*Engine).handleRoofingGutterAddon,
	StageRoofingTimeline:     (*Engine).handleTimeline,

	StageGuttersFootage:  (*Engine).handleGuttersFootage,
	StageGuttersTimeline: (*Engine).handleTimeline,

	StageScheduling: (*Engine).handleScheduling,

	StageCollectContact: (*Engine).handleCollectContact,
	StageHandoffDone:    (*Engine).handleHandoffDone,
}

// Step advances the session one turn. The session must not be nil; callers
// create one for unseen conversation ids. Step mutates the session in place
// and returns it in the result, or nil when the conversation is over.
func (e *Engine) Step(s *Session, raw string) Result {
	s.UpdatedAt = time.Now().UTC()
	in := textnorm.Normalize(raw)

	if IsRejection(in.Stripped) {
		return Result{
			Actions:  []Action{sendText(msgRejected), {Kind: ActionEndSession}},
			Rejected: true,
		}
	}

	if s.Stage == StageCollectContact {
		return e.handleCollectContact(s, in)
	}
	if s.Stage == StageHandoffDone {
		return e.handleHandoffDone(s, in)
	}

	if IsHandoffRequest(in.Stripped) {
		s.Stage = StageCollectContact
		return reply(s, msgHandoffAskContact)
	}

	if IsRestart(in.Stripped) {
		*s = *NewSession(s.ID)
		return e.handleStart(s, in)
	}

	if s.Stage == StageStart && IsPricingQuestion(in.Stripped) {
		if MentionsFence(in.Stripped) {
			return reply(s, msgPricingFence)
		}
		return reply(s, msgPricingGeneral)
	}

	handler, ok := stageHandlers[s.Stage]
	if !ok {
		return Result{Actions: []Action{sendText(msgUnknownStageReset)}}
	}
	return handler(e, s, in)
}

func (e *Engine) handleStart(s *Session, in textnorm.Input) Result {
	if svc, ok := vocab.MatchService(in.Stripped); ok {
		return e.serviceCaptured(s, svc, in)
	}
	s.Stage = StageAwaitingService
	if in.IsEmpty() || IsGreeting(in.Stripped) || IsRestart(in.Stripped) {
		return reply(s, msgGreeting)
	}
	return reply(s, msgClarifyService)
}

func (e *Engine) handleAwaitingService(s *Session, in textnorm.Input) Result {
	svc, ok := vocab.MatchService(in.Stripped)
	if !ok {
		return reply(s, msgClarifyService)
	}
	return e.serviceCaptured(s, svc, in)
}

// serviceCaptured records the service and any intent mentioned in the same
// message, then moves to the ZIP gate.
func (e *Engine) serviceCaptured(s *Session, svc vocab.Service, in textnorm.Input) Result {
	s.Service = svc
	if s.Intent == "" {
		if intent, term, ok := vocab.MatchIntent(in.Stripped); ok {
			s.Intent = intent
			s.IntentTerm = term
		}
	}
	s.Stage = StageAwaitingZip
	if _, ok := ExtractZIP(in.Stripped); ok {
		return e.handleAwaitingZip(s, in)
	}
	return reply(s, msgAskZip)
}

func (e *Engine) handleAwaitingZip(s *Session, in textnorm.Input) Result {
	zip, err := e.area.Check(in.Stripped)
	switch {
	case errors.Is(err, ErrMalformedZip):
		// A ZIP-less message may still answer a later question; keep anything
		// classifiable so the flow can fast-forward once the gate passes.
		if s.Intent == "" {
			if intent, term, ok := vocab.MatchIntent(in.Stripped); ok {
				s.Intent = intent
				s.IntentTerm = term
			}
		}
		return reply(s, msgZipMalformed)
	case errors.Is(err, ErrOutOfServiceArea):
		return reply(s, msgZipOutOfArea)
	}

	s.ZIP = zip
	if s.Service == vocab.ServiceGutters {
		s.Intent = vocab.IntentReplace
		s.Stage = StageGuttersFootage
		return reply(s, msgGuttersFootage)
	}
	if s.Intent != "" {
		return e.enterBranch(s)
	}
	s.Stage = StageAwaitingIntent
	return reply(s, msgAskIntent(string(s.Service)))
}

func (e *Engine) handleAwaitingIntent(s *Session, in textnorm.Input) Result {
	intent, term, ok := vocab.MatchIntent(in.Stripped)
	if !ok {
		return reply(s, msgClarifyIntent)
	}
	s.Intent = intent
	s.IntentTerm = term
	return e.enterBranch(s)
}

// enterBranch routes a session with service, ZIP, and intent into the
// service-specific question chain.
func (e *Engine) enterBranch(s *Session) Result {
	switch s.Service {
	case vocab.ServiceWindows:
		if s.Intent == vocab.IntentRepair {
			return Result{
				Actions:  []Action{sendText(msgWindowsRepairRejected), {Kind: ActionEndSession}},
				Rejected: true,
			}
		}
		s.Stage = StageWindowsQuantity
		return reply(s, msgWindowsQuantity)

	case vocab.ServiceDoors:
		if s.Intent == vocab.IntentRepair {
			s.Stage = StageDoorsConfirmRepair
			return reply(s, msgDoorsRepairMinimum)
		}
		s.Stage = StageDoorsType
		return reply(s, msgDoorsType)

	case vocab.ServiceDeck:
		if s.Intent == vocab.IntentRepair {
			return Result{
				Actions:  []Action{sendText(msgDeckRepairRejected), {Kind: ActionEndSession}},
				Rejected: true,
			}
		}
		s.Stage = StageDeckMaterial
		switch s.IntentTerm {
		case "new construction", "resurface":
			s.setDetail("project", s.IntentTerm)
		default:
			s.setDetail("project", "replace")
		}
		return reply(s, msgDeckMaterial)

	case vocab.ServiceFence:
		if s.Intent == vocab.IntentRepair {
			s.Stage = StageFenceConfirmRepair
			return reply(s, msgFenceRepairMinimum)
		}
		s.Stage = StageFenceType
		return reply(s, msgFenceType)

	case vocab.ServiceRoofing:
		if s.Intent == vocab.IntentRepair {
			return Result{
				Actions:  []Action{sendText(msgRoofingRepairRejected), {Kind: ActionEndSession}},
				Rejected: true,
			}
		}
		s.Stage = StageRoofingMaterial
		return reply(s, msgRoofMaterial)

	case vocab.ServiceGutters:
		s.Stage = StageGuttersFootage
		return reply(s, msgGuttersFootage)
	}

	return Result{Actions: []Action{sendText(msgUnknownStageReset)}}
}

func (e *Engine) handleWindowsQuantity(s *Session, in textnorm.Input) Result {
	return e.captureDetail(s, "quantity", in, StageWindowsTimeline, msgAskTimeline)
}

func (e *Engine) handleDoorsConfirmRepair(s *Session, in textnorm.Input) Result {
	yes, ok := vocab.MatchYesNo(in.Stripped)
	switch {
	case !ok:
		return reply(s, msgClarifyYesNo)
	case yes:
		s.Stage = StageDoorsTimeline
		return reply(s, msgAskTimeline)
	}
	return declined()
}

func (e *Engine) handleDoorsType(s *Session, in textnorm.Input) Result {
	doorType, ok := vocab.MatchDoorType(in.Stripped)
	if !ok {
		return reply(s, msgDoorsType)
	}
	s.setDetail("door_type", doorType)
	s.Stage = StageDoorsQuantity
	return reply(s, msgDoorsQuantity)
}

func (e *Engine) handleDoorsQuantity(s *Session, in textnorm.Input) Result {
	return e.captureDetail(s, "quantity", in, StageDoorsTimeline, msgAskTimeline)
}

func (e *Engine) handleDeckMaterial(s *Session, in textnorm.Input) Result {
	material, ok := vocab.MatchDeckMaterial(in.Stripped)
	if !ok {
		return reply(s, msgClarifyDeckMaterial)
	}
	s.setDetail("material", material)
	s.Stage = StageDeckTimeline
	return reply(s, msgAskTimeline)
}

func (e *Engine) handleFenceConfirmRepair(s *Session, in textnorm.Input) Result {
	yes, ok := vocab.MatchYesNo(in.Stripped)
	switch {
	case !ok:
		return reply(s, msgClarifyYesNo)
	case yes:
		s.Stage = StageFenceRepairPart
		return reply(s, msgFencePart)
	}
	return declined()
}

func (e *Engine) handleFenceRepairPart(s *Session, in textnorm.Input) Result {
	part, ok := vocab.MatchFencePart(in.Stripped)
	if !ok {
		return reply(s, msgClarifyFencePart)
	}
	s.setDetail("repair_part", part)
	s.Stage = StageFenceRepairQuantity
	return reply(s, msgFencePartQuantity)
}

func (e *Engine) handleFenceRepairQuantity(s *Session, in textnorm.Input) Result {
	return e.captureDetail(s, "repair_quantity", in, StageFenceTimeline, msgAskTimeline)
}

func (e *Engine) handleFenceType(s *Session, in textnorm.Input) Result {
	return e.captureDetail(s, "fence_type", in, StageFenceLinearFeet, msgFenceLinearFeet)
}

func (e *Engine) handleFenceLinearFeet(s *Session, in textnorm.Input) Result {
	return e.captureDetail(s, "linear_feet", in, StageFenceRemoval, msgFenceRemoval)
}

func (e *Engine) handleFenceRemoval(s *Session, in textnorm.Input) Result {
	yes, ok := vocab.MatchYesNo(in.Stripped)
	if !ok {
		return reply(s, msgClarifyYesNo)
	}
	if yes {
		s.setDetail("remove_existing", "yes")
	} else {
		s.setDetail("remove_existing", "no")
	}
	s.Stage = StageFenceTimeline
	return reply(s, msgAskTimeline)
}

func (e *Engine) handleRoofingMaterial(s *Session, in textnorm.Input) Result {
	material, ok := vocab.MatchRoofMaterial(in.Stripped)
	if !ok {
		return reply(s, msgClarifyRoofMaterial)
	}
	if material == vocab.RoofMaterialCedar {
		s.setDetail("material_requested", vocab.RoofMaterialCedar)
		s.Stage = StageRoofingCedarConfirm
		return reply(s, msgRoofCedarConfirm)
	}
	s.setDetail("material", material)
	s.Stage = StageRoofingGutterAddon
	return reply(s, msgRoofGutterAddon)
}

func (e *Engine) handleRoofingCedarConfirm(s *Session, in textnorm.Input) Result {
	// Naming a material directly answers the question.
	if material, ok := vocab.MatchRestrictedRoofMaterial(in.Stripped); ok {
		s.setDetail("material", material)
		s.Stage = StageRoofingGutterAddon
		return reply(s, msgRoofGutterAddon)
	}

	yes, ok := vocab.MatchYesNo(in.Stripped)
	switch {
	case !ok:
		return reply(s, msgClarifyYesNo)
	case yes:
		s.setDetail("material", "asphalt or metal")
		s.Stage = StageRoofingGutterAddon
		return reply(s, msgRoofGutterAddon)
	}
	s.Stage = StageRoofingMaterial
	return reply(s, msgRoofMaterialRestricted)
}

func (e *Engine) handleRoofingGutterAddon(s *Session, in textnorm.Input) Result {
	yes, ok := vocab.MatchYesNo(in.Stripped)
	if !ok {
		return reply(s, msgClarifyYesNo)
	}
	if yes {
		s.setDetail("gutter_addon", "yes")
	} else {
		s.setDetail("gutter_addon", "no")
	}
	s.Stage = StageRoofingTimeline
	return reply(s, msgAskTimeline)
}

func (e *Engine) handleGuttersFootage(s *Session, in textnorm.Input) Result {
	return e.captureDetail(s, "linear_feet", in, StageGuttersTimeline, msgAskTimeline)
}

func (e *Engine) handleTimeline(s *Session, in textnorm.Input) Result {
	if in.IsEmpty() {
		return reply(s, msgClarifyGeneric)
	}
	s.Timeline = in.Lower
	s.Stage = StageScheduling
	return reply(s, msgScheduling)
}

func (e *Engine) handleScheduling(s *Session, in textnorm.Input) Result {
	if in.IsEmpty() {
		return reply(s, msgClarifyGeneric)
	}
	s.ScheduleNote = strings.TrimSpace(in.Raw)

	lead := &LeadRecord{
		ConversationID: s.ID,
		Service:        string(s.Service),
		Intent:         string(s.Intent),
		Detail:         s.DetailSummary(),
		Timeline:       s.Timeline,
		ScheduleNote:   s.ScheduleNote,
		ZIP:            s.ZIP,
	}
	return Result{
		Actions: []Action{
			sendText(msgBooked),
			{Kind: ActionSendBookingPrompt, URL: e.bookingURL, Label: e.bookingLabel},
			{Kind: ActionEndSession},
		},
		Booked: lead,
	}
}

func (e *Engine) handleCollectContact(s *Session, in textnorm.Input) Result {
	if in.IsEmpty() {
		return reply(s, msgHandoffAskContact)
	}
	contact := strings.TrimSpace(in.Raw)
	if phone.LooksLikeNumber(contact) {
		contact = phone.NormalizeE164(contact)
	}

	handoff := &HandoffRequest{
		ConversationID: s.ID,
		Contact:        contact,
		Service:        string(s.Service),
		Stage:          s.Stage,
	}
	s.Stage = StageHandoffDone
	return Result{
		Session: s,
		Actions: []Action{sendText(msgHandoffAck), {Kind: ActionBeginHandoff}},
		Handoff: handoff,
	}
}

// handleHandoffDone swallows one thank-you after a handoff, then retires the
// session and asks the driver to replay the message against a fresh one.
func (e *Engine) handleHandoffDone(s *Session, in textnorm.Input) Result {
	if IsThanks(in.Stripped) && !s.ThanksSeen {
		s.ThanksSeen = true
		return Result{Session: s}
	}
	return Result{Reprocess: true}
}

func declined() Result {
	return Result{
		Actions:  []Action{sendText(msgDeclined), {Kind: ActionEndSession}},
		Rejected: true,
	}
}

func (e *Engine) captureDetail(s *Session, key string, in textnorm.Input, next Stage, prompt string) Result {
	if in.IsEmpty() {
		return reply(s, msgClarifyGeneric)
	}
	s.setDetail(key, in.Lower)
	s.Stage = next
	return reply(s, prompt)
}
