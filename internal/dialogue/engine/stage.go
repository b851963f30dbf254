// Package engine implements the dialogue state machine that qualifies a
// prospect over a multi-turn text conversation. The engine is pure
// computation: it never performs I/O, and every input classification at every
// stage has a defined transition.
package engine

// Stage is the position of a conversation in the qualification dialogue.
type Stage string

const (
	StageStart           Stage = "start"
	StageAwaitingService Stage = "awaiting_service"
	StageAwaitingZip     Stage = "awaiting_zip"
	StageAwaitingIntent  Stage = "awaiting_intent"

	StageWindowsQuantity Stage = "windows_quantity"
	StageWindowsTimeline Stage = "windows_timeline"

	StageDoorsConfirmRepair Stage = "doors_confirm_repair"
	StageDoorsType          Stage = "doors_type"
	StageDoorsQuantity      Stage = "doors_quantity"
	StageDoorsTimeline      Stage = "doors_timeline"

	StageDeckMaterial Stage = "deck_material"
	StageDeckTimeline Stage = "deck_timeline"

	StageFenceConfirmRepair  Stage = "fence_confirm_repair"
	StageFenceRepairPart     Stage = "fence_repair_part"
	StageFenceRepairQuantity Stage = "fence_repair_quantity"
	StageFenceType           Stage = "fence_type"
	StageFenceLinearFeet     Stage = "fence_linear_feet"
	StageFenceRemoval        Stage = "fence_removal"
	StageFenceTimeline       Stage = "fence_timeline"

	StageRoofingMaterial     Stage = "roofing_material"
	StageRoofingCedarConfirm Stage = "roofing_cedar_confirm"
	StageRoofingGutterAddon  Stage = "roofing_gutter_addon"
	StageRoofingTimeline     Stage = "roofing_timeline"

	StageGuttersFootage  Stage = "gutters_footage"
	StageGuttersTimeline Stage = "gutters_timeline"

	StageScheduling Stage = "scheduling"

	StageCollectContact Stage = "collect_contact"
	StageHandoffDone    Stage = "handoff_done"
)

// AllStages lists every reachable stage. Used to verify that the transition
// table leaves no stage without a defined handler.
var AllStages = []Stage{
	StageStart,
	StageAwaitingService,
	StageAwaitingZip,
	StageAwaitingIntent,
	StageWindowsQuantity,
	StageWindowsTimeline,
	StageDoorsConfirmRepair,
	StageDoorsType,
	StageDoorsQuantity,
	StageDoorsTimeline,
	StageDeckMaterial,
	StageDeckTimeline,
	StageFenceConfirmRepair,
	StageFenceRepairPart,
	StageFenceRepairQuantity,
	StageFenceType,
	StageFenceLinearFeet,
	StageFenceRemoval,
	StageFenceTimeline,
	StageRoofingMaterial,
	StageRoofingCedarConfirm,
	StageRoofingGutterAddon,
	StageRoofingTimeline,
	StageGuttersFootage,
	StageGuttersTimeline,
	StageScheduling,
	StageCollectContact,
	StageHandoffDone,
}
