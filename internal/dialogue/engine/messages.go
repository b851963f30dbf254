package engine

import "fmt"

// Outbound copy. Kept in one place so tone edits never touch the state
// machine.
const (
	msgGreeting = "Hey there! 👋 What kind of project can we help with? Fence, Deck, Windows, Doors, Roofing, or Gutters?"

	msgClarifyService = "Hmm, I didn't quite catch that. Which service are you interested in? Fence, Deck, Windows, Doors, Roofing, or Gutters?"

	msgAskZip = "Great choice! What's your 5-digit ZIP code so I can make sure you're in our service area?"

	msgZipMalformed = "I'll need a 5-digit ZIP code to check availability. For example: 98033."

	msgZipOutOfArea = "Dang, it looks like we don't serve that area yet. 😕 If this is for a different property, send me that ZIP and I'll check again."

	msgClarifyIntent = "Sorry, I didn't catch that. Are we talking repair or replace?"

	msgClarifyGeneric = "Sorry, could you say that again?"

	msgClarifyYesNo = "A quick yes or no works. 🙂"

	msgWindowsRepairRejected = "Unfortunately we don't offer window repairs, only full replacements. If you ever decide to replace, we'd love to help!"

	msgWindowsQuantity = "Awesome! How many windows are we replacing?"

	msgAskTimeline = "Got it. How soon are you looking to get started?"

	msgScheduling = "Perfect! Any preferences for scheduling the free on-site estimate? Weekday mornings, weekends, whatever works."

	msgBooked = "Thanks! Grab a time that works for you below and we'll see you soon. 😊"

	msgDoorsRepairMinimum = "We can repair doors, but a heads up: repairs start at a $849 minimum. Want to move forward? (yes/no)"

	msgDoorsType = "Are these interior or exterior doors?"

	msgDoorsQuantity = "Got it. How many doors are we talking about?"

	msgDeckRepairRejected = "Unfortunately we don't offer deck repairs. We do resurfacing, full replacement, and new construction, so if one of those ever makes sense we'd love to help!"

	msgDeckMaterial = "Nice! Are we thinking wood or composite?"

	msgClarifyDeckMaterial = "Wood or composite? Either works great, just depends on the look you're after."

	msgFenceRepairMinimum = "We can repair fences, but a heads up: repairs start at a $549 minimum. Want to move forward? (yes/no)"

	msgFencePart = "No problem! Is it the posts or the panels that need work?"

	msgClarifyFencePart = "Posts, panels, or both?"

	msgFencePartQuantity = "Roughly how many?"

	msgFenceType = "What type of fence are you looking for? Cedar, vinyl, chain link, you name it."

	msgFenceLinearFeet = "About how many linear feet of fence?"

	msgFenceRemoval = "Is there an existing fence we'd need to remove first? (yes/no)"

	msgRoofingRepairRejected = "Unfortunately we don't offer roof repairs, only full replacements. If you ever decide to replace, we'd love to help!"

	msgRoofMaterial = "What material are you considering? Asphalt, metal, or cedar shingle?"

	msgClarifyRoofMaterial = "Asphalt, metal, or cedar shingle?"

	msgRoofCedarConfirm = "Just so you know, we no longer install cedar shingle roofs. We do asphalt and metal. Would you like to go with one of those? (yes/no)"

	msgRoofMaterialRestricted = "No worries! If you change your mind we do asphalt and metal. Which would you prefer?"

	msgRoofGutterAddon = "Want us to quote new gutters along with the roof? (yes/no)"

	msgGuttersFootage = "Sounds good! Roughly how many linear feet of gutter does your home have?"

	msgDeclined = "Totally understand. We're here whenever you're ready. 🙂"

	msgRejected = "No problem, we'll close this out. If you ever need us, just say hi. 👋"

	msgHandoffAskContact = "Sure thing! I'll have a real person reach out. What's the best phone number or email for you?"

	msgHandoffAck = "Perfect, thanks! Someone from our team will reach out shortly. 🙌"

	msgPricingGeneral = "Pricing really depends on the scope of the project, so we give exact numbers after a quick free on-site estimate. Tell me which service you're interested in and I'll get that going!"

	msgPricingFence = "Fence pricing depends on length and material. Most projects land between $4,000 and $12,000, and repairs start at a $549 minimum. Tell me a bit more and I can get you an exact quote!"

	msgUnknownStageReset = "Sorry, something went sideways on our end. Let's start over: what kind of project can we help with? Fence, Deck, Windows, Doors, Roofing, or Gutters?"
)

func msgAskIntent(service string) string {
	return fmt.Sprintf("Are you looking to repair or replace your %s?", service)
}
