// Package vocab defines the fixed vocabularies the dialogue engine classifies
// free text against, and the fuzzy matcher that resolves text to a canonical
// token.
package vocab

// Service identifies one of the offered exterior services.
type Service string

const (
	ServiceFence   Service = "fence"
	ServiceDeck    Service = "deck"
	ServiceWindows Service = "windows"
	ServiceDoors   Service = "doors"
	ServiceRoofing Service = "roofing"
	ServiceGutters Service = "gutters"
)

// Intent distinguishes repair work from full replacement.
type Intent string

const (
	IntentRepair  Intent = "repair"
	IntentReplace Intent = "replace"
)

// Token pairs a recognizable term with the canonical value it resolves to.
type Token struct {
	Term      string
	Canonical string
}

// Vocabulary is an ordered list of tokens. Order matters for deterministic
// tie-breaking when two tokens score the same.
type Vocabulary []Token

// Terms returns the vocabulary terms in order.
func (v Vocabulary) Terms() []string {
	terms := make([]string, len(v))
	for i, tok := range v {
		terms[i] = tok.Term
	}
	return terms
}

// services lists the service terms users actually type, ordered so that the
// plural canonical names win ties.
var services = Vocabulary{
	{"windows", string(ServiceWindows)},
	{"window", string(ServiceWindows)},
	{"doors", string(ServiceDoors)},
	{"door", string(ServiceDoors)},
	{"deck", string(ServiceDeck)},
	{"decks", string(ServiceDeck)},
	{"decking", string(ServiceDeck)},
	{"fence", string(ServiceFence)},
	{"fencing", string(ServiceFence)},
	{"roofing", string(ServiceRoofing)},
	{"roof", string(ServiceRoofing)},
	{"gutters", string(ServiceGutters)},
	{"gutter", string(ServiceGutters)},
}

// intents maps repair/replace synonyms. "new construction" and "resurface"
// are deck phrasings that classify as replacement work.
var intents = Vocabulary{
	{"repair", string(IntentRepair)},
	{"repairs", string(IntentRepair)},
	{"fix", string(IntentRepair)},
	{"fixing", string(IntentRepair)},
	{"fixed", string(IntentRepair)},
	{"broken", string(IntentRepair)},
	{"patch", string(IntentRepair)},
	{"replace", string(IntentReplace)},
	{"replacement", string(IntentReplace)},
	{"replacing", string(IntentReplace)},
	{"new construction", string(IntentReplace)},
	{"resurface", string(IntentReplace)},
	{"install", string(IntentReplace)},
	{"installation", string(IntentReplace)},
	{"brand new", string(IntentReplace)},
	{"new", string(IntentReplace)},
}

// yesNoSplit is the index separating affirmative from negative entries in
// yesNo. A tuned constant, not a business rule.
const yesNoSplit = 11

// yesNo is a single ordered vocabulary; entries before yesNoSplit are
// affirmative.
var yesNo = Vocabulary{
	{"yes", "yes"},
	{"yeah", "yes"},
	{"yep", "yes"},
	{"yup", "yes"},
	{"sure", "yes"},
	{"ok", "yes"},
	{"okay", "yes"},
	{"absolutely", "yes"},
	{"definitely", "yes"},
	{"sounds good", "yes"},
	{"lets do it", "yes"},
	{"no", "no"},
	{"nope", "no"},
	{"nah", "no"},
	{"not now", "no"},
	{"pass", "no"},
}

// RoofMaterialCedar is the roofing material we re-prompt away from.
const RoofMaterialCedar = "cedar shingle"

var roofMaterials = Vocabulary{
	{"asphalt", "asphalt"},
	{"asphalt shingle", "asphalt"},
	{"asphalt shingles", "asphalt"},
	{"metal", "metal"},
	{"cedar shingle", RoofMaterialCedar},
	{"cedar shingles", RoofMaterialCedar},
	{"cedar", RoofMaterialCedar},
	{"shake", RoofMaterialCedar},
}

// roofMaterialsRestricted is offered after a cedar request.
var roofMaterialsRestricted = Vocabulary{
	{"asphalt", "asphalt"},
	{"asphalt shingle", "asphalt"},
	{"asphalt shingles", "asphalt"},
	{"metal", "metal"},
}

var deckMaterials = Vocabulary{
	{"wood", "wood"},
	{"wooden", "wood"},
	{"cedar", "wood"},
	{"composite", "composite"},
	{"trex", "composite"},
}

var doorTypes = Vocabulary{
	{"interior", "interior"},
	{"exterior", "exterior"},
	{"inside", "interior"},
	{"outside", "exterior"},
	{"both", "both"},
}

var fenceParts = Vocabulary{
	{"posts", "posts"},
	{"post", "posts"},
	{"panels", "panels"},
	{"panel", "panels"},
	{"both", "both"},
}
