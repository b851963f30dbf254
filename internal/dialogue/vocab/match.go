package vocab

import (
	"strings"

	"github.com/adrg/strutil/metrics"
)

// SimilarityThreshold is the minimum Sørensen–Dice score required to accept a
// fuzzy match. Tuned empirically; treat as a constant to adjust, not a rule.
const SimilarityThreshold = 0.4

var dice = metrics.NewSorensenDice()

// Match resolves free text to a canonical token from the vocabulary.
//
// Two stages: first a similarity pass scoring the whole input against every
// term, accepting the best score above SimilarityThreshold (earlier terms win
// ties); then a substring pass returning the term found earliest in the input.
// Returns the matched token and false when neither stage finds anything.
func Match(input string, v Vocabulary) (Token, bool) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return Token{}, false
	}

	best := Token{}
	bestScore := SimilarityThreshold
	for _, tok := range v {
		if score := dice.Compare(input, tok.Term); score > bestScore {
			best = tok
			bestScore = score
		}
	}
	if best.Term != "" {
		return best, true
	}

	// Substring fallback: first positional match.
	bestIdx := -1
	for _, tok := range v {
		idx := strings.Index(input, tok.Term)
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx {
			best = tok
			bestIdx = idx
		}
	}
	if bestIdx >= 0 {
		return best, true
	}

	return Token{}, false
}

// MatchService classifies text as one of the offered services.
func MatchService(input string) (Service, bool) {
	tok, ok := Match(input, services)
	if !ok {
		return "", false
	}
	return Service(tok.Canonical), true
}

// MatchIntent classifies text as repair or replace. The matched term is
// returned alongside the intent so callers can record deck phrasings like
// "resurface".
func MatchIntent(input string) (Intent, string, bool) {
	tok, ok := Match(input, intents)
	if !ok {
		return "", "", false
	}
	return Intent(tok.Canonical), tok.Term, true
}

// MatchYesNo classifies text as an affirmative or negative answer.
func MatchYesNo(input string) (yes bool, ok bool) {
	tok, found := Match(input, yesNo)
	if !found {
		return false, false
	}
	return tok.Canonical == "yes", true
}

// MatchRoofMaterial classifies text as a roofing material choice.
func MatchRoofMaterial(input string) (string, bool) {
	tok, ok := Match(input, roofMaterials)
	if !ok {
		return "", false
	}
	return tok.Canonical, true
}

// MatchRestrictedRoofMaterial classifies text against the materials offered
// after a cedar shingle request was declined.
func MatchRestrictedRoofMaterial(input string) (string, bool) {
	tok, ok := Match(input, roofMaterialsRestricted)
	if !ok {
		return "", false
	}
	return tok.Canonical, true
}

// MatchDeckMaterial classifies text as a deck material choice.
func MatchDeckMaterial(input string) (string, bool) {
	tok, ok := Match(input, deckMaterials)
	if !ok {
		return "", false
	}
	return tok.Canonical, true
}

// MatchDoorType classifies text as an interior/exterior door choice.
func MatchDoorType(input string) (string, bool) {
	tok, ok := Match(input, doorTypes)
	if !ok {
		return "", false
	}
	return tok.Canonical, true
}

// MatchFencePart classifies text as the fence component needing repair.
func MatchFencePart(input string) (string, bool) {
	tok, ok := Match(input, fenceParts)
	if !ok {
		return "", false
	}
	return tok.Canonical, true
}
