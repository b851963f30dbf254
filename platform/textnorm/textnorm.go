// Package textnorm provides input normalization for free-text messages.
// This is part of the platform layer and contains no business logic.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	// nonWordRegex matches runs of anything that is not a letter or digit.
	nonWordRegex = regexp.MustCompile(`[^a-z0-9]+`)
	// whitespaceRegex collapses runs of whitespace.
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Input is a normalized view of one inbound message.
type Input struct {
	// Raw is the original text as received.
	Raw string
	// Lower is the trimmed, lower-cased text.
	Lower string
	// Stripped is Lower with non-word characters replaced by single spaces,
	// suitable for phrase-boundary matching.
	Stripped string
}

// Normalize produces both matching variants of the raw text. The empty string
// is valid input and yields empty variants.
func Normalize(raw string) Input {
	lower := strings.ToLower(strings.TrimSpace(raw))
	stripped := strings.TrimSpace(nonWordRegex.ReplaceAllString(lower, " "))
	stripped = whitespaceRegex.ReplaceAllString(stripped, " ")

	return Input{
		Raw:      raw,
		Lower:    lower,
		Stripped: stripped,
	}
}

// IsEmpty reports whether the message carries no matchable content.
func (in Input) IsEmpty() bool {
	return in.Stripped == ""
}
