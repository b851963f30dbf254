// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// LooksLikeNumber reports whether the input contains enough digits to plausibly
// be a phone number. Used to decide whether a contact payload should be
// normalized before storage.
func LooksLikeNumber(input string) bool {
	digits := 0
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}
