package engine

import "regexp"

// Interceptor patterns run against normalized (lowercased, punctuation
// stripped) text before the stage handlers.
var (
	rejectionPattern = regexp.MustCompile(`\b(stop|cancel|unsubscribe|quit|opt out|take me off|not interested|no thanks|no thank you|leave me alone|remove me|dont (contact|message|text) me)\b`)

	greetingPattern = regexp.MustCompile(`\b(hi|hiya|hello|hey|howdy|good (morning|afternoon|evening))\b`)

	restartPattern = regexp.MustCompile(`\b(get started|start over|restart)\b`)

	pricingPattern = regexp.MustCompile(`\b(price|prices|pricing|cost|costs|how much|estimate|quote|ballpark)\b`)

	fenceMentionPattern = regexp.MustCompile(`\b(fence|fencing)\b`)

	thanksPattern = regexp.MustCompile(`\b(thanks|thank you|thx|ty|appreciate)\b`)

	// Handoff requests are matched on exact word boundaries rather than
	// fuzzily; "soon" is close enough to "someone" to clear the similarity
	// threshold.
	handoffPattern = regexp.MustCompile(`\b(human|agent|representative|real person|person|someone|operator|manager|customer service)\b`)

	// "time" defeats the pricing intercept so "what time works" is not read as
	// a cost question.
	timeMentionPattern = regexp.MustCompile(`\btime\b`)
)

// IsRejection reports whether the text opts out of the conversation.
func IsRejection(stripped string) bool {
	return rejectionPattern.MatchString(stripped)
}

// IsGreeting reports whether the text opens a conversation.
func IsGreeting(stripped string) bool {
	return greetingPattern.MatchString(stripped)
}

// IsRestart reports whether the text explicitly asks to start over.
func IsRestart(stripped string) bool {
	return restartPattern.MatchString(stripped)
}

// IsPricingQuestion reports whether the text asks about cost.
func IsPricingQuestion(stripped string) bool {
	return pricingPattern.MatchString(stripped) && !timeMentionPattern.MatchString(stripped)
}

// MentionsFence reports whether the text names fencing.
func MentionsFence(stripped string) bool {
	return fenceMentionPattern.MatchString(stripped)
}

// IsThanks reports whether the text is a thank-you.
func IsThanks(stripped string) bool {
	return thanksPattern.MatchString(stripped)
}

// IsHandoffRequest reports whether the text asks for a human.
func IsHandoffRequest(stripped string) bool {
	return handoffPattern.MatchString(stripped)
}
