package extract

import "github.com/alchemy-chemicals/quotebot/internal/match"

var greetings = []string{
	"hi", "hello", "hey", "namaste",
	"good morning", "good afternoon", "good evening",
}

var resetPhrases = []string{
	"start over", "start again", "new quote", "reset", "clear the order",
}

// IsGreeting reports whether the turn opens or closes with a greeting.
// Matching is word-boundary strict: "deliver to delhi" is not a greeting
// even though "delhi" embeds "hi".
func IsGreeting(text string) bool {
	for _, g := range greetings {
		if match.HasWordPrefix(text, g) || match.HasWordSuffix(text, g) {
			return true
		}
	}
	return false
}

// IsReset reports whether the turn explicitly asks to discard the order.
func IsReset(text string) bool {
	for _, p := range resetPhrases {
		if match.ContainsWord(text, p) {
			return true
		}
	}
	return false
}
