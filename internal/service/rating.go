package service

import (
	"strings"
	"unicode"
)

const RatingPrompt = "Was this helpful? Reply with 👍 or 👎"

const shortInputWordLimit = 10

// Casual/greeting/gratitude lexicon used by the rating suppression
// heuristic. Short tokens match whole words of the input; phrases match
// as case-insensitive substrings.
var casualWords = []string{
	"hello", "hi", "hey", "thanks", "thank", "ok", "okay", "bye", "goodbye",
}

var casualPhrases = []string{
	"thank you", "good morning", "good afternoon", "good evening", "how are you",
}

var errorIndicators = []string{
	"sorry", "error", "couldn't", "could not", "try again", "unavailable",
}

// ShouldPromptRating decides whether a rating prompt follows a substantive
// reply. The word count and lexicon look at the original user input; the
// punctuation and error checks look at the composed reply. Short casual
// exchanges and degraded replies never prompt.
func ShouldPromptRating(userInput, reply string) bool {
	if len(strings.Fields(userInput)) >= shortInputWordLimit {
		return true
	}

	if matchesCasualLexicon(userInput) {
		return false
	}
	if endsCasually(reply) {
		return false
	}
	if containsErrorIndicator(reply) {
		return false
	}

	return true
}

func matchesCasualLexicon(input string) bool {
	lowered := strings.ToLower(input)
	for _, phrase := range casualPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	for _, field := range strings.Fields(lowered) {
		field = strings.Trim(field, "!.,?")
		for _, word := range casualWords {
			if field == word {
				return true
			}
		}
	}
	return false
}

// endsCasually reports whether the reply ends in an exclamation mark or an
// emoji, the signature of a canned conversational reply.
func endsCasually(reply string) bool {
	trimmed := strings.TrimRightFunc(reply, unicode.IsSpace)
	if trimmed == "" {
		return false
	}

	runes := []rune(trimmed)
	last := runes[len(runes)-1]

	if last == '!' {
		return true
	}
	return isEmoji(last)
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r == 0x2764: // heavy black heart
		return true
	default:
		return false
	}
}

func containsErrorIndicator(reply string) bool {
	lowered := strings.ToLower(reply)
	for _, ind := range errorIndicators {
		if strings.Contains(lowered, ind) {
			return true
		}
	}
	return false
}
