package pipeline

import "strings"

// Small-talk fast path. Social pleasantries must never pay provider
// latency, so both the state machine and the pipeline check this lexicon.
// Short tokens are matched exactly so "ok" does not hit inside "broken".
var smallTalkExact = []string{
	"hi", "hey", "ok", "okay", "yo", "bye", "thanks", "hello",
}

var smallTalkPhrases = []string{
	"good morning", "good afternoon", "good evening", "good night",
	"how are you", "thank you", "nice to meet you", "what's up",
	"goodbye", "see you",
}

func IsSmallTalk(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	lowered = strings.Trim(lowered, "!.?")

	for _, kw := range smallTalkExact {
		if lowered == kw {
			return true
		}
	}
	for _, phrase := range smallTalkPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

func SmallTalkReply(text string) string {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "thank"):
		return "You're welcome! Send me another claim whenever you like. 😊"
	case strings.Contains(lowered, "bye") || strings.Contains(lowered, "see you"):
		return "Goodbye! Come back anytime you want something fact-checked. 👋"
	default:
		return "Hi! 👋 Send me a claim and I'll check it against the latest evidence."
	}
}
