package service

import (
	"strings"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/model"
)

// Input is the tagged classification of one inbound message. It is
// computed once per turn; the state machine dispatches on Kind instead of
// re-comparing strings and emoji glyphs at every branch.
type Input struct {
	Kind         model.InputKind
	Claim        string
	LanguageCode string
}

var positiveFeedbackSignals = []string{
	"thumbs_up", "👍", "👍 like",
}

var negativeFeedbackSignals = []string{
	"thumbs_down", "👎", "👎 dislike",
}

const langPayloadPrefix = "lang_"

// Classify maps raw text plus an optional button payload to an Input.
// The button payload takes precedence over free text when both are present.
func Classify(text, buttonPayload string) Input {
	trimmed := strings.TrimSpace(text)
	payload := strings.TrimSpace(strings.ToLower(buttonPayload))

	// Claim carries the raw text even for feedback kinds: when feedback
	// arrives with nothing to bind to, the turn falls back to claim handling.
	if kind, ok := matchFeedback(payload); ok {
		return Input{Kind: kind, Claim: trimmed}
	}
	if kind, ok := matchFeedback(strings.ToLower(trimmed)); ok {
		return Input{Kind: kind, Claim: trimmed}
	}

	if code, ok := matchLanguage(payload, trimmed); ok {
		return Input{Kind: model.InputLanguageSelect, LanguageCode: code}
	}

	if trimmed == "" {
		return Input{Kind: model.InputEmpty}
	}

	return Input{Kind: model.InputClaim, Claim: trimmed}
}

func matchFeedback(value string) (model.InputKind, bool) {
	for _, sig := range positiveFeedbackSignals {
		if value == sig {
			return model.InputFeedbackPositive, true
		}
	}
	for _, sig := range negativeFeedbackSignals {
		if value == sig {
			return model.InputFeedbackNegative, true
		}
	}
	return "", false
}

func matchLanguage(payload, text string) (string, bool) {
	if strings.HasPrefix(payload, langPayloadPrefix) {
		code := strings.TrimPrefix(payload, langPayloadPrefix)
		if isLanguageCode(code) {
			return code, true
		}
	}

	lowered := strings.ToLower(text)
	if strings.HasPrefix(lowered, "/lang ") {
		code := strings.TrimSpace(strings.TrimPrefix(lowered, "/lang "))
		if isLanguageCode(code) {
			return code, true
		}
	}

	return "", false
}

func isLanguageCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
