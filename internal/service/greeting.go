package service

import (
	"fmt"
	"time"
)

const onboardingText = "I'm your AI fact-checking assistant. Send me any claim " +
	"and I'll check it against current evidence. You can rate my answers with 👍 or 👎."

// WelcomeMessage composes the first-turn greeting. The salutation follows
// the local time of day at the server.
func WelcomeMessage(now time.Time) string {
	var salutation string
	switch hour := now.Hour(); {
	case hour < 5:
		salutation = "Hello, night owl! 🌙"
	case hour < 12:
		salutation = "Good morning! ☀️"
	case hour < 18:
		salutation = "Good afternoon! 👋"
	default:
		salutation = "Good evening! 🌆"
	}

	return fmt.Sprintf("%s Welcome to My AI Fact Checker.\n\n%s", salutation, onboardingText)
}
