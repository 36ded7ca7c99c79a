package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldPromptRating(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		reply    string
		expected bool
	}{
		{
			name:     "long input always prompts",
			input:    "is it true that drinking eight glasses of water every single day is required for health",
			reply:    "Sorry, I couldn't verify that right now. Please try again in a few minutes. 🙏",
			expected: true,
		},
		{
			name:     "substantive short claim prompts",
			input:    "vaccines cause autism",
			reply:    "FALSE. Large-scale studies have found no link between vaccines and autism.",
			expected: true,
		},
		{
			name:     "greeting never prompts",
			input:    "hello",
			reply:    "Hi! 👋 Send me a claim and I'll check it against the latest evidence.",
			expected: false,
		},
		{
			name:     "gratitude never prompts",
			input:    "thank you so much",
			reply:    "You're welcome! Send me another claim whenever you like. 😊",
			expected: false,
		},
		{
			name:     "reply ending with emoji suppresses",
			input:    "short claim",
			reply:    "Here you go 😊",
			expected: false,
		},
		{
			name:     "reply ending with exclamation suppresses",
			input:    "short claim",
			reply:    "Here you go!",
			expected: false,
		},
		{
			name:     "degraded apology suppresses",
			input:    "short claim",
			reply:    "Sorry, I couldn't verify that right now. Please try again in a few minutes. 🙏",
			expected: false,
		},
		{
			name:     "error wording suppresses",
			input:    "short claim",
			reply:    "The service is unavailable at the moment.",
			expected: false,
		},
		{
			name:     "casual word inside a larger word does not suppress",
			input:    "the bridge is broken",
			reply:    "UNVERIFIABLE. No reliable reports confirm the bridge status.",
			expected: true,
		},
		{
			name:     "ok with punctuation is casual",
			input:    "ok!",
			reply:    "UNVERIFIABLE. That is not a factual claim.",
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ShouldPromptRating(tc.input, tc.reply))
		})
	}
}

func TestEndsCasually(t *testing.T) {
	assert.True(t, endsCasually("Great!"))
	assert.True(t, endsCasually("Thanks 🙏"))
	assert.True(t, endsCasually("Bye 👋  "))
	assert.False(t, endsCasually("FALSE. The claim is wrong."))
	assert.False(t, endsCasually(""))
}
