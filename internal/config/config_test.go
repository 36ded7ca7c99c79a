package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("SessionTTL converts hours to duration", func(t *testing.T) {
		cfg := &Config{SessionTTLHours: 24}
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL())
	})

	t.Run("FeedbackRetention converts days to duration", func(t *testing.T) {
		cfg := &Config{FeedbackRetentionDays: 30}
		assert.Equal(t, 30*24*time.Hour, cfg.FeedbackRetention())
	})

	t.Run("SearchTimeout converts seconds to duration", func(t *testing.T) {
		cfg := &Config{SearchTimeoutSeconds: 20}
		assert.Equal(t, 20*time.Second, cfg.SearchTimeout())
	})

	t.Run("SendPacing converts milliseconds to duration", func(t *testing.T) {
		cfg := &Config{SendPacingMillis: 500}
		assert.Equal(t, 500*time.Millisecond, cfg.SendPacing())
	})
}

func TestValidate(t *testing.T) {
	base := Config{
		RedisURL:     "redis://localhost:6379",
		OpenAIAPIKey: "sk-test",
	}

	t.Run("passes with one synthesis provider", func(t *testing.T) {
		cfg := base
		assert.NoError(t, cfg.Validate(false))
	})

	t.Run("fails without any synthesis provider", func(t *testing.T) {
		cfg := base
		cfg.OpenAIAPIKey = ""
		cfg.GroqAPIKey = ""
		assert.Error(t, cfg.Validate(false))
	})

	t.Run("groq alone satisfies synthesis requirement", func(t *testing.T) {
		cfg := base
		cfg.OpenAIAPIKey = ""
		cfg.GroqAPIKey = "gsk-test"
		assert.NoError(t, cfg.Validate(false))
	})

	t.Run("short admin token rejected in production", func(t *testing.T) {
		cfg := base
		cfg.AdminToken = "short"
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("short admin token allowed in development", func(t *testing.T) {
		cfg := base
		cfg.AdminToken = "short"
		assert.NoError(t, cfg.Validate(false))
	})

	t.Run("long admin token allowed in production", func(t *testing.T) {
		cfg := base
		cfg.AdminToken = "0123456789abcdef0123456789abcdef"
		assert.NoError(t, cfg.Validate(true))
	})
}

func TestLoad(t *testing.T) {
	vars := []string{
		"PORT", "DATABASE_URL", "REDIS_URL", "LOG_LEVEL",
		"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_WHATSAPP_NUMBER",
		"SERPER_API_KEY", "SERPAPI_API_KEY", "OPENAI_API_KEY", "OPENAI_MODEL",
		"GROQ_API_KEY", "GROQ_MODEL", "SESSION_TTL_HOURS", "FEEDBACK_RETENTION_DAYS",
		"SEARCH_TIMEOUT_SECONDS", "SYNTHESIS_TIMEOUT_SECONDS", "SEND_PACING_MS",
		"WEBHOOK_RATE_LIMIT_PER_MIN", "ADMIN_TOKEN", "DEFAULT_LOCALE",
	}

	originalEnv := make(map[string]string, len(vars))
	for _, k := range vars {
		originalEnv[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	setRequired := func() {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("TWILIO_ACCOUNT_SID", "AC111")
		os.Setenv("TWILIO_AUTH_TOKEN", "token")
		os.Setenv("TWILIO_WHATSAPP_NUMBER", "whatsapp:+14155238886")
	}

	t.Run("loads config with defaults", func(t *testing.T) {
		setRequired()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 24, cfg.SessionTTLHours)
		assert.Equal(t, 30, cfg.FeedbackRetentionDays)
		assert.Equal(t, 20, cfg.SearchTimeoutSeconds)
		assert.Equal(t, 180, cfg.SynthesisTimeoutSeconds)
		assert.Equal(t, 500, cfg.SendPacingMillis)
		assert.Equal(t, 30, cfg.WebhookRateLimitPerMin)
		assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
		assert.Equal(t, "llama-3.3-70b-versatile", cfg.GroqModel)
		assert.Equal(t, "en", cfg.DefaultLocale)
	})

	t.Run("loads custom values", func(t *testing.T) {
		setRequired()
		os.Setenv("PORT", "3000")
		os.Setenv("SESSION_TTL_HOURS", "48")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("DEFAULT_LOCALE", "sw")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, 48, cfg.SessionTTLHours)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "sw", cfg.DefaultLocale)
	})

	t.Run("fails without required TWILIO_ACCOUNT_SID", func(t *testing.T) {
		setRequired()
		os.Unsetenv("TWILIO_ACCOUNT_SID")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("fails without required DATABASE_URL", func(t *testing.T) {
		setRequired()
		os.Unsetenv("DATABASE_URL")

		_, err := Load()
		assert.Error(t, err)
	})
}
