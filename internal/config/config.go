package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL,required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	TwilioAccountSID     string `env:"TWILIO_ACCOUNT_SID,required"`
	TwilioAuthToken      string `env:"TWILIO_AUTH_TOKEN,required"`
	TwilioWhatsAppNumber string `env:"TWILIO_WHATSAPP_NUMBER,required"`

	SerperAPIKey string `env:"SERPER_API_KEY"`
	SerpAPIKey   string `env:"SERPAPI_API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GroqAPIKey   string `env:"GROQ_API_KEY"`
	GroqModel    string `env:"GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`

	SessionTTLHours         int    `env:"SESSION_TTL_HOURS" envDefault:"24"`
	FeedbackRetentionDays   int    `env:"FEEDBACK_RETENTION_DAYS" envDefault:"30"`
	SearchTimeoutSeconds    int    `env:"SEARCH_TIMEOUT_SECONDS" envDefault:"20"`
	SynthesisTimeoutSeconds int    `env:"SYNTHESIS_TIMEOUT_SECONDS" envDefault:"180"`
	SendPacingMillis        int    `env:"SEND_PACING_MS" envDefault:"500"`
	WebhookRateLimitPerMin  int    `env:"WEBHOOK_RATE_LIMIT_PER_MIN" envDefault:"30"`
	AdminToken              string `env:"ADMIN_TOKEN"`
	DefaultLocale           string `env:"DEFAULT_LOCALE" envDefault:"en"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) FeedbackRetention() time.Duration {
	return time.Duration(c.FeedbackRetentionDays) * 24 * time.Hour
}

func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.SearchTimeoutSeconds) * time.Second
}

func (c *Config) SynthesisTimeout() time.Duration {
	return time.Duration(c.SynthesisTimeoutSeconds) * time.Second
}

func (c *Config) SendPacing() time.Duration {
	return time.Duration(c.SendPacingMillis) * time.Millisecond
}

func (c *Config) Validate(isProduction bool) error {
	if c.SerperAPIKey == "" && c.SerpAPIKey == "" {
		log.Warn().Msg("no search provider configured: claims will be verified without evidence")
	}
	if c.OpenAIAPIKey == "" && c.GroqAPIKey == "" {
		return fmt.Errorf("at least one synthesis provider is required (set OPENAI_API_KEY or GROQ_API_KEY)")
	}

	if isProduction {
		if c.AdminToken != "" && len(c.AdminToken) < 32 {
			return fmt.Errorf("ADMIN_TOKEN must be at least 32 characters in production (generate with: openssl rand -base64 32)")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
