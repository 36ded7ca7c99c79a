package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/config"
)

const twilioAPIBase = "https://api.twilio.com"

// Messenger is the outbound send capability. Send returns the channel's
// message id for the delivered body.
type Messenger interface {
	Send(ctx context.Context, to, body string) (string, error)
}

type TwilioMessenger struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	client     *http.Client
}

func NewTwilioMessenger(accountSID, authToken, from string) *TwilioMessenger {
	return &TwilioMessenger{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    twilioAPIBase,
		client:     &http.Client{Timeout: config.TwilioSendTimeout},
	}
}

type twilioMessageResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (m *TwilioMessenger) Send(ctx context.Context, to, body string) (string, error) {
	form := url.Values{}
	form.Set("From", m.from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", m.baseURL, m.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(m.accountSID, m.authToken)

	start := time.Now()
	resp, err := m.client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().Err(err).Str("to", to).Dur("elapsed", elapsed).Msg("twilio send error")
		return "", fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed twilioMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode twilio response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().
			Int("status", resp.StatusCode).
			Str("to", to).
			Str("twilioError", parsed.Message).
			Dur("elapsed", elapsed).
			Msg("twilio send failed")
		return "", fmt.Errorf("twilio returned status %d: %s", resp.StatusCode, parsed.Message)
	}

	log.Info().
		Str("messageSid", parsed.SID).
		Str("to", to).
		Dur("elapsed", elapsed).
		Msg("message sent")

	return parsed.SID, nil
}
