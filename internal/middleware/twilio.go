package middleware

import (
	"net/http"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/audit"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/util"
)

// TwilioSignatureMiddleware validates X-Twilio-Signature: base64-encoded
// HMAC-SHA1 of the full request URL with the sorted POST parameters
// appended, keyed by the account auth token.
type TwilioSignatureMiddleware struct {
	authToken string
}

func NewTwilioSignatureMiddleware(authToken string) *TwilioSignatureMiddleware {
	return &TwilioSignatureMiddleware{authToken: authToken}
}

func (m *TwilioSignatureMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authToken == "" {
			log.Warn().Msg("twilio signature verification bypassed: TWILIO_AUTH_TOKEN is not configured")
			next.ServeHTTP(w, r)
			return
		}

		signature := r.Header.Get("X-Twilio-Signature")
		if signature == "" {
			log.Warn().Msg("twilio signature middleware: missing signature header")
			audit.LogFromRequest(r, audit.Event{Type: audit.EventSignatureFailure})
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Missing signature",
			})
			return
		}

		// ParseForm consumes the body; the parsed values stay cached on the
		// request for the downstream handler.
		if err := r.ParseForm(); err != nil {
			log.Error().Err(err).Msg("twilio signature middleware: failed to parse form")
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "Invalid form body",
			})
			return
		}

		computed := util.HmacSHA1Base64(m.authToken, signaturePayload(r))
		if !util.ConstantTimeEqual(computed, signature) {
			log.Warn().Msg("twilio signature middleware: invalid signature")
			audit.LogFromRequest(r, audit.Event{Type: audit.EventSignatureFailure})
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Invalid signature",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// signaturePayload reconstructs the string Twilio signs: the public request
// URL followed by each POST parameter name and value in sorted order.
func signaturePayload(r *http.Request) string {
	var b strings.Builder
	b.WriteString(requestURL(r))

	keys := make([]string, 0, len(r.PostForm))
	for k := range r.PostForm {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range r.PostForm[k] {
			b.WriteString(k)
			b.WriteString(v)
		}
	}
	return b.String()
}

func requestURL(r *http.Request) string {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		if r.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}
	return scheme + "://" + r.Host + r.RequestURI
}
