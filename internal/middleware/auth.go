package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/audit"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/util"
)

// AdminAuthMiddleware guards operator endpoints with a static bearer token.
// When no token is configured the endpoints are disabled outright.
type AdminAuthMiddleware struct {
	token string
}

func NewAdminAuthMiddleware(token string) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{token: token}
}

func (m *AdminAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.token == "" {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "Admin endpoints are disabled",
			})
			return
		}

		token := extractBearer(r)
		if token == "" || !util.ConstantTimeEqual(token, m.token) {
			log.Warn().Msg("admin auth: invalid or missing token")
			audit.LogFromRequest(r, audit.Event{Type: audit.EventAuthFailure})
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Invalid token",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
