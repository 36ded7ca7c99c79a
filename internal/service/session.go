package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/model"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/repository"
)

// SessionService owns session lifecycle around the keyed store. The store
// is advisory, not authoritative: read failures yield a fresh in-memory
// session and write failures are swallowed, so a degraded store never
// blocks a conversation.
type SessionService struct {
	repo          repository.SessionRepository
	ttl           time.Duration
	defaultLocale string
}

func NewSessionService(repo repository.SessionRepository, ttl time.Duration, defaultLocale string) *SessionService {
	return &SessionService{
		repo:          repo,
		ttl:           ttl,
		defaultLocale: defaultLocale,
	}
}

// LoadOrCreate returns the user's session, replacing it with a fresh one
// when it is absent, expired, or unreadable. It never fails outward.
func (s *SessionService) LoadOrCreate(ctx context.Context, userID string, now time.Time) *model.Session {
	session, err := s.repo.Load(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("userId", userID).Msg("session load failed, starting fresh session")
		return model.NewSession(userID, s.defaultLocale, now)
	}

	if session == nil {
		log.Debug().Str("userId", userID).Msg("no session found, creating new")
		return model.NewSession(userID, s.defaultLocale, now)
	}

	if session.Expired(now, s.ttl) {
		log.Info().
			Str("userId", userID).
			Time("lastActivity", session.LastActivity).
			Msg("session expired, starting fresh session")
		return model.NewSession(userID, s.defaultLocale, now)
	}

	return session
}

// Save upserts the session with a sliding expiry. A failed write is logged
// and swallowed: the in-process copy already served this turn, and
// availability takes priority over durability of history.
func (s *SessionService) Save(ctx context.Context, session *model.Session) {
	if err := s.repo.Save(ctx, session, s.ttl); err != nil {
		log.Error().Err(err).Str("userId", session.UserID).Msg("session save failed, state will not survive restart")
	}
}
