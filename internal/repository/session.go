package repository

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/model"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/redis"
)

// SessionRepository is the keyed byte-store behind the session service.
// Load returns (nil, nil) for absent keys. A malformed stored record is
// also reported as absent: it is discarded with a warning rather than
// surfaced, so a corrupt record can never crash a turn.
type SessionRepository interface {
	Load(ctx context.Context, userID string) (*model.Session, error)
	Save(ctx context.Context, session *model.Session, ttl time.Duration) error
}

type redisSessionRepo struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepo{client: client}
}

func (r *redisSessionRepo) Load(ctx context.Context, userID string) (*model.Session, error) {
	data, err := r.client.Get(ctx, redis.SessionKey(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session, err := model.DecodeSession(data)
	if err != nil {
		log.Warn().Err(err).Str("userId", userID).Msg("discarding malformed session record")
		return nil, nil
	}

	return session, nil
}

func (r *redisSessionRepo) Save(ctx context.Context, session *model.Session, ttl time.Duration) error {
	data, err := model.EncodeSession(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redis.SessionKey(session.UserID), data, ttl).Err()
}
