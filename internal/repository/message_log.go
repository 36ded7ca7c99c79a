package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/model"
)

type MessageLogRepository interface {
	Create(ctx context.Context, params model.CreateMessageLogParams) (*model.MessageLog, error)
	CountByDirection(ctx context.Context, direction model.Direction) (int, error)
	CountByDirectionSince(ctx context.Context, direction model.Direction, since time.Time) (int, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type messageLogRepo struct {
	db *sqlx.DB
}

func NewMessageLogRepository(db *sqlx.DB) MessageLogRepository {
	return &messageLogRepo{db: db}
}

func (r *messageLogRepo) Create(ctx context.Context, params model.CreateMessageLogParams) (*model.MessageLog, error) {
	var msg model.MessageLog
	err := r.db.GetContext(ctx, &msg, `
		INSERT INTO message_log (id, user_id, direction, body, provider_message_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, uuid.NewString(), params.UserID, params.Direction, params.Body, params.ProviderMessageID)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageLogRepo) CountByDirection(ctx context.Context, direction model.Direction) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM message_log WHERE direction = $1
	`, direction)
	return count, err
}

func (r *messageLogRepo) CountByDirectionSince(ctx context.Context, direction model.Direction, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM message_log
		WHERE direction = $1 AND created_at >= $2
	`, direction, since)
	return count, err
}

func (r *messageLogRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM message_log WHERE created_at < $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
