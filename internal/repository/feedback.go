package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/model"
)

type FeedbackRepository interface {
	Create(ctx context.Context, params model.CreateFeedbackParams) (*model.FeedbackRecord, error)
	CountBySentiment(ctx context.Context, sentiment model.Sentiment) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type feedbackRepo struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Create(ctx context.Context, params model.CreateFeedbackParams) (*model.FeedbackRecord, error) {
	var rec model.FeedbackRecord
	err := r.db.GetContext(ctx, &rec, `
		INSERT INTO feedback_records (id, message_id, user_id, sentiment)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, uuid.NewString(), params.MessageID, params.UserID, params.Sentiment)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *feedbackRepo) CountBySentiment(ctx context.Context, sentiment model.Sentiment) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM feedback_records WHERE sentiment = $1
	`, sentiment)
	return count, err
}

func (r *feedbackRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM feedback_records WHERE created_at >= $1
	`, since)
	return count, err
}

func (r *feedbackRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM feedback_records WHERE created_at < $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
