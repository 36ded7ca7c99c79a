package model

import "time"

// FeedbackRecord binds an outbound message to a later thumbs-up/down
// response. Records are advisory telemetry: duplicates for the same
// message are accepted, and nothing is ever mutated after creation.
type FeedbackRecord struct {
	ID        string    `db:"id" json:"id"`
	MessageID string    `db:"message_id" json:"messageId"`
	UserID    string    `db:"user_id" json:"userId"`
	Sentiment Sentiment `db:"sentiment" json:"sentiment"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreateFeedbackParams struct {
	MessageID string
	UserID    string
	Sentiment Sentiment
}
