package model

import "time"

// MessageLog is a best-effort ops record of traffic through the relay.
// The authoritative conversation history lives on the Session; this log
// only feeds admin stats and debugging.
type MessageLog struct {
	ID                string    `db:"id" json:"id"`
	UserID            string    `db:"user_id" json:"userId"`
	Direction         Direction `db:"direction" json:"direction"`
	Body              string    `db:"body" json:"body"`
	ProviderMessageID *string   `db:"provider_message_id" json:"providerMessageId,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

type CreateMessageLogParams struct {
	UserID            string
	Direction         Direction
	Body              string
	ProviderMessageID *string
}
