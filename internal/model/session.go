package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Session is the persisted conversational state for one user identity.
// It is owned by the session repository; the conversation service works
// on a loaded copy and persists it once at the end of a turn.
type Session struct {
	UserID                string         `json:"userId"`
	State                 SessionState   `json:"state"`
	CreatedAt             time.Time      `json:"createdAt"`
	LastActivity          time.Time      `json:"lastActivity"`
	History               []HistoryEntry `json:"conversationHistory"`
	LastOutboundMessageID *string        `json:"lastOutboundMessageId,omitempty"`
	IsFirstTurn           bool           `json:"isFirstTurn"`
	Locale                string         `json:"locale,omitempty"`
}

type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Direction Direction `json:"direction"`
	Text      string    `json:"text"`
	MessageID *string   `json:"messageId,omitempty"`
}

func NewSession(userID, locale string, now time.Time) *Session {
	return &Session{
		UserID:       userID,
		State:        StateNew,
		CreatedAt:    now,
		LastActivity: now,
		IsFirstTurn:  true,
		Locale:       locale,
	}
}

// Expired reports whether the session's inactivity window has elapsed.
// Expiry is lazy: it is checked on read, never actively swept.
func (s *Session) Expired(now time.Time, window time.Duration) bool {
	return now.Sub(s.LastActivity) > window
}

func (s *Session) AppendIncoming(now time.Time, text string) {
	s.History = append(s.History, HistoryEntry{
		Timestamp: now,
		Direction: DirectionIncoming,
		Text:      text,
	})
}

func (s *Session) AppendOutgoing(now time.Time, text string, messageID *string) {
	s.History = append(s.History, HistoryEntry{
		Timestamp: now,
		Direction: DirectionOutgoing,
		Text:      text,
		MessageID: messageID,
	})
}

func (s *Session) Touch(now time.Time) {
	s.LastActivity = now
}

// EncodeSession serializes a session for the keyed store. Timestamps are
// normalized to RFC3339 by the JSON encoding of time.Time.
func EncodeSession(s *Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// DecodeSession parses a stored session record. It uses a strict structured
// parser only; any malformed or partially-written record is an error, which
// callers treat as "absent".
func DecodeSession(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.UserID == "" {
		return nil, fmt.Errorf("decode session: missing user id")
	}
	return &s, nil
}
