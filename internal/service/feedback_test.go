package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/model"
)

func TestFeedbackResolve(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := NewFeedbackService(&stubFeedbackRepo{})

	t.Run("binds when a correlation target exists", func(t *testing.T) {
		target := "SM100"
		session := model.NewSession("user-1", "en", now)
		session.LastOutboundMessageID = &target

		assert.True(t, svc.Resolve(model.InputFeedbackPositive, session))
		assert.True(t, svc.Resolve(model.InputFeedbackNegative, session))
	})

	t.Run("does not bind without a target", func(t *testing.T) {
		session := model.NewSession("user-1", "en", now)

		assert.False(t, svc.Resolve(model.InputFeedbackPositive, session))
	})

	t.Run("non-feedback kinds never bind", func(t *testing.T) {
		target := "SM100"
		session := model.NewSession("user-1", "en", now)
		session.LastOutboundMessageID = &target

		assert.False(t, svc.Resolve(model.InputClaim, session))
		assert.False(t, svc.Resolve(model.InputEmpty, session))
	})
}

func TestFeedbackRecord(t *testing.T) {
	repo := &stubFeedbackRepo{}
	svc := NewFeedbackService(repo)

	svc.Record(context.Background(), "SM100", "user-1", model.SentimentNegative)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "SM100", repo.created[0].MessageID)
	assert.Equal(t, "user-1", repo.created[0].UserID)
	assert.Equal(t, model.SentimentNegative, repo.created[0].Sentiment)
}
