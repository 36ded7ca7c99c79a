package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/model"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/repository"
)

const FeedbackAck = "Thank you for your feedback! 🙏"

// FeedbackService records thumbs-up/down responses against the outbound
// message they rate. Ratings are advisory telemetry: duplicates are
// accepted and storage failures never surface to the user.
type FeedbackService struct {
	repo repository.FeedbackRepository
}

func NewFeedbackService(repo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// Resolve reports whether an inbound message is a rating response for the
// session. Feedback only binds while a correlation target exists.
func (s *FeedbackService) Resolve(kind model.InputKind, session *model.Session) bool {
	if kind != model.InputFeedbackPositive && kind != model.InputFeedbackNegative {
		return false
	}
	return session.LastOutboundMessageID != nil
}

func (s *FeedbackService) Record(ctx context.Context, messageID, userID string, sentiment model.Sentiment) {
	rec, err := s.repo.Create(ctx, model.CreateFeedbackParams{
		MessageID: messageID,
		UserID:    userID,
		Sentiment: sentiment,
	})
	if err != nil {
		log.Error().Err(err).Str("messageId", messageID).Msg("failed to record feedback")
		return
	}

	log.Info().
		Str("feedbackId", rec.ID).
		Str("messageId", messageID).
		Str("sentiment", string(sentiment)).
		Msg("feedback recorded")
}
