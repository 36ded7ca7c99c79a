package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/myaifactchecker/whatsapp-relay-go/internal/errors"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/model"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/pipeline"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/repository"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/transport"
)

const maxCitedSources = 2

const emptyInputPrompt = "I didn't catch that. Send me a claim you'd like fact-checked."

// ClaimVerifier is the provider-fallback pipeline boundary.
type ClaimVerifier interface {
	Verify(ctx context.Context, claim string) pipeline.Verdict
}

type TurnInput struct {
	UserID        string
	Text          string
	ButtonPayload string
	Now           time.Time
}

type TurnResult struct {
	// MessageID is the id of the last message delivered this turn.
	MessageID string
	Sent      []transport.Sent
}

// ConversationService is the conversation state machine: given the current
// session and one inbound message it decides the outbound send plan,
// executes it, and persists the updated session exactly once per turn.
type ConversationService struct {
	sessions   *SessionService
	feedback   *FeedbackService
	verifier   ClaimVerifier
	dispatcher *transport.Dispatcher
	messageLog repository.MessageLogRepository
}

func NewConversationService(
	sessions *SessionService,
	feedback *FeedbackService,
	verifier ClaimVerifier,
	dispatcher *transport.Dispatcher,
	messageLog repository.MessageLogRepository,
) *ConversationService {
	return &ConversationService{
		sessions:   sessions,
		feedback:   feedback,
		verifier:   verifier,
		dispatcher: dispatcher,
		messageLog: messageLog,
	}
}

// HandleTurn runs one inbound-message-to-outbound-reply cycle. Provider and
// persistence failures degrade the reply but never fail the turn; the only
// error returned is a transport-send failure, and even then the session is
// persisted with whatever was composed so the next turn can proceed.
func (s *ConversationService) HandleTurn(ctx context.Context, in TurnInput) (*TurnResult, error) {
	session := s.sessions.LoadOrCreate(ctx, in.UserID, in.Now)
	input := Classify(in.Text, in.ButtonPayload)

	log.Info().
		Str("userId", in.UserID).
		Str("kind", string(input.Kind)).
		Str("state", string(session.State)).
		Bool("firstTurn", session.IsFirstTurn).
		Msg("handling turn")

	plan := s.buildPlan(ctx, session, input, in.Now)

	session.AppendIncoming(in.Now, in.Text)
	s.logMessage(ctx, in.UserID, model.DirectionIncoming, in.Text, nil)

	sent, sendErr := s.dispatcher.Dispatch(ctx, in.UserID, plan)

	for _, m := range sent {
		id := m.MessageID
		session.AppendOutgoing(in.Now, m.Body, &id)
		if m.FeedbackEligible {
			session.LastOutboundMessageID = &id
		}
		s.logMessage(ctx, in.UserID, model.DirectionOutgoing, m.Body, &id)
	}

	session.Touch(in.Now)
	s.sessions.Save(ctx, session)

	result := &TurnResult{Sent: sent}
	if len(sent) > 0 {
		result.MessageID = sent[len(sent)-1].MessageID
	}

	if sendErr != nil {
		return result, apperrors.SendFailed(sendErr)
	}
	return result, nil
}

// buildPlan evaluates the transition rules in priority order and mutates
// the session's state fields. History and activity updates happen in
// HandleTurn after dispatch, once message ids are known.
func (s *ConversationService) buildPlan(ctx context.Context, session *model.Session, input Input, now time.Time) []transport.Outbound {
	// Feedback interception takes precedence over everything, including
	// the first-turn welcome, and advances no other state.
	if s.feedback.Resolve(input.Kind, session) {
		sentiment := model.SentimentPositive
		if input.Kind == model.InputFeedbackNegative {
			sentiment = model.SentimentNegative
		}
		s.feedback.Record(ctx, *session.LastOutboundMessageID, session.UserID, sentiment)
		return []transport.Outbound{{Body: FeedbackAck}}
	}

	switch input.Kind {
	case model.InputFeedbackPositive, model.InputFeedbackNegative:
		// Feedback with nothing to bind to reads as ordinary input; fall
		// through to claim handling with the raw emoji as small talk.
		return s.claimPlan(ctx, session, input.Claim, now)

	case model.InputLanguageSelect:
		session.Locale = input.LanguageCode
		return []transport.Outbound{{
			Body: fmt.Sprintf("Language preference saved: %s. Send me a claim to fact-check!", input.LanguageCode),
		}}

	case model.InputEmpty:
		return []transport.Outbound{{Body: emptyInputPrompt}}

	default:
		return s.claimPlan(ctx, session, input.Claim, now)
	}
}

func (s *ConversationService) claimPlan(ctx context.Context, session *model.Session, claim string, now time.Time) []transport.Outbound {
	var plan []transport.Outbound

	// The welcome is additive: the same turn still answers the claim.
	if session.IsFirstTurn {
		plan = append(plan, transport.Outbound{Body: WelcomeMessage(now)})
		session.IsFirstTurn = false
		session.State = model.StateWelcomed
	}

	var reply string
	if pipeline.IsSmallTalk(claim) {
		reply = pipeline.SmallTalkReply(claim)
	} else {
		verdict := s.verifier.Verify(ctx, claim)
		reply = composeReply(verdict)
	}

	plan = append(plan, transport.Outbound{Body: reply, FeedbackEligible: true})

	if ShouldPromptRating(claim, reply) {
		plan = append(plan, transport.Outbound{Body: RatingPrompt, FeedbackEligible: true})
	}

	session.State = model.StateAwaitingInput
	return plan
}

func composeReply(verdict pipeline.Verdict) string {
	if len(verdict.Sources) == 0 {
		return verdict.Text
	}

	var b strings.Builder
	b.WriteString(verdict.Text)
	b.WriteString("\n\nSources:")
	for i, src := range verdict.Sources {
		if i >= maxCitedSources {
			break
		}
		fmt.Fprintf(&b, "\n%d. %s", i+1, src)
	}
	return b.String()
}

// logMessage records traffic for admin stats. Best effort only.
func (s *ConversationService) logMessage(ctx context.Context, userID string, direction model.Direction, body string, providerMessageID *string) {
	if s.messageLog == nil {
		return
	}
	if _, err := s.messageLog.Create(ctx, model.CreateMessageLogParams{
		UserID:            userID,
		Direction:         direction,
		Body:              body,
		ProviderMessageID: providerMessageID,
	}); err != nil {
		log.Warn().Err(err).Str("userId", userID).Msg("failed to write message log")
	}
}
