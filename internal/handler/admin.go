package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/myaifactchecker/whatsapp-relay-go/internal/errors"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/httputil"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/model"
	"github.com/myaifactchecker/whatsapp-relay-go/internal/repository"
)

type AdminHandler struct {
	messageLog repository.MessageLogRepository
	feedback   repository.FeedbackRepository
	auth       func(http.Handler) http.Handler
}

func NewAdminHandler(
	messageLog repository.MessageLogRepository,
	feedback repository.FeedbackRepository,
	auth func(http.Handler) http.Handler,
) *AdminHandler {
	return &AdminHandler{
		messageLog: messageLog,
		feedback:   feedback,
		auth:       auth,
	}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.auth)
	r.Get("/stats", h.Stats)
	return r
}

type statsResponse struct {
	Messages struct {
		Inbound struct {
			Today int `json:"today"`
			Total int `json:"total"`
		} `json:"inbound"`
		Outbound struct {
			Today int `json:"today"`
			Total int `json:"total"`
		} `json:"outbound"`
	} `json:"messages"`
	Feedback struct {
		Positive int `json:"positive"`
		Negative int `json:"negative"`
	} `json:"feedback"`
}

// Stats returns message traffic counts and feedback sentiment tallies.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var stats statsResponse

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var err error
	if stats.Messages.Inbound.Total, err = h.messageLog.CountByDirection(ctx, model.DirectionIncoming); err != nil {
		h.statsError(w, err)
		return
	}
	if stats.Messages.Inbound.Today, err = h.messageLog.CountByDirectionSince(ctx, model.DirectionIncoming, todayStart); err != nil {
		h.statsError(w, err)
		return
	}
	if stats.Messages.Outbound.Total, err = h.messageLog.CountByDirection(ctx, model.DirectionOutgoing); err != nil {
		h.statsError(w, err)
		return
	}
	if stats.Messages.Outbound.Today, err = h.messageLog.CountByDirectionSince(ctx, model.DirectionOutgoing, todayStart); err != nil {
		h.statsError(w, err)
		return
	}
	if stats.Feedback.Positive, err = h.feedback.CountBySentiment(ctx, model.SentimentPositive); err != nil {
		h.statsError(w, err)
		return
	}
	if stats.Feedback.Negative, err = h.feedback.CountBySentiment(ctx, model.SentimentNegative); err != nil {
		h.statsError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) statsError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("failed to load stats")
	httputil.WriteError(w, apperrors.Database(err))
}
