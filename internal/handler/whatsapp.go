package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/service"
)

// TurnHandler runs one conversation turn and reports what was sent.
type TurnHandler interface {
	HandleTurn(ctx context.Context, in service.TurnInput) (*service.TurnResult, error)
}

type WhatsAppHandler struct {
	conversation TurnHandler
}

func NewWhatsAppHandler(conversation TurnHandler) *WhatsAppHandler {
	return &WhatsAppHandler{conversation: conversation}
}

// Webhook receives an inbound Twilio WhatsApp message and replies through
// the Twilio REST API. Provider and persistence failures never fail the
// turn; the only error status exposed here is a transport-send failure.
func (h *WhatsAppHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Warn().Err(err).Msg("invalid whatsapp webhook request")
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	userID := r.FormValue("From")
	body := r.FormValue("Body")
	buttonPayload := r.FormValue("ButtonPayload")

	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": "Missing sender",
		})
		return
	}

	log.Info().
		Str("from", userID).
		Str("body", truncate(body, 50)).
		Bool("hasButtonPayload", buttonPayload != "").
		Msg("received whatsapp webhook")

	result, err := h.conversation.HandleTurn(r.Context(), service.TurnInput{
		UserID:        userID,
		Text:          body,
		ButtonPayload: buttonPayload,
		Now:           time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("from", userID).Msg("turn failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"message_sid": result.MessageID,
	})
}

// StatusCallback receives Twilio delivery-status updates. They are logged
// for operations and otherwise ignored.
func (h *WhatsAppHandler) StatusCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	log.Info().
		Str("messageSid", r.FormValue("MessageSid")).
		Str("messageStatus", r.FormValue("MessageStatus")).
		Msg("message status update")

	w.WriteHeader(http.StatusNoContent)
}
