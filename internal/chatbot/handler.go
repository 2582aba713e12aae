package chatbot

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type chatRequest struct {
	Prompt string `json:"prompt"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// HandleChatbot — POST /chatbot. Every outcome carries its text in
// "response" so the widget can show it as the bot's answer.
func (h *Handler) HandleChatbot(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	// a malformed body counts as an empty prompt
	_ = json.NewDecoder(r.Body).Decode(&payload)

	answer, err := h.svc.Answer(r.Context(), payload.Prompt)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, answer)
	case errors.Is(err, ErrEmptyPrompt):
		writeJSON(w, http.StatusBadRequest, msgEmptyPrompt)
	case errors.Is(err, ErrMissingToken):
		writeJSON(w, http.StatusInternalServerError, msgMissingToken)
	default:
		log.Error().Err(err).Str("component", "chatbot").Msg("answer failed")
		writeJSON(w, http.StatusInternalServerError, fmt.Sprintf(msgModelErrorFmt, errors.Cause(err)))
	}
}

func writeJSON(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(chatResponse{Response: text}); err != nil {
		log.Warn().Err(err).Str("component", "chatbot").Msg("write response failed")
	}
}
