package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ardevpk/dub/internal/email"
	"github.com/ardevpk/dub/internal/email/templates"
	"github.com/ardevpk/dub/internal/model"
	"github.com/ardevpk/dub/internal/service"
	"github.com/ardevpk/dub/internal/storage"
)

const maxRequestBody = 4 << 20

type PreviewResponse struct {
	Subject  string      `json:"subject"`
	Document *email.Node `json:"document"`
}

type SendResponse struct {
	ID     string              `json:"id"`
	Status model.MessageStatus `json:"status"`
}

type MessageSummary struct {
	ID        string              `json:"id"`
	To        string              `json:"to"`
	Subject   string              `json:"subject"`
	Status    model.MessageStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	SentAt    *time.Time          `json:"sentAt,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func newMessageSummary(msg model.Message) MessageSummary {
	return MessageSummary{
		ID:        msg.ID,
		To:        msg.To,
		Subject:   msg.Subject,
		Status:    msg.Status,
		CreatedAt: msg.CreatedAt,
		SentAt:    msg.SentAt,
	}
}

func (h *Handler) handleSendLinksImportErrors(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		writeError(w, http.StatusBadRequest, "content type must be application/json")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var request model.LinksImportErrorsRequest
	if err := json.Unmarshal(body, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	msg, err := h.notificationService.NotifyLinksImportErrors(r.Context(), request)
	if err != nil {
		if errors.Is(err, templates.ErrInvalidProvider) || errors.Is(err, service.ErrMissingField) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if msg.ID != "" {
			log.Error().Err(err).Str("messageID", msg.ID).Msg("Message stored but not queued")
			writeJSON(w, http.StatusAccepted, SendResponse{ID: msg.ID, Status: msg.Status})
			return
		}

		log.Error().Err(err).Msg("Failed to queue links import errors email")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, SendResponse{ID: msg.ID, Status: msg.Status})
}

func (h *Handler) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	msg, err := h.notificationService.GetMessage(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrMessageNotFound) {
			writeError(w, http.StatusNotFound, "message not found")
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	response, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
