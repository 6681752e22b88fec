package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ardevpk/dub/internal/email/templates"
	"github.com/ardevpk/dub/internal/logger"
	"github.com/ardevpk/dub/internal/middleware"
	"github.com/ardevpk/dub/internal/model"
	"github.com/ardevpk/dub/internal/service"
)

const defaultListLimit = 50

type NotificationService interface {
	PreviewLinksImportErrors(props templates.LinksImportErrorsProps) (service.RenderedEmail, error)
	NotifyLinksImportErrors(ctx context.Context, req model.LinksImportErrorsRequest) (model.Message, error)
	GetMessage(ctx context.Context, id string) (model.Message, error)
	ListMessages(ctx context.Context, limit int) ([]model.Message, error)
}

type DBPinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	notificationService NotificationService
	dbPinger            DBPinger
	authMiddleware      *middleware.AuthMiddleware
}

// NewHandler wires the HTTP API. authMiddleware may be nil, which leaves the
// send endpoints unprotected.
func NewHandler(notificationService NotificationService, dbPinger DBPinger, authMiddleware *middleware.AuthMiddleware) *Handler {
	return &Handler{
		notificationService: notificationService,
		dbPinger:            dbPinger,
		authMiddleware:      authMiddleware,
	}
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(logger.RequestLogger)

	r.Use(middleware.GzipReader)
	r.Use(middleware.GzipMiddleware)

	r.Get("/preview/links-import-errors", h.handlePreviewLinksImportErrors)
	r.Get("/ping", h.handlePing)

	r.Route("/api/emails", func(r chi.Router) {
		if h.authMiddleware != nil {
			r.Use(h.authMiddleware.RequireAuth)
		}
		r.Post("/links-import-errors", h.handleSendLinksImportErrors)
		r.Get("/", h.handleListMessages)
		r.Get("/{id}", h.handleGetMessage)
	})

	return r
}

func (h *Handler) handlePreviewLinksImportErrors(w http.ResponseWriter, r *http.Request) {
	rendered, err := h.notificationService.PreviewLinksImportErrors(templates.DefaultLinksImportErrorsProps())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(rendered.HTML))
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(rendered.Text))
	case "json":
		writeJSON(w, http.StatusOK, PreviewResponse{
			Subject:  rendered.Subject,
			Document: rendered.Document,
		})
	default:
		writeError(w, http.StatusBadRequest, "unsupported format")
	}
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	messages, err := h.notificationService.ListMessages(r.Context(), limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	summaries := make([]MessageSummary, 0, len(messages))
	for _, msg := range messages {
		summaries = append(summaries, newMessageSummary(msg))
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	if h.dbPinger == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	err := h.dbPinger.Ping(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
