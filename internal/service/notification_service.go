package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ardevpk/dub/internal/email"
	"github.com/ardevpk/dub/internal/email/render"
	"github.com/ardevpk/dub/internal/email/templates"
	"github.com/ardevpk/dub/internal/generator"
	"github.com/ardevpk/dub/internal/model"
	"github.com/ardevpk/dub/internal/storage"
)

// ErrMissingField is returned when a required request field is empty.
var ErrMissingField = errors.New("missing required field")

// Dispatcher queues stored messages for delivery.
type Dispatcher interface {
	Submit(messageID string) error
}

// RenderedEmail is a composed email in all of its output forms.
type RenderedEmail struct {
	Subject  string
	HTML     string
	Text     string
	Document *email.Node
}

// NotificationService renders import notifications and places them in the outbox.
type NotificationService struct {
	storage    storage.MessageStorage
	dispatcher Dispatcher
	from       string
	now        func() time.Time
}

// NewNotificationService constructs a NotificationService. dispatcher may be nil,
// in which case messages stay pending in the outbox.
func NewNotificationService(storage storage.MessageStorage, dispatcher Dispatcher, from string) *NotificationService {
	return &NotificationService{
		storage:    storage,
		dispatcher: dispatcher,
		from:       from,
		now:        time.Now,
	}
}

// LinksImportErrorsProps validates a request and converts it into template props.
func LinksImportErrorsProps(req model.LinksImportErrorsRequest) (templates.LinksImportErrorsProps, error) {
	provider, err := templates.ParseProvider(req.Provider)
	if err != nil {
		return templates.LinksImportErrorsProps{}, err
	}

	var missing []string
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if req.WorkspaceName == "" {
		missing = append(missing, "workspaceName")
	}
	if req.WorkspaceSlug == "" {
		missing = append(missing, "workspaceSlug")
	}
	if len(missing) > 0 {
		return templates.LinksImportErrorsProps{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	errorLinks := req.ErrorLinks
	if errorLinks == nil {
		errorLinks = []model.ImportErrorLink{}
	}

	return templates.LinksImportErrorsProps{
		Email:         req.Email,
		Provider:      provider,
		ErrorLinks:    errorLinks,
		WorkspaceName: req.WorkspaceName,
		WorkspaceSlug: req.WorkspaceSlug,
	}, nil
}

// PreviewLinksImportErrors renders the email without storing it.
func (s *NotificationService) PreviewLinksImportErrors(props templates.LinksImportErrorsProps) (RenderedEmail, error) {
	doc := templates.LinksImportErrors(props)

	html, err := render.HTML(doc)
	if err != nil {
		return RenderedEmail{}, err
	}

	provider := props.Provider
	if provider == "" {
		provider = templates.ProviderCSV
	}

	return RenderedEmail{
		Subject:  templates.LinksImportErrorsSubject(provider),
		HTML:     html,
		Text:     render.PlainText(doc),
		Document: doc,
	}, nil
}

// NotifyLinksImportErrors renders the links import errors email for req,
// stores it in the outbox and queues it for delivery. If the message was
// stored but could not be queued, it is returned together with the error.
func (s *NotificationService) NotifyLinksImportErrors(ctx context.Context, req model.LinksImportErrorsRequest) (model.Message, error) {
	props, err := LinksImportErrorsProps(req)
	if err != nil {
		return model.Message{}, err
	}

	rendered, err := s.PreviewLinksImportErrors(props)
	if err != nil {
		return model.Message{}, fmt.Errorf("error rendering email: %w", err)
	}

	msg, err := s.enqueue(ctx, props.Email, rendered)
	if err != nil {
		return msg, err
	}

	log.Info().
		Str("messageID", msg.ID).
		Str("provider", props.Provider.String()).
		Str("workspace", props.WorkspaceSlug).
		Int("errorLinks", len(props.ErrorLinks)).
		Msg("Links import errors email queued")

	return msg, nil
}

func (s *NotificationService) enqueue(ctx context.Context, to string, rendered RenderedEmail) (model.Message, error) {
	id, err := generator.MessageID()
	if err != nil {
		return model.Message{}, fmt.Errorf("error generating message ID: %w", err)
	}

	msg := model.Message{
		ID:        id,
		From:      s.from,
		To:        to,
		Subject:   rendered.Subject,
		HTML:      rendered.HTML,
		Text:      rendered.Text,
		Status:    model.MessageStatusPending,
		CreatedAt: s.now().UTC(),
	}

	if err := s.storage.Save(ctx, msg); err != nil {
		return model.Message{}, fmt.Errorf("error saving message: %w", err)
	}

	if s.dispatcher == nil {
		log.Warn().Str("messageID", msg.ID).Msg("No dispatcher configured, message left pending")
		return msg, nil
	}

	if err := s.dispatcher.Submit(msg.ID); err != nil {
		return msg, fmt.Errorf("error queueing message %s: %w", msg.ID, err)
	}

	return msg, nil
}

// GetMessage returns a stored outbox message.
func (s *NotificationService) GetMessage(ctx context.Context, id string) (model.Message, error) {
	return s.storage.Get(ctx, id)
}

// ListMessages returns the most recent outbox messages.
func (s *NotificationService) ListMessages(ctx context.Context, limit int) ([]model.Message, error) {
	messages, err := s.storage.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	return messages, nil
}
