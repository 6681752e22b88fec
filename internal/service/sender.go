package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ardevpk/dub/internal/model"
)

// Sender hands a rendered message to a delivery transport.
type Sender interface {
	Send(ctx context.Context, msg model.Message) error
}

// LogSender writes messages to the application log instead of delivering them.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg model.Message) error {
	log.Info().
		Str("messageID", msg.ID).
		Str("from", msg.From).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("htmlSize", len(msg.HTML)).
		Int("textSize", len(msg.Text)).
		Msg("Email delivered to log")
	return nil
}
