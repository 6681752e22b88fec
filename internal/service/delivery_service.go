package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ardevpk/dub/internal/model"
	"github.com/ardevpk/dub/internal/storage"
)

// DeliveryService moves outbox messages to a Sender and records the outcome.
type DeliveryService struct {
	storage storage.MessageStorage
	sender  Sender
	now     func() time.Time
}

func NewDeliveryService(storage storage.MessageStorage, sender Sender) *DeliveryService {
	return &DeliveryService{
		storage: storage,
		sender:  sender,
		now:     time.Now,
	}
}

// DeliverMessages sends every pending message among messageIDs. Failures are
// recorded on the message and joined into the returned error.
func (s *DeliveryService) DeliverMessages(ctx context.Context, messageIDs []string) error {
	var errs []error

	for _, id := range messageIDs {
		if err := s.deliver(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *DeliveryService) deliver(ctx context.Context, id string) error {
	msg, err := s.storage.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("error loading message %s: %w", id, err)
	}

	if msg.Status == model.MessageStatusSent {
		log.Debug().Str("messageID", id).Msg("Message already sent, skipping")
		return nil
	}

	if sendErr := s.sender.Send(ctx, msg); sendErr != nil {
		if err := s.storage.UpdateStatus(ctx, id, model.MessageStatusFailed, nil); err != nil {
			log.Error().Err(err).Str("messageID", id).Msg("Failed to record delivery failure")
		}
		return fmt.Errorf("error sending message %s: %w", id, sendErr)
	}

	sentAt := s.now().UTC()
	if err := s.storage.UpdateStatus(ctx, id, model.MessageStatusSent, &sentAt); err != nil {
		return fmt.Errorf("error marking message %s as sent: %w", id, err)
	}

	return nil
}
