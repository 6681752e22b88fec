// Package storage defines the outbox that keeps rendered emails until delivery.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ardevpk/dub/internal/model"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrMessageExists   = errors.New("message already exists")
)

// MessageStorage persists outbox messages.
type MessageStorage interface {
	Save(ctx context.Context, msg model.Message) error
	Get(ctx context.Context, id string) (model.Message, error)
	// List returns up to limit messages, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]model.Message, error)
	UpdateStatus(ctx context.Context, id string, status model.MessageStatus, sentAt *time.Time) error
}
