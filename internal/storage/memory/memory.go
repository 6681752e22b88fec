package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ardevpk/dub/internal/model"
	"github.com/ardevpk/dub/internal/storage"
)

// Storage implements an in-memory outbox for testing and development.
type Storage struct {
	messages map[string]model.Message
	mutex    sync.RWMutex
}

// NewStorage creates a new in-memory storage instance.
func NewStorage() *Storage {
	return &Storage{
		messages: make(map[string]model.Message),
	}
}

// Save stores a new message. IDs must be unique.
func (s *Storage) Save(ctx context.Context, msg model.Message) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.messages[msg.ID]; exists {
		return storage.ErrMessageExists
	}

	s.messages[msg.ID] = msg
	return nil
}

// Get retrieves a message by ID.
func (s *Storage) Get(ctx context.Context, id string) (model.Message, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	msg, found := s.messages[id]
	if !found {
		return model.Message{}, storage.ErrMessageNotFound
	}

	return msg, nil
}

// List returns up to limit messages, newest first.
func (s *Storage) List(ctx context.Context, limit int) ([]model.Message, error) {
	s.mutex.RLock()
	result := make([]model.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		result = append(result, msg)
	}
	s.mutex.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

// UpdateStatus records the delivery outcome of a message.
func (s *Storage) UpdateStatus(ctx context.Context, id string, status model.MessageStatus, sentAt *time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	msg, found := s.messages[id]
	if !found {
		return storage.ErrMessageNotFound
	}

	msg.Status = status
	msg.SentAt = sentAt
	s.messages[id] = msg
	return nil
}
