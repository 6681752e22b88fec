package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ardevpk/dub/internal/model"
	"github.com/ardevpk/dub/internal/storage"
)

const maxRecordSize = 4 << 20

type recordOp string

const (
	opSave   recordOp = "save"
	opStatus recordOp = "status"
)

// record is one line of the outbox journal.
type record struct {
	Op      recordOp            `json:"op"`
	Message *model.Message      `json:"message,omitempty"`
	ID      string              `json:"id,omitempty"`
	Status  model.MessageStatus `json:"status,omitempty"`
	SentAt  *time.Time          `json:"sent_at,omitempty"`
}

// Storage implements MessageStorage backed by an append-only JSONL journal.
type Storage struct {
	filePath    string
	messages    map[string]model.Message
	mu          sync.RWMutex
	fileWriteMu sync.Mutex
}

// NewStorage opens the journal at filePath, replaying any existing records.
func NewStorage(filePath string) (*Storage, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	s := &Storage{
		filePath: filePath,
		messages: make(map[string]model.Message),
	}

	if err := s.loadFromFile(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) Save(ctx context.Context, msg model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.messages[msg.ID]; exists {
		return storage.ErrMessageExists
	}

	// journal first, then memory
	if err := s.appendRecord(record{Op: opSave, Message: &msg}); err != nil {
		return fmt.Errorf("failed to save message to file: %w", err)
	}
	s.messages[msg.ID] = msg
	return nil
}

func (s *Storage) Get(ctx context.Context, id string) (model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, found := s.messages[id]
	if !found {
		return model.Message{}, storage.ErrMessageNotFound
	}
	return msg, nil
}

func (s *Storage) List(ctx context.Context, limit int) ([]model.Message, error) {
	s.mu.RLock()
	result := make([]model.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		result = append(result, msg)
	}
	s.mu.RUnlock()

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

func (s *Storage) UpdateStatus(ctx context.Context, id string, status model.MessageStatus, sentAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, found := s.messages[id]
	if !found {
		return storage.ErrMessageNotFound
	}

	// held under mu so the journal records updates in memory order
	if err := s.appendRecord(record{Op: opStatus, ID: id, Status: status, SentAt: sentAt}); err != nil {
		return fmt.Errorf("failed to save status record: %w", err)
	}

	msg.Status = status
	msg.SentAt = sentAt
	s.messages[id] = msg
	return nil
}

func (s *Storage) loadFromFile() error {
	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open storage file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("failed to parse storage record: %w", err)
		}
		s.apply(rec)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read storage file: %w", err)
	}
	return nil
}

func (s *Storage) apply(rec record) {
	switch rec.Op {
	case opSave:
		if rec.Message != nil {
			s.messages[rec.Message.ID] = *rec.Message
		}
	case opStatus:
		if msg, ok := s.messages[rec.ID]; ok {
			msg.Status = rec.Status
			msg.SentAt = rec.SentAt
			s.messages[rec.ID] = msg
		}
	}
}

func (s *Storage) appendRecord(rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	s.fileWriteMu.Lock()
	defer s.fileWriteMu.Unlock()

	file, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
