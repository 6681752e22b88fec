package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/ardevpk/dub/internal/model"
	"github.com/ardevpk/dub/internal/storage"
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	if dsn == "" {
		return nil, errors.New("database connection string is empty")
	}

	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	s := &Storage{
		pool: pool,
	}

	if err := s.createTable(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) createTable(ctx context.Context) error {
	createTableQuery := `
		CREATE TABLE IF NOT EXISTS email_outbox (
			id VARCHAR(32) PRIMARY KEY,
			sender TEXT NOT NULL,
			recipient TEXT NOT NULL,
			subject TEXT NOT NULL,
			html TEXT NOT NULL,
			text TEXT NOT NULL,
			status VARCHAR(16) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			sent_at TIMESTAMP WITH TIME ZONE
		);
	`

	if _, err := s.pool.Exec(ctx, createTableQuery); err != nil {
		return err
	}

	createIndexQuery := `
		CREATE INDEX IF NOT EXISTS idx_email_outbox_created_at ON email_outbox(created_at DESC);
	`

	_, err := s.pool.Exec(ctx, createIndexQuery)
	return err
}

func (s *Storage) Save(ctx context.Context, msg model.Message) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO email_outbox (id, sender, recipient, subject, html, text, status, created_at, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		msg.ID, msg.From, msg.To, msg.Subject, msg.HTML, msg.Text, string(msg.Status), msg.CreatedAt, msg.SentAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return storage.ErrMessageExists
		}
		return fmt.Errorf("error inserting message into database: %w", err)
	}

	return nil
}

func (s *Storage) Get(ctx context.Context, id string) (model.Message, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, sender, recipient, subject, html, text, status, created_at, sent_at
		 FROM email_outbox WHERE id = $1`, id)

	msg, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Message{}, storage.ErrMessageNotFound
		}
		return model.Message{}, fmt.Errorf("error querying message: %w", err)
	}

	return msg, nil
}

func (s *Storage) List(ctx context.Context, limit int) ([]model.Message, error) {
	query := `SELECT id, sender, recipient, subject, html, text, status, created_at, sent_at
		FROM email_outbox ORDER BY created_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var result []model.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		result = append(result, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return result, nil
}

func (s *Storage) UpdateStatus(ctx context.Context, id string, status model.MessageStatus, sentAt *time.Time) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE email_outbox SET status = $2, sent_at = $3 WHERE id = $1",
		id, string(status), sentAt,
	)
	if err != nil {
		return fmt.Errorf("error updating message status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return storage.ErrMessageNotFound
	}

	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func scanMessage(row pgx.Row) (model.Message, error) {
	var (
		msg    model.Message
		status string
	)

	err := row.Scan(&msg.ID, &msg.From, &msg.To, &msg.Subject, &msg.HTML, &msg.Text, &status, &msg.CreatedAt, &msg.SentAt)
	if err != nil {
		return model.Message{}, err
	}

	msg.Status = model.MessageStatus(status)
	return msg, nil
}
