package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one submitted command
type Entry struct {
	ID           uuid.UUID
	Target       string // database the command ran against
	Kind         string // "exec" or "query"
	Query        string
	ExecutedAt   time.Time
	Duration     time.Duration
	Success      bool
	ErrorMessage string
}

// Store manages query history persistence
type Store struct {
	db         *sql.DB
	maxEntries int
}

// NewStore opens (creating if needed) the history database at path.
// maxEntries <= 0 keeps everything.
func NewStore(path string, maxEntries int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	s, err := NewStoreWithDB(db, maxEntries)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewStoreWithDB uses an already opened database, creating the schema
func NewStoreWithDB(db *sql.DB, maxEntries int) (*Store, error) {
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Add records an entry and prunes the oldest ones beyond the limit
func (s *Store) Add(ctx context.Context, entry Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.ExecutedAt.IsZero() {
		entry.ExecutedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO query_history
		(id, target, kind, query, executed_at, duration_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID.String(),
		entry.Target,
		entry.Kind,
		entry.Query,
		entry.ExecutedAt.UnixNano(),
		entry.Duration.Milliseconds(),
		entry.Success,
		entry.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to add history entry: %w", err)
	}

	if s.maxEntries <= 0 {
		return nil
	}

	_, err = s.db.ExecContext(ctx, `
		DELETE FROM query_history
		WHERE id NOT IN (
			SELECT id FROM query_history
			ORDER BY executed_at DESC
			LIMIT ?
		)`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// GetRecent retrieves the most recent entries, newest first
func (s *Store) GetRecent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, target, kind, query, executed_at, duration_ms, success, error_message
		FROM query_history
		ORDER BY executed_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// Search retrieves entries whose text contains query, newest first
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, target, kind, query, executed_at, duration_ms, success, error_message
		FROM query_history
		WHERE query LIKE ?
		ORDER BY executed_at DESC
		LIMIT ?`, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var id string
		var executedAt, durationMs int64

		err := rows.Scan(
			&id,
			&e.Target,
			&e.Kind,
			&e.Query,
			&executedAt,
			&durationMs,
			&e.Success,
			&e.ErrorMessage,
		)
		if err != nil {
			return nil, err
		}

		e.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid history id %q: %w", id, err)
		}
		e.ExecutedAt = time.Unix(0, executedAt)
		e.Duration = time.Duration(durationMs) * time.Millisecond

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
