package connection

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rebeliceyang/lazylite/internal/db"
	"github.com/rebeliceyang/lazylite/internal/db/metadata"
	"github.com/rebeliceyang/lazylite/internal/db/query"
	"github.com/rebeliceyang/lazylite/internal/models"
)

// SQLite is a data source backed by a single SQLite file
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens an existing SQLite database file
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &db.Error{Op: "connect", Err: fmt.Errorf("failed to open %s: %w", path, err)}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &db.Error{Op: "connect", Err: err}
	}

	// One connection keeps temp tables and pragmas visible to every call
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, &db.Error{Op: "connect", Err: fmt.Errorf("failed to ping database: %w", err)}
	}

	return NewSQLite(conn), nil
}

// NewSQLite wraps an already opened database handle
func NewSQLite(conn *sql.DB) *SQLite {
	return &SQLite{db: conn}
}

// ListTables implements db.Source
func (s *SQLite) ListTables(ctx context.Context) ([]string, error) {
	tables, err := metadata.ListSQLiteTables(ctx, s.db)
	if err != nil {
		return nil, &db.Error{Op: "list tables", Err: err}
	}
	return tables, nil
}

// Query implements db.Source
func (s *SQLite) Query(ctx context.Context, sql string) (*models.ResultSet, error) {
	if err := db.CheckStatement("query", sql); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, sql)
	if err != nil {
		return nil, &db.Error{Op: "query", SQL: sql, Err: err}
	}
	defer func() { _ = rows.Close() }()

	rs, err := query.Collect(rows)
	if err != nil {
		return nil, &db.Error{Op: "query", SQL: sql, Err: err}
	}
	return rs, nil
}

// Exec implements db.Source
func (s *SQLite) Exec(ctx context.Context, sql string) error {
	if err := db.CheckStatement("exec", sql); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, sql); err != nil {
		return &db.Error{Op: "exec", SQL: sql, Err: err}
	}
	return nil
}

// Close implements db.Source
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
