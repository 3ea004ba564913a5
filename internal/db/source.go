// Package db defines the data-source contract the viewer talks to.
//
// Implementations live in internal/db/connection; result scanning lives in
// internal/db/query and catalog lookups in internal/db/metadata.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rebeliceyang/lazylite/internal/models"
)

// Source is a connected database the viewer can browse.
// Calls are made serially from the UI loop.
type Source interface {
	// ListTables returns the user tables in a stable order.
	ListTables(ctx context.Context) ([]string, error)

	// Query runs sql and returns every row with its column names.
	Query(ctx context.Context, sql string) (*models.ResultSet, error)

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, sql string) error

	// Close releases the connection.
	Close() error
}

// ErrEmptyStatement is returned for a statement with no SQL in it
var ErrEmptyStatement = errors.New("empty statement")

// CheckStatement rejects blank SQL before it reaches a driver.
// Some drivers never return from an empty statement.
func CheckStatement(op, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return &Error{Op: op, SQL: sql, Err: ErrEmptyStatement}
	}
	return nil
}

// Error is returned for any failed data-source call
type Error struct {
	Op  string // "list tables", "query", "exec", "connect"
	SQL string
	Err error
}

func (e *Error) Error() string {
	if e.SQL == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.SQL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SelectAll returns the query used to materialize a table tab
func SelectAll(table string) string {
	return fmt.Sprintf("SELECT * FROM %s", QuoteIdent(table))
}

// QuoteIdent quotes an identifier for both SQLite and PostgreSQL
func QuoteIdent(name string) string {
	out := make([]byte, 0, len(name)+2)
	out = append(out, '"')
	for i := 0; i < len(name); i++ {
		if name[i] == '"' {
			out = append(out, '"')
		}
		out = append(out, name[i])
	}
	out = append(out, '"')
	return string(out)
}
