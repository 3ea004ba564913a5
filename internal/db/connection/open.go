package connection

import (
	"context"
	"strings"

	"github.com/rebeliceyang/lazylite/internal/db"
)

// Open connects to target, a postgres:// URL or a SQLite file path
func Open(ctx context.Context, target string) (db.Source, error) {
	if IsPostgres(target) {
		return OpenPostgres(ctx, target)
	}
	return OpenSQLite(ctx, target)
}

// IsPostgres reports whether target names a PostgreSQL server
func IsPostgres(target string) bool {
	return strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://")
}
