package connection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zalando/go-keyring"

	"github.com/rebeliceyang/lazylite/internal/db"
	"github.com/rebeliceyang/lazylite/internal/db/metadata"
	"github.com/rebeliceyang/lazylite/internal/db/query"
	"github.com/rebeliceyang/lazylite/internal/models"
)

const keyringService = "lazylite"

// Postgres is a data source backed by a pgx pool
type Postgres struct {
	pool   *pgxpool.Pool
	schema string
}

// OpenPostgres connects to the database named by connString.
// When the connection string carries no password the OS keyring is consulted.
func OpenPostgres(ctx context.Context, connString string) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, &db.Error{Op: "connect", Err: fmt.Errorf("failed to parse connection config: %w", err)}
	}

	if err := fillPassword(poolConfig.ConnConfig); err != nil {
		return nil, &db.Error{Op: "connect", Err: err}
	}

	// The viewer issues one statement at a time
	poolConfig.MaxConns = 1
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, &db.Error{Op: "connect", Err: fmt.Errorf("failed to create connection pool: %w", err)}
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &db.Error{Op: "connect", Err: fmt.Errorf("failed to ping database: %w", err)}
	}

	return &Postgres{pool: pool, schema: "public"}, nil
}

// ListTables implements db.Source
func (p *Postgres) ListTables(ctx context.Context) ([]string, error) {
	tables, err := metadata.ListPostgresTables(ctx, p.pool, p.schema)
	if err != nil {
		return nil, &db.Error{Op: "list tables", Err: err}
	}
	return tables, nil
}

// Query implements db.Source
func (p *Postgres) Query(ctx context.Context, sql string) (*models.ResultSet, error) {
	if err := db.CheckStatement("query", sql); err != nil {
		return nil, err
	}
	rs, err := query.Execute(ctx, p.pool, sql)
	if err != nil {
		return nil, &db.Error{Op: "query", SQL: sql, Err: err}
	}
	return rs, nil
}

// Exec implements db.Source
func (p *Postgres) Exec(ctx context.Context, sql string) error {
	if err := db.CheckStatement("exec", sql); err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, sql); err != nil {
		return &db.Error{Op: "exec", SQL: sql, Err: err}
	}
	return nil
}

// Close implements db.Source
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// fillPassword looks the password up in the OS keyring when none was given
func fillPassword(cfg *pgx.ConnConfig) error {
	if cfg.Password != "" {
		return nil
	}

	password, err := keyring.Get(keyringService, keyringAccount(cfg))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read password from keyring: %w", err)
	}
	cfg.Password = password
	return nil
}

// keyringAccount is the keyring user name for a connection: "user@host:port/database"
func keyringAccount(cfg *pgx.ConnConfig) string {
	return fmt.Sprintf("%s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.Database)
}
