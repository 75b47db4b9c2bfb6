package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/itimpact/spendx/internal/config"
	"github.com/itimpact/spendx/internal/logger"
)

// Querier is the part of *sql.DB the services depend on.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// TxBeginner is implemented by *sql.DB; used by write paths that need a transaction.
type TxBeginner interface {
	Querier
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var _ TxBeginner = (*sql.DB)(nil)

// Open creates the connection pool with the settings from cfg. It does not
// wait for the server; see MigrationRunner.WaitForDatabase.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	logger.Get().Infow("database pool opened",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Name,
	)
	return conn, nil
}

// Close closes conn, logging instead of returning the error.
func Close(conn *sql.DB) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		logger.Get().Warnw("database close failed", "error", err)
		return
	}
	logger.Get().Info("database connection closed")
}
