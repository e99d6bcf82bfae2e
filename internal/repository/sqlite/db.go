// Package sqlite implements the account and ride repositories on an embedded
// SQLite database (modernc.org/sqlite, no cgo). It is the durable backend for
// single-node deployments and local development.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"ridehail/internal/repository"
	"ridehail/internal/repository/migrations"
)

// Pragmas are applied to every pooled connection through the DSN. foreign_keys
// in particular is per-connection in SQLite.
const pragmas = "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// Connect opens (creating if needed) the database file at path and verifies
// it with a ping. The schema is not touched; see Migrate.
func Connect(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+pragmas)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// Migrate applies pending schema migrations.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	return migrations.Up(ctx, db, migrations.SQLite, logger)
}

// DBTX is implemented by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// mapError translates driver errors into repository errors; anything it does
// not recognise is returned unchanged.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	// Extended codes carry the primary code in the low byte.
	if sqliteErr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return err
	}

	msg := sqliteErr.Error()
	switch {
	case strings.Contains(msg, "accounts.email"):
		return repository.ErrEmailExists
	case strings.Contains(msg, "rides.passenger_id"):
		return repository.ErrOutstandingRide
	case strings.Contains(msg, "FOREIGN KEY"):
		return repository.ErrAccountNotFound
	case strings.Contains(msg, "UNIQUE") || strings.Contains(msg, "PRIMARY KEY"):
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, msg)
	}
	return err
}
