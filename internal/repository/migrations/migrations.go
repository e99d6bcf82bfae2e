// Package migrations embeds the SQL schema for the durable stores and applies
// it with goose. Postgres and SQLite keep separate migration sets because
// their column types differ; both define the same tables and constraints.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

// Dialect names a supported SQL engine.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// goose keeps its dialect, base FS and logger in package globals, so every
// run holds this lock for its whole duration.
var gooseMu sync.Mutex

// FS returns the migration files for d.
func FS(d Dialect) (fs.FS, error) {
	switch d {
	case Postgres:
		return fs.Sub(embedded, "postgres")
	case SQLite:
		return fs.Sub(embedded, "sqlite")
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", d)
	}
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, d Dialect, logger *slog.Logger) error {
	return run(ctx, db, d, logger, func(ctx context.Context, db *sql.DB) error {
		return goose.UpContext(ctx, db, ".")
	})
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, d Dialect, logger *slog.Logger) error {
	return run(ctx, db, d, logger, func(ctx context.Context, db *sql.DB) error {
		return goose.DownContext(ctx, db, ".")
	})
}

// Status logs the applied/pending state of every migration.
func Status(ctx context.Context, db *sql.DB, d Dialect, logger *slog.Logger) error {
	return run(ctx, db, d, logger, func(ctx context.Context, db *sql.DB) error {
		return goose.StatusContext(ctx, db, ".")
	})
}

// Version returns the current schema version.
func Version(ctx context.Context, db *sql.DB, d Dialect, logger *slog.Logger) (int64, error) {
	var version int64
	err := run(ctx, db, d, logger, func(ctx context.Context, db *sql.DB) error {
		v, err := goose.GetDBVersionContext(ctx, db)
		version = v
		return err
	})
	return version, err
}

func run(ctx context.Context, db *sql.DB, d Dialect, logger *slog.Logger, fn func(context.Context, *sql.DB) error) error {
	fsys, err := FS(d)
	if err != nil {
		return err
	}
	if logger == nil {
		logger = slog.Default()
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{logger: logger})
	if err := goose.SetDialect(string(d)); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := fn(ctx, db); err != nil {
		return fmt.Errorf("running %s migrations: %w", d, err)
	}
	return nil
}

// slogGooseLogger forwards goose output to slog. Fatalf logs at error level
// instead of exiting; goose also returns the error to the caller.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}
