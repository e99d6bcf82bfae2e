package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/spf13/cobra"

	"ridehail/internal/logger"
	"ridehail/internal/repository/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long:  "Apply, roll back or inspect the schema of the configured postgres or sqlite database.",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrationDB(cmd, migrations.Up)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrationDB(cmd, migrations.Down)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of every migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrationDB(cmd, migrations.Status)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

type migrationFunc func(ctx context.Context, db *sql.DB, d migrations.Dialect, logger *slog.Logger) error

// withMigrationDB opens the configured database, runs fn and prints the
// resulting schema version.
func withMigrationDB(cmd *cobra.Command, fn migrationFunc) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cmd.ErrOrStderr(), cfg.Server)
	ctx := cmd.Context()

	db, dialect, closeDB, err := openMigrationDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := fn(ctx, db, dialect, log); err != nil {
		return err
	}

	version, err := migrations.Version(ctx, db, dialect, log)
	if err != nil {
		return err
	}
	cmd.Printf("schema version: %d\n", version)
	return nil
}
