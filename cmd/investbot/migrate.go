package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/investbot-app/investbot/internal/config"
	"github.com/investbot-app/investbot/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Serve runs migrations automatically; this command exists for provisioning
a database ahead of time or checking that an upgrade will apply cleanly.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("Starting database migration", "database", cfg.DatabasePath)

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Printf("Database schema is at version %d\n", storage.ExpectedSchemaVersion)
	return nil
}
