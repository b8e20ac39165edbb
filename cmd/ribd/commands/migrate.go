package commands

import (
	"context"
	"fmt"

	"github.com/routeflow/ribd/internal/logger"
	"github.com/routeflow/ribd/pkg/config"
	"github.com/routeflow/ribd/pkg/config/store"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run database migrations for the control plane database.

This command applies pending schema migrations to the configured control
plane database (SQLite or PostgreSQL), which holds keychains,
segment-routing label-range bindings, and static routes. It is required
after upgrading ribd when schema changes have been made.

Examples:
  # Run migrations with default config
  ribd migrate

  # Run migrations with custom config
  ribd migrate --config /etc/ribd/config.yaml`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	logger.Info("Running database migrations", "type", cfg.Database.Type)

	ctx := context.Background()
	cpStore, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer func() { _ = cpStore.Close() }()

	if err := cpStore.Healthcheck(ctx); err != nil {
		return fmt.Errorf("migration verification failed: %w", err)
	}

	fmt.Printf("Migrations completed successfully (database type: %s)\n", cfg.Database.Type)
	return nil
}
