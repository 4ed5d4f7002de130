package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/account-api/internal/config"
	"github.com/phrazzld/account-api/internal/platform/postgres/migrations"
)

// errMigrationsNeedPostgres is returned when a migration command is given
// while the memory driver is configured.
var errMigrationsNeedPostgres = errors.New("migrations require the postgres database driver")

// handleMigrations runs a single migration command and closes the pool.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return errMigrationsNeedPostgres
	}

	db, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}()

	if err := migrations.Run(ctx, db, command, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
