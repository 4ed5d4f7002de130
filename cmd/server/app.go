package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/account-api/internal/config"
	"github.com/phrazzld/account-api/internal/platform/memory"
	"github.com/phrazzld/account-api/internal/platform/postgres"
	"github.com/phrazzld/account-api/internal/platform/postgres/migrations"
	"github.com/phrazzld/account-api/internal/redact"
	"github.com/phrazzld/account-api/internal/service/auth"
	"github.com/phrazzld/account-api/internal/store"
)

// application holds the shared dependencies of the server and owns their
// cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the memory driver is configured.
	db *sql.DB

	userStore    store.UserStore
	tokenService auth.TokenService
}

// newApplication builds the store and token service described by cfg. With
// the postgres driver the pool is opened and pending migrations are applied.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("token service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	var users store.UserStore
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		app.db, err = setupAppDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if err := migrations.Run(ctx, app.db, migrations.CommandUp, logger); err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		users = postgres.NewPostgresUserStore(app.db, logger)
	case config.DriverMemory:
		logger.Warn("using in-memory user store; data is lost on restart")
		users = memory.NewUserStore(logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.Auth.HashPasswords {
		users = auth.NewHashingUserStore(users, auth.NewBcryptHasher(cfg.Auth.BcryptCost))
		logger.Info("password hashing enabled", slog.Int("bcrypt_cost", cfg.Auth.BcryptCost))
	} else {
		logger.Warn("password hashing disabled; passwords are stored as submitted")
	}
	app.userStore = users

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the database pool, if any.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", redact.Attr(err))
		}
		app.db = nil
	}
	app.logger.Info("application shutdown completed")
}
