package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/platform/logger"
	"github.com/phrazzld/account-api/internal/redact"
	"github.com/phrazzld/account-api/internal/store"
)

const userColumns = `id, name, email, password, created_at, updated_at`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx returns a store that runs its queries on tx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) *PostgresUserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
		now:    s.now,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Get implements store.UserStore.Get
func (s *PostgresUserStore) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		mapped := mapUserError(err)
		if store.IsNotFoundError(mapped) {
			log.Debug("user not found", slog.String("user_id", id.String()))
		} else {
			log.Error("failed to get user",
				slog.String("error", redact.Error(err)),
				slog.String("user_id", id.String()))
		}
		return nil, userError("get", "failed to get user", mapped)
	}
	return u, nil
}

// GetMany implements store.UserStore.GetMany
func (s *PostgresUserStore) GetMany(
	ctx context.Context,
	filter domain.UserFilter,
) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 = '' OR name = $1) AND ($2 = '' OR email = $2)
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, filter.Name, filter.Email)
	if err != nil {
		log.Error("failed to query users", slog.String("error", redact.Error(err)))
		return nil, userError("list", "failed to query users", mapUserError(err))
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", redact.Error(err)))
			return nil, userError("list", "failed to scan user row", MapError(err))
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating user rows", slog.String("error", redact.Error(err)))
		return nil, userError("list", "failed to iterate user rows", MapError(err))
	}

	log.Debug("retrieved users", slog.Int("count", len(users)))
	return users, nil
}

// Create implements store.UserStore.Create
// Returns store.ErrEmailExists if the email is already in use.
func (s *PostgresUserStore) Create(
	ctx context.Context,
	input domain.UserInput,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.now()
	query := `
		INSERT INTO users (name, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + userColumns

	u, err := scanUser(s.db.QueryRowContext(ctx, query, input.Name, input.Email, input.Password, now))
	if err != nil {
		mapped := mapUserError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("email already exists during user creation")
		} else {
			log.Error("failed to create user", slog.String("error", redact.Error(err)))
		}
		return nil, userError("create", "failed to insert user", mapped)
	}

	log.Info("user created successfully", slog.String("user_id", u.ID.String()))
	return u, nil
}

// Update implements store.UserStore.Update
// The read and the write run in one transaction when the store is backed by
// a connection pool; on a transaction-bound store they join the caller's.
func (s *PostgresUserStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.UserPatch,
) (*domain.User, error) {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return s.update(ctx, id, patch)
	}

	var updated *domain.User
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		updated, err = s.WithTx(tx).update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostgresUserStore) update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.UserPatch,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	selectQuery := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	u, err := scanUser(s.db.QueryRowContext(ctx, selectQuery, id))
	if err != nil {
		mapped := mapUserError(err)
		if store.IsNotFoundError(mapped) {
			log.Debug("user not found for update", slog.String("user_id", id.String()))
		} else {
			log.Error("failed to load user for update",
				slog.String("error", redact.Error(err)),
				slog.String("user_id", id.String()))
		}
		return nil, userError("update", "failed to load user", mapped)
	}

	if patch.IsEmpty() {
		return u, nil
	}

	patch.Apply(u)

	// Timestamps come back from the database so they match later reads.
	updateQuery := `
		UPDATE users
		SET name = $1, email = $2, password = $3, updated_at = $4
		WHERE id = $5
		RETURNING ` + userColumns

	updated, err := scanUser(s.db.QueryRowContext(ctx, updateQuery, u.Name, u.Email, u.Password, s.now(), id))
	if err != nil {
		mapped := mapUserError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("email already exists during user update", slog.String("user_id", id.String()))
		} else {
			log.Error("failed to update user",
				slog.String("error", redact.Error(err)),
				slog.String("user_id", id.String()))
		}
		return nil, userError("update", "failed to write user", mapped)
	}

	log.Info("user updated successfully", slog.String("user_id", id.String()))
	return updated, nil
}

// Delete implements store.UserStore.Delete
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id.String()))
		return userError("delete", "failed to delete user", mapUserError(err))
	}
	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		log.Debug("user not found for deletion", slog.String("user_id", id.String()))
		return userError("delete", "no user deleted", err)
	}

	log.Info("user deleted successfully", slog.String("user_id", id.String()))
	return nil
}
