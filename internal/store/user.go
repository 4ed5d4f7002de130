package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/account-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Get retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetMany returns every user matching the filter, ordered by creation
	// time. An empty filter matches all users. The result is never nil.
	GetMany(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error)

	// Create saves a new user and returns the stored record with its
	// generated ID and timestamps.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, input domain.UserInput) (*domain.User, error)

	// Update applies a partial change to an existing user and returns the
	// post-update record. An empty patch returns the current record.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if the new email belongs to another user.
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)

	// Delete removes a user permanently.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
