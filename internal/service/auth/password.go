package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a plaintext password into its stored form.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword.
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher and PasswordVerifier using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Costs outside
// bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare implements PasswordVerifier.
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// HashingUserStore wraps a store.UserStore and hashes passwords on their way
// in. Reads pass through unchanged, so the stored hash is what clients see.
type HashingUserStore struct {
	next   store.UserStore
	hasher PasswordHasher
}

// Ensure HashingUserStore implements store.UserStore interface
var _ store.UserStore = (*HashingUserStore)(nil)

// NewHashingUserStore wraps next so that Create and Update hash passwords.
func NewHashingUserStore(next store.UserStore, hasher PasswordHasher) *HashingUserStore {
	return &HashingUserStore{next: next, hasher: hasher}
}

// Get implements store.UserStore.Get
func (s *HashingUserStore) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.next.Get(ctx, id)
}

// GetMany implements store.UserStore.GetMany
func (s *HashingUserStore) GetMany(
	ctx context.Context,
	filter domain.UserFilter,
) ([]*domain.User, error) {
	return s.next.GetMany(ctx, filter)
}

// Create implements store.UserStore.Create
func (s *HashingUserStore) Create(
	ctx context.Context,
	input domain.UserInput,
) (*domain.User, error) {
	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	input.Password = hashed
	return s.next.Create(ctx, input)
}

// Update implements store.UserStore.Update
func (s *HashingUserStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.UserPatch,
) (*domain.User, error) {
	if patch.Password != nil {
		hashed, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hashed
	}
	return s.next.Update(ctx, id, patch)
}

// Delete implements store.UserStore.Delete
func (s *HashingUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.next.Delete(ctx, id)
}
