// Package memory provides a process-local store.UserStore for development
// and tests. Data does not survive a restart.
package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/platform/logger"
	"github.com/phrazzld/account-api/internal/store"
)

// UserStore keeps users in a map guarded by a RWMutex. Records are copied
// on the way in and out so callers never share state with the store.
type UserStore struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]*domain.User
	order  []uuid.UUID
	logger *slog.Logger
	now    func() time.Time
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore returns an empty store. If logger is nil, slog.Default is used.
func NewUserStore(logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		users:  make(map[uuid.UUID]*domain.User),
		logger: logger.With(slog.String("component", "memory_user_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func clone(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// emailTaken must be called with mu held.
func (s *UserStore) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range s.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

// Get implements store.UserStore.Get
func (s *UserStore) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return clone(u), nil
}

// GetMany implements store.UserStore.GetMany
func (s *UserStore) GetMany(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.order))
	for _, id := range s.order {
		if u := s.users[id]; filter.Matches(u) {
			users = append(users, clone(u))
		}
	}
	return users, nil
}

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, input domain.UserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(input.Email, uuid.Nil) {
		log.Warn("email already exists during user creation")
		return nil, store.ErrEmailExists
	}

	now := s.now()
	u := &domain.User{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = u
	s.order = append(s.order, u.ID)

	log.Info("user created successfully", slog.String("user_id", u.ID.String()))
	return clone(u), nil
}

// Update implements store.UserStore.Update
func (s *UserStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.UserPatch,
) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	if patch.IsEmpty() {
		return clone(u), nil
	}
	if patch.Email != nil && s.emailTaken(*patch.Email, id) {
		return nil, store.ErrEmailExists
	}

	updated := clone(u)
	patch.Apply(updated)
	updated.UpdatedAt = s.now()
	s.users[id] = updated

	logger.FromContextOrDefault(ctx, s.logger).
		Info("user updated successfully", slog.String("user_id", id.String()))
	return clone(updated), nil
}

// Delete implements store.UserStore.Delete
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	s.order = slices.DeleteFunc(s.order, func(v uuid.UUID) bool { return v == id })

	logger.FromContextOrDefault(ctx, s.logger).
		Info("user deleted successfully", slog.String("user_id", id.String()))
	return nil
}
