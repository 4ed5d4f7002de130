package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	GetFn     func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetManyFn func(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error)
	CreateFn  func(ctx context.Context, input domain.UserInput) (*domain.User, error)
	UpdateFn  func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	// Err is returned by every method without a function field when set.
	Err error

	mu    sync.Mutex
	calls []string
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with no configured behaviour.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{}
}

func (m *MockUserStore) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

// Calls returns the names of the methods invoked so far, in order.
func (m *MockUserStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns the total number of calls made to the mock.
func (m *MockUserStore) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Get implements the UserStore interface
func (m *MockUserStore) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.record("Get")
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, store.ErrUserNotFound
}

// GetMany implements the UserStore interface
func (m *MockUserStore) GetMany(
	ctx context.Context,
	filter domain.UserFilter,
) ([]*domain.User, error) {
	m.record("GetMany")
	if m.GetManyFn != nil {
		return m.GetManyFn(ctx, filter)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return []*domain.User{}, nil
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, input domain.UserInput) (*domain.User, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, input)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.User{
		ID:       uuid.New(),
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	}, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.UserPatch,
) (*domain.User, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, store.ErrUserNotFound
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}
