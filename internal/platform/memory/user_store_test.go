package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_CreateAndGet(t *testing.T) {
	s := NewUserStore(nil)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.UserInput{Name: "A", Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	first, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	second, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, created, first)
}

func TestUserStore_ReturnsCopies(t *testing.T) {
	s := NewUserStore(nil)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.UserInput{Name: "A", Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	created.Name = "mutated"

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}

func TestUserStore_GetMissing(t *testing.T) {
	s := NewUserStore(nil)

	_, err := s.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), uuid.New()), store.ErrUserNotFound)

	_, err = s.Update(context.Background(), uuid.New(), domain.UserPatch{})
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStore_GetMany(t *testing.T) {
	s := NewUserStore(nil)
	ctx := context.Background()

	empty, err := s.GetMany(ctx, domain.UserFilter{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	a, err := s.Create(ctx, domain.UserInput{Name: "A", Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	b, err := s.Create(ctx, domain.UserInput{Name: "B", Email: "b@b.com", Password: "x"})
	require.NoError(t, err)
	c, err := s.Create(ctx, domain.UserInput{Name: "A", Email: "c@b.com", Password: "x"})
	require.NoError(t, err)

	all, err := s.GetMany(ctx, domain.UserFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})

	named, err := s.GetMany(ctx, domain.UserFilter{Name: "A"})
	require.NoError(t, err)
	require.Len(t, named, 2)
	assert.Equal(t, a.ID, named[0].ID)
	assert.Equal(t, c.ID, named[1].ID)

	none, err := s.GetMany(ctx, domain.UserFilter{Name: "A", Email: "b@b.com"})
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, s.Delete(ctx, b.ID))
	remaining, err := s.GetMany(ctx, domain.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestUserStore_Update(t *testing.T) {
	s := NewUserStore(nil)
	ctx := context.Background()

	a, err := s.Create(ctx, domain.UserInput{Name: "A", Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	_, err = s.Create(ctx, domain.UserInput{Name: "B", Email: "b@b.com", Password: "y"})
	require.NoError(t, err)

	t.Run("empty patch returns current record", func(t *testing.T) {
		got, err := s.Update(ctx, a.ID, domain.UserPatch{})
		require.NoError(t, err)
		assert.Equal(t, a, got)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		got, err := s.Update(ctx, a.ID, domain.NewUserPatch(domain.UserInput{Name: "A2"}))
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, "A2", got.Name)
		assert.Equal(t, "a@b.com", got.Email)
		assert.Equal(t, "x", got.Password)
		assert.Equal(t, a.CreatedAt, got.CreatedAt)
	})

	t.Run("keeping own email is allowed", func(t *testing.T) {
		_, err := s.Update(ctx, a.ID, domain.NewUserPatch(domain.UserInput{Email: "a@b.com"}))
		assert.NoError(t, err)
	})

	t.Run("taking another user's email fails", func(t *testing.T) {
		_, err := s.Update(ctx, a.ID, domain.NewUserPatch(domain.UserInput{Email: "b@b.com"}))
		assert.ErrorIs(t, err, store.ErrEmailExists)

		got, err := s.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", got.Email)
	})
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	s := NewUserStore(nil)
	ctx := context.Background()

	_, err := s.Create(ctx, domain.UserInput{Name: "A", Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	_, err = s.Create(ctx, domain.UserInput{Name: "Z", Email: "a@b.com", Password: "z"})
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestUserStore_ConcurrentCreateSameEmail(t *testing.T) {
	s := NewUserStore(nil)
	ctx := context.Background()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := s.Create(ctx, domain.UserInput{Name: "A", Email: "same@b.com", Password: "x"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case store.IsDuplicateError(err):
				dupes++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, dupes)

	all, err := s.GetMany(ctx, domain.UserFilter{Email: "same@b.com"})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
