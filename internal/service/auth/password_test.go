package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/platform/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher(t *testing.T) {
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(32).cost)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hashed)
	assert.NoError(t, h.Compare(hashed, "secret"))
	assert.Error(t, h.Compare(hashed, "other"))
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("hash failed") }

func TestHashingUserStore(t *testing.T) {
	ctx := context.Background()
	h := NewBcryptHasher(bcrypt.MinCost)
	s := NewHashingUserStore(memory.NewUserStore(nil), h)

	created, err := s.Create(ctx, domain.UserInput{Name: "A", Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.NotEqual(t, "x", created.Password)
	assert.NoError(t, h.Compare(created.Password, "x"))

	t.Run("update without password keeps hash", func(t *testing.T) {
		updated, err := s.Update(ctx, created.ID, domain.NewUserPatch(domain.UserInput{Name: "B"}))
		require.NoError(t, err)
		assert.Equal(t, created.Password, updated.Password)
	})

	t.Run("update with password rehashes", func(t *testing.T) {
		updated, err := s.Update(ctx, created.ID, domain.NewUserPatch(domain.UserInput{Password: "y"}))
		require.NoError(t, err)
		assert.NoError(t, h.Compare(updated.Password, "y"))
	})

	t.Run("reads and deletes pass through", func(t *testing.T) {
		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "B", got.Name)

		all, err := s.GetMany(ctx, domain.UserFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)

		require.NoError(t, s.Delete(ctx, created.ID))
		_, err = s.Get(ctx, created.ID)
		assert.Error(t, err)
	})

	t.Run("hash failure stops the write", func(t *testing.T) {
		backing := memory.NewUserStore(nil)
		failing := NewHashingUserStore(backing, failingHasher{})

		_, err := failing.Create(ctx, domain.UserInput{Name: "A", Email: "a@b.com", Password: "x"})
		assert.Error(t, err)

		all, err := backing.GetMany(ctx, domain.UserFilter{})
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
