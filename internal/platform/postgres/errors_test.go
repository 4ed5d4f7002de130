package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/account-api/internal/platform/postgres"
	"github.com/phrazzld/account-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		SchemaName:     "public",
		TableName:      "users",
		ColumnName:     "email",
		ConstraintName: "test_constraint",
	}
}

// MockResult implements sql.Result for testing
type MockResult struct {
	rowsAffected int64
	err          error
}

func (m MockResult) LastInsertId() (int64, error) {
	return 0, m.err
}

func (m MockResult) RowsAffected() (int64, error) {
	return m.rowsAffected, m.err
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	unnamed := newPgError("23505")
	unnamed.ConstraintName = ""

	tests := []struct {
		name        string
		err         error
		constraints []string
		expected    bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("generic"), expected: false},
		{name: "unique violation", err: newPgError("23505"), expected: true},
		{
			name:     "wrapped unique violation",
			err:      fmt.Errorf("insert: %w", newPgError("23505")),
			expected: true,
		},
		{name: "other pg error", err: newPgError("23503"), expected: false},
		{
			name:        "matching constraint",
			err:         newPgError("23505"),
			constraints: []string{"other_key", "test_constraint"},
			expected:    true,
		},
		{
			name:        "different constraint",
			err:         newPgError("23505"),
			constraints: []string{"users_email_key"},
			expected:    false,
		},
		{
			name:        "unnamed constraint matches any",
			err:         unnamed,
			constraints: []string{"users_email_key"},
			expected:    true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, postgres.IsUniqueViolation(tt.err, tt.constraints...))
		})
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "no rows", err: sql.ErrNoRows, expected: store.ErrNotFound},
		{name: "unique violation", err: newPgError("23505"), expected: store.ErrDuplicate},
		{name: "foreign key violation", err: newPgError("23503"), expected: store.ErrInvalidEntity},
		{name: "check violation", err: newPgError("23514"), expected: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError("23502"), expected: store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := postgres.MapError(tt.err)
			assert.ErrorIs(t, got, tt.expected)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("unmapped error passes through", func(t *testing.T) {
		t.Parallel()
		orig := errors.New("connection reset")
		assert.Equal(t, orig, postgres.MapError(orig))

		pgOther := newPgError("42P01")
		assert.Equal(t, error(pgOther), postgres.MapError(pgOther))
	})
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(MockResult{rowsAffected: 1}, store.ErrUserNotFound))
	assert.ErrorIs(t,
		postgres.CheckRowsAffected(MockResult{rowsAffected: 0}, store.ErrUserNotFound),
		store.ErrUserNotFound)

	resultErr := errors.New("driver failure")
	err := postgres.CheckRowsAffected(MockResult{err: resultErr}, store.ErrUserNotFound)
	assert.ErrorIs(t, err, resultErr)
	assert.NotErrorIs(t, err, store.ErrNotFound)

	assert.Error(t, postgres.CheckRowsAffected(nil, store.ErrUserNotFound))
}
