package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/account-api/internal/api/shared"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/platform/logger"
	"github.com/phrazzld/account-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode domain.ErrorCode
		wantMsg  string
	}{
		{name: "nil", err: nil, wantCode: domain.NoError, wantMsg: ""},
		{name: "user not found", err: store.ErrUserNotFound, wantCode: domain.DBError, wantMsg: "user not found"},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("get: %w", store.ErrNotFound),
			wantCode: domain.DBError,
			wantMsg:  "user not found",
		},
		{
			name:     "store error keeps sentinel",
			err:      store.NewStoreError("user", "update", "failed to write user", store.ErrEmailExists),
			wantCode: domain.DBError,
			wantMsg:  "email already exists",
		},
		{name: "email exists", err: store.ErrEmailExists, wantCode: domain.DBError, wantMsg: "email already exists"},
		{name: "generic duplicate", err: store.ErrDuplicate, wantCode: domain.DBError, wantMsg: "email already exists"},
		{name: "invalid entity", err: store.ErrInvalidEntity, wantCode: domain.DBError, wantMsg: "database error"},
		{
			name:     "transaction failure",
			err:      fmt.Errorf("commit: %w", store.ErrTransactionFailed),
			wantCode: domain.DBError,
			wantMsg:  "database error",
		},
		{name: "anything else", err: errors.New("boom"), wantCode: domain.UnknownError, wantMsg: "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := ClassifyError(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestErrorMiddleware(t *testing.T) {
	t.Run("store error is logged at warn and enveloped", func(t *testing.T) {
		ctx, buf := logger.NewTestContext(t)
		r := newRequest(http.MethodGet, "/users/x", "").WithContext(ctx)

		rr := serve(func(http.ResponseWriter, *http.Request) error {
			return store.ErrEmailExists
		}, r)

		env := decodeEnvelope(t, rr)
		assert.Equal(t, domain.DBError, env.Code)
		assert.Equal(t, "email already exists", env.Msg)
		logger.AssertLogField(t, buf, "level", "WARN")
	})

	t.Run("unknown error is redacted in logs", func(t *testing.T) {
		ctx, buf := logger.NewTestContext(t)
		r := newRequest(http.MethodGet, "/users", "").WithContext(ctx)

		rr := serve(func(http.ResponseWriter, *http.Request) error {
			return errors.New("dial postgres://admin:hunter2@db:5432/app failed")
		}, r)

		env := decodeEnvelope(t, rr)
		assert.Equal(t, domain.UnknownError, env.Code)
		assert.Equal(t, "unknown error", env.Msg)
		logger.AssertLogField(t, buf, "level", "ERROR")
		assert.NotContains(t, buf.String(), "hunter2")
	})

	t.Run("authenticated user name is logged", func(t *testing.T) {
		ctx, buf := logger.NewTestContext(t)
		ctx = shared.WithUserName(ctx, "alice")
		r := newRequest(http.MethodDelete, "/users/x", "").WithContext(ctx)

		serve(func(http.ResponseWriter, *http.Request) error {
			return store.ErrUserNotFound
		}, r)

		logger.AssertLogField(t, buf, "user_name", "alice")
	})

	t.Run("anonymous request logs no user name", func(t *testing.T) {
		ctx, buf := logger.NewTestContext(t)
		r := newRequest(http.MethodGet, "/users", "").WithContext(ctx)

		serve(func(http.ResponseWriter, *http.Request) error {
			return store.ErrUserNotFound
		}, r)

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e, "user_name")
		}
	})

	t.Run("panic is recovered", func(t *testing.T) {
		rr := serve(func(http.ResponseWriter, *http.Request) error {
			panic("nil map write")
		}, newRequest(http.MethodGet, "/users", ""))

		env := decodeEnvelope(t, rr)
		assert.Equal(t, domain.UnknownError, env.Code)
	})

	t.Run("abort handler panic propagates", func(t *testing.T) {
		h := ErrorMiddleware(func(http.ResponseWriter, *http.Request) error {
			panic(http.ErrAbortHandler)
		})
		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(nil, newRequest(http.MethodGet, "/users", ""))
		})
	})

	t.Run("nil error leaves response to handler", func(t *testing.T) {
		rr := serve(func(w http.ResponseWriter, _ *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}, newRequest(http.MethodGet, "/", ""))
		require.Equal(t, http.StatusNoContent, rr.Code)
	})
}
