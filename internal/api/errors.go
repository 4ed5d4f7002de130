package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/account-api/internal/api/shared"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/platform/logger"
	"github.com/phrazzld/account-api/internal/redact"
	"github.com/phrazzld/account-api/internal/store"
)

// HandlerFunc is an HTTP handler that writes its own success and validation
// responses and returns any store failure for ErrorMiddleware to report.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ClassifyError maps an error raised below the handlers to a response code
// and message. Known store failures become DBError; everything else is
// UnknownError. A nil error maps to NoError.
func ClassifyError(err error) (domain.ErrorCode, string) {
	switch {
	case err == nil:
		return domain.NoError, ""
	case errors.Is(err, store.ErrNotFound):
		return domain.DBError, domain.MsgUserNotFound
	case errors.Is(err, store.ErrDuplicate):
		return domain.DBError, domain.MsgEmailExists
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrTransactionFailed):
		return domain.DBError, domain.MsgDBError
	default:
		return domain.UnknownError, domain.MsgUnknownError
	}
}

// HandleAPIError logs err and writes the matching failure envelope.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := ClassifyError(err)
	if code == domain.NoError {
		// A nil error reaching here is a handler bug; report it as unknown.
		code, msg = domain.UnknownError, domain.MsgUnknownError
	}

	log := logger.FromContext(r.Context())
	attrs := []any{
		redact.Attr(err),
		slog.String("code", code.String()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	}
	if name, ok := shared.GetUserName(r.Context()); ok {
		attrs = append(attrs, slog.String("user_name", name))
	}
	if code == domain.DBError {
		log.Warn("request failed with store error", attrs...)
	} else {
		log.Error("request failed with unexpected error", attrs...)
	}

	shared.RespondWithCode(w, r, code, msg)
}

// ErrorMiddleware adapts h to http.HandlerFunc. A returned error or a panic
// escaping h is reported through HandleAPIError.
func ErrorMiddleware(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				HandleAPIError(w, r, fmt.Errorf("panic in handler: %v", rec))
			}
		}()

		if err := h(w, r); err != nil {
			HandleAPIError(w, r, err)
		}
	}
}
