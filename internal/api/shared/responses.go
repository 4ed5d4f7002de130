package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/platform/logger"
)

// SuccessEnvelope is the body of every successful API response. Data is
// always serialised, as null when there is nothing to return.
type SuccessEnvelope struct {
	Code domain.ErrorCode `json:"code"`
	Data interface{}      `json:"data"`
}

// FailureEnvelope is the body of an API response that reports a failure
// code. It is still sent with HTTP 200.
type FailureEnvelope struct {
	Code domain.ErrorCode `json:"code"`
	Msg  string           `json:"msg"`
}

// ErrorResponse is the body of a transport-level failure such as a 401,
// which is answered outside the envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// RespondWithData writes a success envelope carrying data.
func RespondWithData(w http.ResponseWriter, r *http.Request, data interface{}) {
	RespondWithJSON(w, r, http.StatusOK, SuccessEnvelope{Code: domain.NoError, Data: data})
}

// RespondWithCode writes a failure envelope. code must not be NoError.
func RespondWithCode(w http.ResponseWriter, r *http.Request, code domain.ErrorCode, msg string) {
	RespondWithJSON(w, r, http.StatusOK, FailureEnvelope{Code: code, Msg: msg})
}

// RespondWithValidation writes the envelope for a failed validation result.
func RespondWithValidation(w http.ResponseWriter, r *http.Request, result domain.ValidationResult) {
	RespondWithCode(w, r, result.Code, result.Message)
}

// RespondWithError writes a transport-level JSON error with the request's
// trace ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	logger.FromContext(r.Context()).Debug("sending error response",
		slog.Int("status_code", status),
		slog.String("message", message),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	RespondWithJSON(w, r, status, ErrorResponse{Error: message, TraceID: traceID})
}
