package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/account-api/internal/api/shared"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/platform/logger"
)

// userIDParam is the chi path parameter naming a user.
const userIDParam = "id"

// pathUserID reads the user ID from the URL path. When it is missing or
// not a UUID a failure envelope is written and ok is false.
func pathUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, userIDParam))
	if raw == "" {
		shared.RespondWithCode(w, r, domain.InvalidInput, domain.MsgIDEmpty)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		logger.FromContext(r.Context()).Debug("rejected malformed user id")
		shared.RespondWithCode(w, r, domain.InvalidInput, domain.InvalidInputMessage(domain.FieldID))
		return uuid.Nil, false
	}
	return id, true
}

// decodeUserInput decodes a user payload. A body that is not a JSON object
// is answered with a failure envelope and ok is false.
func decodeUserInput(w http.ResponseWriter, r *http.Request) (domain.UserInput, bool) {
	var in domain.UserInput
	if err := shared.DecodeJSON(w, r, &in); err != nil {
		logger.FromContext(r.Context()).Debug("rejected undecodable request body")
		shared.RespondWithCode(w, r, domain.InvalidInput, domain.MsgInvalidBody)
		return domain.UserInput{}, false
	}
	return in, true
}
