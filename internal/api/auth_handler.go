package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/account-api/internal/api/shared"
	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/platform/logger"
	"github.com/phrazzld/account-api/internal/service/auth"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	tokenService auth.TokenService
	cookieDomain string
	now          func() time.Time
}

// NewAuthHandler creates an AuthHandler. Login cookies are scoped to
// cookieDomain.
func NewAuthHandler(tokenService auth.TokenService, cookieDomain string) *AuthHandler {
	if tokenService == nil {
		panic("tokenService cannot be nil")
	}
	return &AuthHandler{
		tokenService: tokenService,
		cookieDomain: cookieDomain,
		now:          time.Now,
	}
}

// Login handles POST /login. It issues a token for the given name, sets it
// as the token cookie and returns it in the response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	log := logger.FromContext(r.Context())

	var req LoginRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "name" {
			shared.RespondWithCode(w, r, domain.InvalidInput, domain.InvalidInputMessage(domain.FieldName))
			return nil
		}
		shared.RespondWithCode(w, r, domain.InvalidInput, domain.MsgInvalidBody)
		return nil
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithCode(w, r, domain.InvalidInput, domain.MsgNameEmpty)
		return nil
	}

	token, expiresAt, err := h.tokenService.GenerateToken(r.Context(), req.Name)
	if err != nil {
		return err
	}

	maxAge := int(expiresAt.Sub(h.now()).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     shared.TokenCookieName,
		Value:    token,
		Domain:   h.cookieDomain,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("login token issued", slog.Time("expires_at", expiresAt))
	shared.RespondWithData(w, r, LoginResponse{Token: token})
	return nil
}
