package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/account-api/internal/api/shared"
	"github.com/phrazzld/account-api/internal/platform/logger"
	"github.com/phrazzld/account-api/internal/redact"
	"github.com/phrazzld/account-api/internal/service/auth"
)

// DefaultExemptPaths are reachable without a token.
var DefaultExemptPaths = []string{"/login", "/health"}

// AuthMiddleware rejects requests that do not carry a valid login token.
type AuthMiddleware struct {
	tokenService auth.TokenService
	exempt       map[string]struct{}
}

// NewAuthMiddleware creates an AuthMiddleware. With no exemptPaths,
// DefaultExemptPaths is used.
func NewAuthMiddleware(tokenService auth.TokenService, exemptPaths ...string) *AuthMiddleware {
	if len(exemptPaths) == 0 {
		exemptPaths = DefaultExemptPaths
	}
	exempt := make(map[string]struct{}, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = struct{}{}
	}
	return &AuthMiddleware{
		tokenService: tokenService,
		exempt:       exempt,
	}
}

// extractToken reads the token cookie, falling back to an
// "Authorization: Bearer" header.
func extractToken(r *http.Request) (string, error) {
	if c, err := r.Cookie(shared.TokenCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", auth.ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}

// Authenticate validates the request token and adds the user name to the
// request context. Failures are answered with 401 and a plain JSON error;
// the wrapped handler is not called.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.exempt[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromContext(r.Context())

		token, err := extractToken(r)
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "authentication required")
			} else {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "invalid authorization format")
			}
			return
		}

		claims, err := m.tokenService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "invalid token")
			default:
				log.Error("failed to validate token", slog.String("error", redact.Error(err)))
				shared.RespondWithError(w, r, http.StatusUnauthorized, "invalid token")
			}
			return
		}

		ctx := shared.WithUserName(r.Context(), claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
