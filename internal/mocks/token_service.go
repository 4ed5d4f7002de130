package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/account-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing.
type MockTokenService struct {
	GenerateTokenFn func(ctx context.Context, name string) (string, time.Time, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Defaults used when the function fields are nil.
	Token           string
	ExpiresAt       time.Time
	TokenError      error
	Claims          *auth.Claims
	ValidationError error
}

// Ensure MockTokenService implements auth.TokenService interface
var _ auth.TokenService = (*MockTokenService)(nil)

// NewMockTokenService returns a mock that issues "mock-token" valid for
// three hours and accepts any token as belonging to "mock-user".
func NewMockTokenService() *MockTokenService {
	now := time.Now()
	return &MockTokenService{
		Token:     "mock-token",
		ExpiresAt: now.Add(3 * time.Hour),
		Claims: &auth.Claims{
			Subject:   "mock-user",
			IssuedAt:  now,
			ExpiresAt: now.Add(3 * time.Hour),
			ID:        "mock-token-id",
		},
	}
}

// GenerateToken implements auth.TokenService.
func (m *MockTokenService) GenerateToken(
	ctx context.Context,
	name string,
) (string, time.Time, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, name)
	}
	if m.TokenError != nil {
		return "", time.Time{}, m.TokenError
	}
	return m.Token, m.ExpiresAt, nil
}

// ValidateToken implements auth.TokenService.
func (m *MockTokenService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	return m.Claims, nil
}
