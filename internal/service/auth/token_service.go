// Package auth issues and verifies login tokens and hashes stored passwords.
package auth

import (
	"context"
	"time"
)

// TokenService defines operations for managing login tokens.
type TokenService interface {
	// GenerateToken creates a signed token whose subject is the given user
	// name. It returns the token and the instant it expires.
	GenerateToken(ctx context.Context, name string) (string, time.Time, error)

	// ValidateToken verifies the signature and time claims of a token and
	// returns its claims. Returns ErrExpiredToken, ErrTokenNotYetValid or
	// ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a token.
type Claims struct {
	// Subject is the user name the token was issued for.
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
