package service

import (
	"time"
)

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID uint, roles []string) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token and returns the user ID and
	// roles encoded in it.
	ValidateAccessToken(tokenString string) (userID uint, roles []string, err error)

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
