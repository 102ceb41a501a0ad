package service

import "context"

// OAuthUser is the provider-neutral identity extracted from a verified
// external ID token.
type OAuthUser struct {
	// Subject is the provider's stable user identifier.
	Subject string

	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// OAuthAuthService defines the interface for verifying external identity
// tokens during social sign-in.
type OAuthAuthService interface {
	// VerifyIDToken validates an ID token and returns the identity it
	// asserts.
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
}
