package auth

import (
	"testing"

	"marketplace/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(jwtTestConfig())
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	userID := uint(42)
	roles := []string{"client", "seller"}

	accessToken, refreshToken, err := jwtService.GenerateTokens(userID, roles)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	gotID, gotRoles, err := jwtService.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, roles, gotRoles)
}

func TestJWTService_RefreshTokenIsNotAnAccessToken(t *testing.T) {
	jwtService, err := NewJWTService(jwtTestConfig())
	require.NoError(t, err)

	_, refreshToken, err := jwtService.GenerateTokens(7, []string{"client"})
	require.NoError(t, err)

	// A refresh token is signed with a different secret and typed "refresh";
	// it must never pass access-token validation.
	_, _, err = jwtService.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(jwtTestConfig())
	require.NoError(t, err)

	_, _, err = jwtService.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
}

func TestJWTService_MissingSecrets(t *testing.T) {
	cfg := &config.Config{}
	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_RefreshTokenDuration(t *testing.T) {
	jwtService, err := NewJWTService(jwtTestConfig())
	require.NoError(t, err)

	assert.Positive(t, jwtService.GetRefreshTokenDuration())
}
