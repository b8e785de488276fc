package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("demo-user-1", "user@example.com", "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "demo-user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken("demo-user-1", "user@example.com", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestTokenExpiryRejected(t *testing.T) {
	token, err := GenerateToken("demo-user-1", "user@example.com", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	assert.Error(t, err)
}

func TestTokenGarbageRejected(t *testing.T) {
	_, err := ValidateToken("not.a.token", "secret")
	assert.Error(t, err)
}
