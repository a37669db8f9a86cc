package utils

import (
	"testing"

	"tally/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	in := &models.UserClaims{UserID: 7, Username: "alice", TokenVersion: 3}
	access, refresh, err := GenerateTokens(in)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	for _, token := range []string{access, refresh} {
		claims, err := ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, 3, claims.TokenVersion)
		assert.Equal(t, "tally-api", claims.Issuer)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	access, _, err := GenerateTokens(&models.UserClaims{UserID: 1, Username: "alice"})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = ParseToken(access)
	assert.Error(t, err)
}

func TestMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := GenerateTokens(&models.UserClaims{UserID: 1})
	assert.Error(t, err)

	_, err = ParseToken("anything")
	assert.Error(t, err)
}
