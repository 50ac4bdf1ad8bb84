package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeSlice(t *testing.T) {
	assert.Equal(t, []int{1, 2}, SafeSlice([]int{1, 2, 3}, 2))
	assert.Equal(t, []string{"a"}, SafeSlice([]string{"a"}, 5))
	assert.Empty(t, SafeSlice([]int{1, 2}, 0))
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.GenerateAccessToken("player-1")
	require.NoError(t, err)

	claims, err := issuer.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "player-1", claims.PlayerID)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.GenerateAccessToken("player-1")
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Hour).ParseAccessToken(token)
	assert.Error(t, err, "wrong secret")

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateAccessToken("player-1")
	require.NoError(t, err)
	_, err = issuer.ParseAccessToken(old)
	assert.Error(t, err, "expired")

	_, err = issuer.ParseAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"development", "production", ""} {
		logger, err := NewLogger(env)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}
