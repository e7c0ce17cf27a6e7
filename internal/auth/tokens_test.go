package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("unit-test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestGeneratePair(t *testing.T) {
	m := newTestManager()

	pair, err := m.GeneratePair("user-1", "entrepreneur")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), pair.ExpiresIn)

	claims, err := m.Parse(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "entrepreneur", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	refreshClaims, err := m.Parse(pair.RefreshToken, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.UserID)
	// Refresh tokens carry no role.
	assert.Empty(t, refreshClaims.Role)
}

// TestParse_TypeConfusion: an access token must never pass as a refresh
// token, and the other way round.
func TestParse_TypeConfusion(t *testing.T) {
	m := newTestManager()
	pair, err := m.GeneratePair("user-1", "investor")
	require.NoError(t, err)

	_, err = m.Parse(pair.AccessToken, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse(pair.RefreshToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewTokenManager("a-different-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "investor")
	require.NoError(t, err)

	_, err = other.Parse(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	m := NewTokenManager("unit-test-secret", -time.Minute, 7*24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "investor")
	require.NoError(t, err)

	_, err = m.Parse(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_Garbage(t *testing.T) {
	m := newTestManager()

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Parse(raw, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}

func TestHashToken(t *testing.T) {
	hash := HashToken("some-refresh-token")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashToken("some-refresh-token"))
	assert.NotEqual(t, hash, HashToken("another-token"))
}
