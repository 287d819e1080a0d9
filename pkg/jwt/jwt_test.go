package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/TheJisus28/bookstore-api/pkg/errors"
)

func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)

	pair, err := m.GenerateToken("7c9e6679-7425-40de-944b-e07fc1f90ae7", "alice@example.com", "customer")
	require.NoError(t, err)
	assert.EqualValues(t, 3600, pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", claims.UserID())
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, AccessToken, claims.Type)
	assert.Greater(t, RemainingTTL(claims), 59*time.Minute)
}

func TestManager_TokenTypesAreNotInterchangeable(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)
	pair, err := m.GenerateToken("u1", "a@b.c", "admin")
	require.NoError(t, err)

	_, err = m.ParseToken(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = m.ParseRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	issuerA := NewManager("secret-a", time.Hour, time.Hour)
	issuerB := NewManager("secret-b", time.Hour, time.Hour)

	pair, err := issuerA.GenerateToken("u1", "a@b.c", "customer")
	require.NoError(t, err)

	_, err = issuerB.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestManager_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, time.Hour)
	pair, err := m.GenerateToken("u1", "a@b.c", "customer")
	require.NoError(t, err)

	_, err = m.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestManager_RefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)
	pair, err := m.GenerateToken("u1", "a@b.c", "admin")
	require.NoError(t, err)

	access, claims, err := m.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID())

	parsed, err := m.ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, "admin", parsed.Role)

	_, _, err = m.RefreshAccessToken(pair.AccessToken)
	assert.Error(t, err)
}
