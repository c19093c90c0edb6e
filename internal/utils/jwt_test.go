package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestNewAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "USER1234567", "user", 30)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), tok.Exp, 5*time.Second)

	claims, err := VerifyAccessToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "USER1234567", claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestNewAccessTokenRejectsForeignSubject(t *testing.T) {
	_, err := NewAccessToken(testSecret, "EVT1234567", "user", 30)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "USER1234567", "user", 30)
	require.NoError(t, err)

	_, err = VerifyAccessToken("some-other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "USER1234567", "admin", -1)
	require.NoError(t, err)

	_, err = VerifyAccessToken(testSecret, tok.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyAccessTokenGarbage(t *testing.T) {
	_, err := VerifyAccessToken(testSecret, "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
