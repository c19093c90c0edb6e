package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery", 4)
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	assert.True(t, VerifyPassword(hash, "correct horse battery"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
}

func TestHashPasswordCostFallback(t *testing.T) {
	// A cost below bcrypt's minimum falls back to the default instead of
	// producing a trivially weak hash.
	hash, err := HashPassword("secret-enough", 0)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "secret-enough"))
}
