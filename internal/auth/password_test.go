package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash1, err := HashPassword("secret1")
	require.NoError(t, err)
	hash2, err := HashPassword("secret1")
	require.NoError(t, err)

	// Salt is randomized per call
	assert.NotEqual(t, hash1, hash2)
	assert.NotEqual(t, "secret1", hash1)

	assert.True(t, CheckPassword(hash1, "secret1"))
	assert.True(t, CheckPassword(hash2, "secret1"))
}

func TestCheckPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-digest", "secret1"))
	assert.False(t, CheckPassword("", "secret1"))
}
