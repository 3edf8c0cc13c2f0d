package security

import (
	"strings"
	"testing"

	"github.com/arbrands/storefront-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPasswordConfig() config.PasswordConfig {
	// small parameters keep the test fast
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2secret", testPasswordConfig())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("hunter2secret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Salted(t *testing.T) {
	cfg := testPasswordConfig()
	first, err := HashPassword("same-password", cfg)
	require.NoError(t, err)
	second, err := HashPassword("same-password", cfg)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashPassword_EmptyRejected(t *testing.T) {
	_, err := HashPassword("", testPasswordConfig())
	require.Error(t, err)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	_, err := VerifyPassword("whatever", "not-a-hash")
	require.ErrorIs(t, err, ErrInvalidHash)

	_, err = VerifyPassword("whatever", "$bcrypt$v=19$m=8,t=1,p=1$abc$def")
	require.ErrorIs(t, err, ErrInvalidHash)
}
