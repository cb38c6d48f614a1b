package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hash and compare round trip", func(t *testing.T) {
		t.Parallel()

		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.NotEqual(t, "correct horse battery staple", hash)

		assert.NoError(t, hasher.Compare(hash, "correct horse battery staple"))
	})

	t.Run("wrong password fails comparison", func(t *testing.T) {
		t.Parallel()

		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)

		assert.Error(t, hasher.Compare(hash, "incorrect horse"))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		t.Parallel()

		first, err := hasher.Hash("same password")
		require.NoError(t, err)
		second, err := hasher.Hash("same password")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
