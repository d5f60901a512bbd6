package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialService_GenerateCredential(t *testing.T) {
	service := NewCredentialService()

	plain, hashed, digest, err := service.GenerateCredential()
	require.NoError(t, err)

	assert.NotEmpty(t, plain)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, plain, hashed)
	assert.Len(t, digest, 64)

	t.Run("hash verifies against the plain credential", func(t *testing.T) {
		assert.True(t, service.CompareCredential(plain, hashed))
	})

	t.Run("digest matches recomputation", func(t *testing.T) {
		assert.Equal(t, digest, service.Digest(plain))
	})

	t.Run("credentials are unique", func(t *testing.T) {
		plain2, _, digest2, err := service.GenerateCredential()
		require.NoError(t, err)
		assert.NotEqual(t, plain, plain2)
		assert.NotEqual(t, digest, digest2)
	})
}

func TestCredentialService_CompareCredential(t *testing.T) {
	service := NewCredentialService()

	plain, hashed, _, err := service.GenerateCredential()
	require.NoError(t, err)

	t.Run("wrong credential", func(t *testing.T) {
		assert.False(t, service.CompareCredential("wrong", hashed))
	})

	t.Run("empty credential", func(t *testing.T) {
		assert.False(t, service.CompareCredential("", hashed))
	})

	t.Run("malformed hash", func(t *testing.T) {
		assert.False(t, service.CompareCredential(plain, "not-a-hash"))
	})
}
