package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merlin/backend/internal/auth"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("Password@123")
	require.NoError(t, err)
	assert.NotEqual(t, "Password@123", hash)

	assert.True(t, auth.CheckPassword(hash, "Password@123"))
	assert.False(t, auth.CheckPassword(hash, "password@123"))
	assert.False(t, auth.CheckPassword("not-a-hash", "Password@123"))
}
