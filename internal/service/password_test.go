package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/lamenar/internal/service"
)

func TestHashPassword(t *testing.T) {
	hash, err := service.HashPassword("password123", 4)
	require.NoError(t, err)

	assert.True(t, service.CheckPassword(hash, "password123"))
	assert.False(t, service.CheckPassword(hash, "password124"))
}

func TestHashPassword_LongerThanBcryptLimit(t *testing.T) {
	long := strings.Repeat("a", 72) + "tail-one"
	hash, err := service.HashPassword(long, 4)
	require.NoError(t, err)

	assert.True(t, service.CheckPassword(hash, long))
	// Bytes past 72 still matter.
	assert.False(t, service.CheckPassword(hash, strings.Repeat("a", 72)+"tail-two"))
}

func TestHashPassword_MultibyteAtLimit(t *testing.T) {
	pw := strings.Repeat("é", 40) // 80 bytes
	hash, err := service.HashPassword(pw, 4)
	require.NoError(t, err)
	assert.True(t, service.CheckPassword(hash, pw))
}
