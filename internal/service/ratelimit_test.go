package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/lamenar/internal/service"
)

func TestTokenBucket_AllowsUpToCapacity(t *testing.T) {
	tb := service.NewTokenBucket(t.Context(), 1, 3) // rate=1/s, capacity=3

	for i := 0; i < 3; i++ {
		require.True(t, tb.Allow("test-key"), "request %d should be allowed", i+1)
	}

	assert.False(t, tb.Allow("test-key"), "4th request should be denied (bucket empty)")
}

func TestTokenBucket_DifferentKeysAreIndependent(t *testing.T) {
	tb := service.NewTokenBucket(t.Context(), 1, 1)

	require.True(t, tb.Allow("ip-a"))
	require.False(t, tb.Allow("ip-a"))

	// ip-b has its own bucket.
	assert.True(t, tb.Allow("ip-b"))
	assert.Equal(t, 2, tb.Len())
}

func TestTokenBucket_ZeroRateNeverRefills(t *testing.T) {
	tb := service.NewTokenBucket(t.Context(), 0, 2)

	require.True(t, tb.Allow("k"))
	require.True(t, tb.Allow("k"))
	assert.False(t, tb.Allow("k"), "third request should be denied (no refill)")
}
