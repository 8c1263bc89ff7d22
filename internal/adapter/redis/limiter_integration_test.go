//go:build integration

package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisadapter "github.com/alanyang/listingcraft/internal/adapter/redis"
)

func TestLimiter_AdmitsBurstThenRejects(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping integration test")
	}
	ctx := context.Background()

	rdb, err := redisadapter.Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	// 3 requests per 30 seconds.
	l := redisadapter.NewLimiter(rdb, 0.1, 3)
	key := "test-" + uuid.NewString()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}
	ok, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "other-"+key)
	require.NoError(t, err)
	assert.True(t, ok)
}
