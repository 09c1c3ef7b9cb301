package redis

import (
	"context"
	"testing"

	"planets-galaxy/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLock(t *testing.T) {
	ctx := context.Background()
	lock := NewMemoryLock()

	ok, err := lock.Acquire(ctx, "milky-way", "run-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = lock.Acquire(ctx, "milky-way", "run-2")
	require.NoError(t, err)
	assert.False(t, ok, "second run must not acquire a held seed")

	ok, err = lock.Acquire(ctx, "andromeda", "run-2")
	require.NoError(t, err)
	assert.True(t, ok, "locks are per seed")

	assert.Error(t, lock.Release(ctx, "milky-way", "run-2"))
	require.NoError(t, lock.Release(ctx, "milky-way", "run-1"))

	ok, err = lock.Acquire(ctx, "milky-way", "run-3")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConnectDisabledReturnsNilClient(t *testing.T) {
	client, err := Connect(context.Background(), config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.NoError(t, client.Close())
}

func TestOptions(t *testing.T) {
	opts, err := options(config.RedisConfig{Host: "cache", Port: "6380", Password: "secret", DB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	opts, err = options(config.RedisConfig{URL: "redis://:pw@example.com:6390/3", Host: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "example.com:6390", opts.Addr)
	assert.Equal(t, 3, opts.DB)

	_, err = options(config.RedisConfig{URL: "http://nope"})
	assert.Error(t, err)
}
