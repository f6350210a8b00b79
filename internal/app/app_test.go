package app

import (
	"context"
	"testing"

	"feedback-dashboard/internal/config"
	"feedback-dashboard/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MemoryStore(t *testing.T) {
	cfg := &config.Config{
		StoreDriver: config.StoreMemory,
		Notifier:    config.NotifierLog,
		Timezone:    "UTC",
	}

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.IsType(t, &repository.MemoryStore{}, a.Store)
	require.NotNil(t, a.Service)

	stats, err := a.Service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalCount)
}

func TestNew_RedisNotifier(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		StoreDriver: config.StoreMemory,
		Notifier:    config.NotifierRedis,
		RedisURL:    "redis://" + mr.Addr(),
		Timezone:    "UTC",
	}

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, a.closers, 2)
	assert.NoError(t, a.Close(context.Background()))
}

func TestNew_BadRedisURL(t *testing.T) {
	cfg := &config.Config{
		StoreDriver: config.StoreMemory,
		Notifier:    config.NotifierRedis,
		RedisURL:    "://nope",
	}

	_, err := New(context.Background(), cfg)
	assert.ErrorContains(t, err, "parse REDIS_URL")
}
