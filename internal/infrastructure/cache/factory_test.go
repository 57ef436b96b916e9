package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// unreachableRedis points at a port nothing listens on
func unreachableRedis() config.RedisConfig {
	return config.RedisConfig{
		Enabled:     true,
		Host:        "127.0.0.1",
		Port:        1,
		DialTimeout: 100 * time.Millisecond,
	}
}

func TestIdempotencyStoreFactory_RedisDisabled(t *testing.T) {
	f := NewIdempotencyStoreFactory(config.RedisConfig{Enabled: false}, WithLogger(zap.NewNop()))

	store, err := f.CreateStore(context.Background())

	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
}

func TestIdempotencyStoreFactory_FallsBackWhenRedisUnreachable(t *testing.T) {
	f := NewIdempotencyStoreFactory(unreachableRedis())

	store, err := f.CreateStore(context.Background())

	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
}

func TestIdempotencyStoreFactory_NoFallback(t *testing.T) {
	f := NewIdempotencyStoreFactory(unreachableRedis(), WithInMemoryFallback(false))

	store, err := f.CreateStore(context.Background())

	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
