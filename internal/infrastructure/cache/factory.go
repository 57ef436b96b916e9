package cache

import (
	"context"
	"fmt"

	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// IdempotencyStoreFactory picks the idempotency store for the configured
// deployment
type IdempotencyStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// IdempotencyStoreFactoryOption configures the factory
type IdempotencyStoreFactoryOption func(*IdempotencyStoreFactory)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory store instead of failing startup. Enabled by default.
func WithInMemoryFallback(allow bool) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewIdempotencyStoreFactory creates a factory
func NewIdempotencyStoreFactory(cfg config.RedisConfig, opts ...IdempotencyStoreFactoryOption) *IdempotencyStoreFactory {
	f := &IdempotencyStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns the Redis store when Redis is enabled and reachable,
// and the in-memory store otherwise
func (f *IdempotencyStoreFactory) CreateStore(ctx context.Context) (shared.IdempotencyStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("redis disabled, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err == nil {
		f.logger.Info("using redis idempotency store", zap.String("addr", f.redisConfig.Addr()))
		return NewRedisIdempotencyStore(client, f.redisConfig.KeyPrefix), nil
	}
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("idempotency store: %w", err)
	}

	f.logger.Warn("redis unavailable, using in-memory idempotency store; replicas may send duplicate notifications",
		zap.Error(err))
	return NewInMemoryIdempotencyStore(), nil
}
