package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/fulfillment-router/internal/domain/shared"
	"github.com/erp/fulfillment-router/internal/infrastructure/config"
)

// DeliveryStoreFactory builds the delivery de-duplication store from configuration
type DeliveryStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// DeliveryStoreFactoryOption configures the factory
type DeliveryStoreFactoryOption func(*DeliveryStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) DeliveryStoreFactoryOption {
	return func(f *DeliveryStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the memory store
func WithInMemoryFallback(allow bool) DeliveryStoreFactoryOption {
	return func(f *DeliveryStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewDeliveryStoreFactory creates a new factory; in-memory fallback is on by default
func NewDeliveryStoreFactory(cfg config.RedisConfig, opts ...DeliveryStoreFactoryOption) *DeliveryStoreFactory {
	f := &DeliveryStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns a Redis store when Redis is enabled and reachable, otherwise the
// memory store if fallback is allowed.
func (f *DeliveryStoreFactory) CreateStore(ctx context.Context) (shared.IdempotencyStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory delivery store")
		return NewMemoryDeliveryStore(), nil
	}

	store, err := NewRedisDeliveryStore(ctx, RedisOptions{
		Host:      f.redisConfig.Host,
		Port:      f.redisConfig.Port,
		Password:  f.redisConfig.Password,
		DB:        f.redisConfig.DB,
		KeyPrefix: f.redisConfig.KeyPrefix,
	})
	if err == nil {
		f.logger.Info("Using Redis delivery store",
			zap.String("host", f.redisConfig.Host),
			zap.Int("port", f.redisConfig.Port),
		)
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for delivery de-duplication: %w", err)
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory delivery store; "+
		"redeliveries to other replicas will not be de-duplicated",
		zap.Error(err),
	)
	return NewMemoryDeliveryStore(), nil
}
