package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erp/fulfillment-router/internal/domain/shared"
)

// DefaultDeliveryKeyPrefix namespaces webhook delivery keys in Redis
const DefaultDeliveryKeyPrefix = "fr:webhook:delivery:"

// RedisOptions holds Redis connection settings
type RedisOptions struct {
	Host     string
	Port     int
	Password string
	DB       int
	// KeyPrefix overrides DefaultDeliveryKeyPrefix
	KeyPrefix string
	// DialTimeout bounds the connection check
	DialTimeout time.Duration
}

// RedisDeliveryStore records processed webhook deliveries in Redis so that
// every replica sees the same set
type RedisDeliveryStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisDeliveryStore connects to Redis and verifies the connection with PING
func NewRedisDeliveryStore(ctx context.Context, opts RedisOptions) (*RedisDeliveryStore, error) {
	dialTimeout := opts.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s:%d: %w", opts.Host, opts.Port, err)
	}
	return NewRedisDeliveryStoreWithClient(client, opts.KeyPrefix), nil
}

// NewRedisDeliveryStoreWithClient wraps an existing client
func NewRedisDeliveryStoreWithClient(client redis.UniversalClient, keyPrefix string) *RedisDeliveryStore {
	if keyPrefix == "" {
		keyPrefix = DefaultDeliveryKeyPrefix
	}
	return &RedisDeliveryStore{client: client, keyPrefix: keyPrefix}
}

// MarkProcessed records the delivery with SET NX and the given TTL.
// It returns false when the key already exists.
func (s *RedisDeliveryStore) MarkProcessed(ctx context.Context, deliveryID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(deliveryID), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark delivery %s: %w", deliveryID, err)
	}
	return ok, nil
}

// IsProcessed reports whether the delivery key exists
func (s *RedisDeliveryStore) IsProcessed(ctx context.Context, deliveryID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(deliveryID)).Result()
	if err != nil {
		return false, fmt.Errorf("check delivery %s: %w", deliveryID, err)
	}
	return n > 0, nil
}

// Ping checks the connection
func (s *RedisDeliveryStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client
func (s *RedisDeliveryStore) Close() error {
	return s.client.Close()
}

func (s *RedisDeliveryStore) key(deliveryID string) string {
	return s.keyPrefix + deliveryID
}

var _ shared.IdempotencyStore = (*RedisDeliveryStore)(nil)
