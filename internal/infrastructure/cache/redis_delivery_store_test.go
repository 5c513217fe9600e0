package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startRedis runs a disposable Redis container and returns its host and port
func startRedis(t *testing.T) RedisOptions {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return RedisOptions{Host: host, Port: port.Int(), KeyPrefix: "test:delivery:"}
}

func TestRedisDeliveryStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Redis container test in short mode")
	}
	ctx := context.Background()

	store, err := NewRedisDeliveryStore(ctx, startRedis(t))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(ctx))

	processed, err := store.IsProcessed(ctx, "delivery-1")
	require.NoError(t, err)
	assert.False(t, processed)

	marked, err := store.MarkProcessed(ctx, "delivery-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = store.MarkProcessed(ctx, "delivery-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, marked)

	processed, err = store.IsProcessed(ctx, "delivery-1")
	require.NoError(t, err)
	assert.True(t, processed)

	_, err = store.MarkProcessed(ctx, "delivery-2", time.Second)
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		processed, err := store.IsProcessed(ctx, "delivery-2")
		return err == nil && !processed
	}, 5*time.Second, 100*time.Millisecond)
}

func TestNewRedisDeliveryStore_Unreachable(t *testing.T) {
	_, err := NewRedisDeliveryStore(context.Background(), RedisOptions{
		Host:        "127.0.0.1",
		Port:        1,
		DialTimeout: time.Second,
	})
	assert.Error(t, err)
}
