package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedisStore(t *testing.T) {
	url := setupRedis(t)
	ctx := context.Background()

	store, err := NewRedisStore(ctx, slog.Default(), url, time.Minute)
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })

	key := FormKey("f-1").ForUser("u1")

	_, err = store.Get(ctx, key)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, Save(ctx, store, key, snapshot{Name: "redis"}))

	var got snapshot

	found, err := Load(ctx, store, key, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "redis", got.Name)

	ttl, err := store.client.TTL(ctx, redisKeyPrefix+string(key)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Get(ctx, key)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNewRedisStoreInvalidURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), slog.Default(), "http://nope", 0)
	require.Error(t, err)
}
