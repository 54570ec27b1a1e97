//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/m04kA/SMC-CourtBookingService/internal/cache"
	redisstore "github.com/m04kA/SMC-CourtBookingService/internal/infra/cache/redis"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start Redis container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client, err := redisstore.NewClient(ctx, startRedis(t), "", 0)
	require.NoError(t, err)
	defer client.Close()

	store := redisstore.NewStore(client)

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	got, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	ttl, err := client.TTL(ctx, "k").Result()
	require.NoError(t, err)
	assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 2)
}

func TestStore_BacksGenericCache(t *testing.T) {
	ctx := context.Background()
	client, err := redisstore.NewClient(ctx, startRedis(t), "", 0)
	require.NoError(t, err)
	defer client.Close()

	c := cache.New[[]int64](redisstore.NewStore(client), "courts")

	loads := 0
	load := func(context.Context) ([]int64, error) {
		loads++
		return []int64{10, 11}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrLoad(ctx, "bookings:1:2024-06-01", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, []int64{10, 11}, got)
	}
	assert.Equal(t, 1, loads)

	require.NoError(t, c.Invalidate(ctx, "bookings:1:2024-06-01"))
	_, err = c.GetOrLoad(ctx, "bookings:1:2024-06-01", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}
