package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/domain/repository"
	"github.com/geoquery-service/internal/repository/cache"
)

func setupCache(t *testing.T) repository.CacheRepository {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 1})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, "route:1:3", "route:1:4", "stats:current")
	t.Cleanup(func() { client.Close() })

	return cache.NewCacheRepository(cache.NewRedisFromClient(client, zap.NewNop()))
}

func TestCacheRepository_Route(t *testing.T) {
	repo := setupCache(t)
	ctx := context.Background()

	miss, err := repo.GetRoute(ctx, 1, 3)
	require.NoError(t, err)
	assert.Nil(t, miss)

	route := &domain.Route{
		Outcome:        domain.RouteSolved,
		StartNodeID:    1,
		GoalNodeID:     3,
		NodeIDs:        []int64{1, 2, 3},
		Points:         []domain.Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}, {Lat: 3, Lon: 3}},
		DistanceMeters: 1991.5,
	}
	require.NoError(t, repo.SetRoute(ctx, route, time.Minute))

	got, err := repo.GetRoute(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, route, got)
}

func TestCacheRepository_TimeoutNotCached(t *testing.T) {
	repo := setupCache(t)
	ctx := context.Background()

	require.NoError(t, repo.SetRoute(ctx, &domain.Route{Outcome: domain.RouteTimeout, StartNodeID: 1, GoalNodeID: 4}, time.Minute))

	exists, err := repo.Exists(ctx, "route:1:4")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCacheRepository_Stats(t *testing.T) {
	repo := setupCache(t)
	ctx := context.Background()

	stats := &domain.Statistics{Nodes: 10, Edges: 20, Source: "test", LoadedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, repo.SetStats(ctx, stats, time.Minute))

	got, err := repo.GetStats(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, stats.LoadedAt.Equal(got.LoadedAt))
	got.LoadedAt = stats.LoadedAt
	assert.Equal(t, stats, got)

	require.NoError(t, repo.Delete(ctx, "stats:current"))
	got, err = repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
