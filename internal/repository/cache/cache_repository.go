package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/domain/repository"
)

const statsKey = "stats:current"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func routeKey(startID, goalID int64) string {
	return fmt.Sprintf("route:%d:%d", startID, goalID)
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetRoute получает маршрут из кеша, данные хранятся сжатыми zstd
func (r *cacheRepository) GetRoute(ctx context.Context, startID, goalID int64) (*domain.Route, error) {
	data, err := r.Get(ctx, routeKey(startID, goalID))
	if err != nil || data == nil {
		return nil, err
	}

	var route domain.Route
	if err := unmarshalCompressed(data, &route); err != nil {
		r.logger.Error("Failed to decode route from cache", zap.Error(err))
		return nil, fmt.Errorf("decode route: %w", err)
	}
	return &route, nil
}

// SetRoute сохраняет маршрут. Результаты с истекшим временем поиска не сохраняются
func (r *cacheRepository) SetRoute(ctx context.Context, route *domain.Route, ttl time.Duration) error {
	if !route.Outcome.Cacheable() {
		return nil
	}

	data, err := marshalCompressed(route)
	if err != nil {
		r.logger.Error("Failed to encode route", zap.Error(err))
		return fmt.Errorf("encode route: %w", err)
	}
	return r.Set(ctx, routeKey(route.StartNodeID, route.GoalNodeID), data, ttl)
}

// GetStats получает статистику из кеша
func (r *cacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	data, err := r.Get(ctx, statsKey)
	if err != nil || data == nil {
		return nil, err
	}

	var stats domain.Statistics
	if err := unmarshalCompressed(data, &stats); err != nil {
		r.logger.Error("Failed to decode stats from cache", zap.Error(err))
		return nil, fmt.Errorf("decode stats: %w", err)
	}

	return &stats, nil
}

// SetStats сохраняет статистику в кеше
func (r *cacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	data, err := marshalCompressed(stats)
	if err != nil {
		r.logger.Error("Failed to encode stats", zap.Error(err))
		return fmt.Errorf("encode stats: %w", err)
	}

	return r.Set(ctx, statsKey, data, ttl)
}
