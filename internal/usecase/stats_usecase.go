package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/domain/repository"
	"github.com/geoquery-service/internal/pkg/metrics"
)

// StatsUseCase обрабатывает бизнес-логику для статистики
type StatsUseCase struct {
	streetMap StreetMap
	cacheRepo repository.CacheRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewStatsUseCase создает новый экземпляр StatsUseCase
func NewStatsUseCase(
	streetMap StreetMap,
	cacheRepo repository.CacheRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		streetMap: streetMap,
		cacheRepo: cacheRepo,
		metrics:   m,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// GetStatistics возвращает статистику, используя кеш когда возможно
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetStats(ctx)
	if err == nil && cached != nil {
		uc.logger.Debug("Statistics fetched from cache")
		return cached, nil
	}

	if err != nil {
		uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
	}

	// 2. Считаем по загруженному графу
	stats := uc.streetMap.Stats()
	uc.metrics.SetMapStats(stats)

	// 3. Кешируем
	if err := uc.cacheRepo.SetStats(ctx, &stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache stats", zap.Error(err))
		// Не возвращаем ошибку, т.к. данные уже получены
	}

	return &stats, nil
}

// RefreshStatistics пересчитывает статистику и обновляет кеш
func (uc *StatsUseCase) RefreshStatistics(ctx context.Context) (*domain.Statistics, error) {
	uc.logger.Info("Refreshing statistics")

	stats := uc.streetMap.Stats()
	uc.metrics.SetMapStats(stats)

	if err := uc.cacheRepo.SetStats(ctx, &stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache refreshed stats", zap.Error(err))
	}

	return &stats, nil
}
