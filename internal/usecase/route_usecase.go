package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain/repository"
	"github.com/geoquery-service/internal/pkg/errors"
	"github.com/geoquery-service/internal/pkg/metrics"
	"github.com/geoquery-service/internal/pkg/utils"
	"github.com/geoquery-service/internal/usecase/dto"
)

// RouteUseCase - поиск кратчайшего маршрута между двумя точками
type RouteUseCase struct {
	streetMap StreetMap
	cacheRepo repository.CacheRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
	timeout   time.Duration
	cacheTTL  time.Duration
}

// NewRouteUseCase - создание нового RouteUseCase
func NewRouteUseCase(
	streetMap StreetMap,
	cacheRepo repository.CacheRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	timeout time.Duration,
	cacheTTL time.Duration,
) *RouteUseCase {
	return &RouteUseCase{
		streetMap: streetMap,
		cacheRepo: cacheRepo,
		metrics:   m,
		logger:    logger,
		timeout:   timeout,
		cacheTTL:  cacheTTL,
	}
}

// Route - маршрут между ближайшими к точкам узлами. UNSOLVABLE и TIMEOUT
// возвращаются как обычный ответ
func (uc *RouteUseCase) Route(ctx context.Context, req dto.RouteRequest) (*dto.RouteResponse, error) {
	if req.Start == nil || req.End == nil {
		return nil, errors.ErrInvalidRequest.WithMessage("Both start and end are required")
	}
	if !utils.ValidateCoordinates(req.Start.Lat, req.Start.Lon) {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{"point": "start"})
	}
	if !utils.ValidateCoordinates(req.End.Lat, req.End.Lon) {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{"point": "end"})
	}

	// 1. Привязка концов к графу
	start, err := snap(uc.streetMap, req.Start.Lat, req.Start.Lon)
	if err != nil {
		return nil, err
	}
	goal, err := snap(uc.streetMap, req.End.Lat, req.End.Lon)
	if err != nil {
		return nil, err
	}

	// 2. Кеш
	cached, err := uc.cacheRepo.GetRoute(ctx, start.ID, goal.ID)
	if err != nil {
		uc.logger.Warn("Failed to get route from cache", zap.Error(err))
	}
	if cached != nil {
		uc.metrics.RouteCacheHit()
		return &dto.RouteResponse{Route: *cached, Cached: true}, nil
	}

	// 3. Поиск
	route, err := uc.streetMap.Route(start.ID, goal.ID, uc.budget(ctx))
	if err != nil {
		uc.logger.Error("Route search failed",
			zap.Int64("start", start.ID),
			zap.Int64("goal", goal.ID),
			zap.Error(err))
		return nil, fmt.Errorf("route %d -> %d: %w", start.ID, goal.ID, err)
	}

	elapsed := time.Duration(route.ElapsedMs * float64(time.Millisecond))
	uc.metrics.ObserveRoute(route.Outcome, route.ExploredStates, elapsed)
	uc.logger.Debug("Route search finished",
		zap.String("outcome", string(route.Outcome)),
		zap.Int("explored", route.ExploredStates),
		zap.Duration("elapsed", elapsed))

	// 4. Сохранение, TIMEOUT зависит от нагрузки и не кешируется
	if route.Outcome.Cacheable() {
		if err := uc.cacheRepo.SetRoute(ctx, route, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache route", zap.Error(err))
		}
	}

	return &dto.RouteResponse{Route: *route}, nil
}

// budget - время на поиск: настроенный таймаут, но не дольше дедлайна запроса
func (uc *RouteUseCase) budget(ctx context.Context) time.Duration {
	timeout := uc.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = max(left, 0)
		}
	}
	return timeout
}
