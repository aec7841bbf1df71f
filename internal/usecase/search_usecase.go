package usecase

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/domain/repository"
	"github.com/geoquery-service/internal/pkg/errors"
	"github.com/geoquery-service/internal/pkg/metrics"
	"github.com/geoquery-service/internal/pkg/utils"
	"github.com/geoquery-service/internal/streetmap"
	"github.com/geoquery-service/internal/usecase/dto"
)

// SearchOptions - параметры поиска по названиям
type SearchOptions struct {
	DefaultLimit int
	MaxLimit     int
	// Stream - имя стрима событий популярности. Пустое значение означает,
	// что выбор локации учитывается только в локальном индексе
	Stream   string
	Instance string
	// Consumer - читатель стрима этой реплики. Пока он не работает, выбор
	// учитывается локально, иначе опубликованное событие до индекса не дойдет
	Consumer ConsumerStatus
}

// ConsumerStatus - состояние читателя стрима популярности
type ConsumerStatus interface {
	Running() bool
}

// SearchUseCase - автодополнение и поиск локаций по названию
type SearchUseCase struct {
	streetMap  StreetMap
	streamRepo repository.StreamRepository
	metrics    *metrics.Metrics
	logger     *zap.Logger
	opts       SearchOptions
}

// NewSearchUseCase - создание нового SearchUseCase. streamRepo может быть nil
func NewSearchUseCase(
	streetMap StreetMap,
	streamRepo repository.StreamRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts SearchOptions,
) *SearchUseCase {
	return &SearchUseCase{
		streetMap:  streetMap,
		streamRepo: streamRepo,
		metrics:    m,
		logger:     logger,
		opts:       opts,
	}
}

// Autocomplete - названия, начинающиеся с запроса, самые популярные первыми.
// Неизвестный префикс дает пустой список
func (uc *SearchUseCase) Autocomplete(ctx context.Context, req dto.AutocompleteRequest) (*dto.AutocompleteResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = uc.opts.DefaultLimit
	}
	if limit > uc.opts.MaxLimit {
		limit = uc.opts.MaxLimit
	}

	names := uc.streetMap.LocationsByPrefix(req.Query, limit)
	uc.metrics.Autocomplete(len(names) > 0)

	return &dto.AutocompleteResponse{
		Query: req.Query,
		Names: names,
		Total: len(names),
	}, nil
}

// Locations - все локации с тем же очищенным названием. Запрос считается
// выбором локации и повышает ее популярность
func (uc *SearchUseCase) Locations(ctx context.Context, req dto.LocationsRequest) (*dto.LocationsResponse, error) {
	var (
		locs []domain.Location
		err  error
	)
	publish := uc.streamEnabled()
	if publish {
		locs, err = uc.streetMap.PeekLocations(req.Name)
	} else {
		locs, err = uc.streetMap.Locations(req.Name)
	}
	if stderrors.Is(err, streetmap.ErrLocationNotFound) {
		return nil, errors.ErrLocationNotFound.WithDetails(map[string]interface{}{"name": req.Name})
	}
	if err != nil {
		return nil, err
	}

	if publish {
		uc.publishHit(ctx, req.Name)
	} else {
		uc.metrics.PopularityHit("local")
	}

	return &dto.LocationsResponse{
		Name:      req.Name,
		Locations: locs,
		Total:     len(locs),
	}, nil
}

func (uc *SearchUseCase) streamEnabled() bool {
	if uc.streamRepo == nil || uc.opts.Stream == "" {
		return false
	}
	return uc.opts.Consumer == nil || uc.opts.Consumer.Running()
}

// publishHit публикует выбор локации для всех реплик, включая эту.
// Если стрим недоступен, выбор учитывается локально
func (uc *SearchUseCase) publishHit(ctx context.Context, name string) {
	event := domain.NewLocationHitEvent(utils.CleanName(name), uc.opts.Instance)
	err := uc.streamRepo.PublishToStream(ctx, uc.opts.Stream, event)
	if err == nil {
		uc.metrics.StreamEvent("published")
		return
	}

	uc.metrics.StreamEvent("publish_failed")
	uc.logger.Warn("Failed to publish location hit, applying locally",
		zap.String("name", name),
		zap.Error(err))

	if err := uc.streetMap.RecordHit(name); err != nil {
		uc.logger.Warn("Failed to record location hit", zap.String("name", name), zap.Error(err))
		return
	}
	uc.metrics.PopularityHit("local")
}
