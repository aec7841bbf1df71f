package usecase

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/pkg/errors"
	"github.com/geoquery-service/internal/pkg/utils"
	"github.com/geoquery-service/internal/streetmap"
	"github.com/geoquery-service/internal/usecase/dto"
)

// NearestUseCase - поиск ближайшего узла дорожного графа
type NearestUseCase struct {
	streetMap StreetMap
	logger    *zap.Logger
}

// NewNearestUseCase - создание нового NearestUseCase
func NewNearestUseCase(streetMap StreetMap, logger *zap.Logger) *NearestUseCase {
	return &NearestUseCase{
		streetMap: streetMap,
		logger:    logger,
	}
}

// Nearest - ближайший к точке узел, участвующий хотя бы в одном ребре
func (uc *NearestUseCase) Nearest(ctx context.Context, req dto.NearestRequest) (*dto.NearestResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	node, err := snap(uc.streetMap, req.Lat, req.Lon)
	if err != nil {
		uc.logger.Warn("Failed to find nearest node",
			zap.Float64("lat", req.Lat),
			zap.Float64("lon", req.Lon),
			zap.Error(err))
		return nil, err
	}

	return &dto.NearestResponse{
		NodeID:         node.ID,
		Point:          domain.Point{Lat: node.Lat, Lon: node.Lon},
		DistanceMeters: utils.HaversineMeters(req.Lat, req.Lon, node.Lat, node.Lon),
	}, nil
}

// snap привязывает координаты к ближайшему узлу графа
func snap(sm StreetMap, lat, lon float64) (domain.Node, error) {
	id, err := sm.Closest(lat, lon)
	if stderrors.Is(err, streetmap.ErrEmpty) {
		return domain.Node{}, errors.ErrIndexEmpty
	}
	if err != nil {
		return domain.Node{}, fmt.Errorf("closest node: %w", err)
	}

	node, ok := sm.Node(id)
	if !ok {
		return domain.Node{}, fmt.Errorf("closest node %d: %w", id, streetmap.ErrNodeNotFound)
	}
	return node, nil
}
