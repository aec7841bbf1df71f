package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/pkg/errors"
	"github.com/geoquery-service/internal/usecase"
	"github.com/geoquery-service/internal/usecase/dto"
)

func TestNearestUseCase_Nearest(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewNearestUseCase(testStreetMap(), zap.NewNop())

	t.Run("snaps to closest routable node", func(t *testing.T) {
		resp, err := uc.Nearest(ctx, dto.NearestRequest{Lat: 37.8701, Lon: -122.2699})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.NodeID)
		assert.Equal(t, domain.Point{Lat: 37.870, Lon: -122.270}, resp.Point)
		assert.InDelta(t, 14, resp.DistanceMeters, 2)
	})

	t.Run("named node off the road network is skipped", func(t *testing.T) {
		resp, err := uc.Nearest(ctx, dto.NearestRequest{Lat: 37.850, Lon: -122.250})
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.NodeID)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		_, err := uc.Nearest(ctx, dto.NearestRequest{Lat: 91, Lon: 0})
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
	})
}

func TestNearestUseCase_EmptyIndex(t *testing.T) {
	uc := usecase.NewNearestUseCase(emptyStreetMap(), zap.NewNop())

	_, err := uc.Nearest(context.Background(), dto.NearestRequest{Lat: 1, Lon: 1})
	assert.ErrorIs(t, err, errors.ErrIndexEmpty)
}
