package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/pkg/errors"
	"github.com/geoquery-service/internal/pkg/metrics"
	"github.com/geoquery-service/internal/usecase"
	"github.com/geoquery-service/internal/usecase/dto"
	"github.com/geoquery-service/internal/worker/popularity"
)

func localSearch(sm usecase.StreetMap) *usecase.SearchUseCase {
	return usecase.NewSearchUseCase(sm, nil, metrics.New(), zap.NewNop(), usecase.SearchOptions{
		DefaultLimit: 20,
		MaxLimit:     100,
	})
}

func TestSearchUseCase_Autocomplete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns display names for the prefix", func(t *testing.T) {
		uc := localSearch(testStreetMap())

		resp, err := uc.Autocomplete(ctx, dto.AutocompleteRequest{Query: "To"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Top Dog", "Topaz Café", "Tolman Hall"}, resp.Names)
		assert.Equal(t, 3, resp.Total)
	})

	t.Run("unknown prefix is an empty list", func(t *testing.T) {
		uc := localSearch(testStreetMap())

		resp, err := uc.Autocomplete(ctx, dto.AutocompleteRequest{Query: "zzz"})
		require.NoError(t, err)
		assert.NotNil(t, resp.Names)
		assert.Empty(t, resp.Names)
	})

	t.Run("query without letters is an empty list", func(t *testing.T) {
		uc := localSearch(testStreetMap())

		resp, err := uc.Autocomplete(ctx, dto.AutocompleteRequest{Query: "123!"})
		require.NoError(t, err)
		assert.NotNil(t, resp.Names)
		assert.Empty(t, resp.Names)
		assert.Equal(t, 0, resp.Total)
	})

	t.Run("limit is capped", func(t *testing.T) {
		uc := usecase.NewSearchUseCase(testStreetMap(), nil, metrics.New(), zap.NewNop(), usecase.SearchOptions{
			DefaultLimit: 1,
			MaxLimit:     2,
		})

		resp, err := uc.Autocomplete(ctx, dto.AutocompleteRequest{Query: "to", Limit: 50})
		require.NoError(t, err)
		assert.Len(t, resp.Names, 2)

		resp, err = uc.Autocomplete(ctx, dto.AutocompleteRequest{Query: "to"})
		require.NoError(t, err)
		assert.Len(t, resp.Names, 1)
	})

	t.Run("selected locations rank first", func(t *testing.T) {
		uc := localSearch(testStreetMap())

		_, err := uc.Locations(ctx, dto.LocationsRequest{Name: "Topaz Café"})
		require.NoError(t, err)

		resp, err := uc.Autocomplete(ctx, dto.AutocompleteRequest{Query: "to", Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"Topaz Café"}, resp.Names)
	})
}

func TestSearchUseCase_Locations(t *testing.T) {
	ctx := context.Background()

	t.Run("stream disabled records the hit locally", func(t *testing.T) {
		sm := testStreetMap()
		uc := localSearch(sm)

		resp, err := uc.Locations(ctx, dto.LocationsRequest{Name: "TOP DOG"})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
		ids := []int64{resp.Locations[0].ID, resp.Locations[1].ID}
		assert.ElementsMatch(t, []int64{1, 3}, ids)
		assert.Equal(t, 1, sm.Popularity("top dog"))
	})

	t.Run("stream enabled publishes instead of recording", func(t *testing.T) {
		sm := testStreetMap()
		mockStream := &MockStreamRepository{}
		uc := usecase.NewSearchUseCase(sm, mockStream, metrics.New(), zap.NewNop(), usecase.SearchOptions{
			DefaultLimit: 20,
			MaxLimit:     100,
			Stream:       "hits",
			Instance:     "test-1",
		})

		mockStream.On("PublishToStream", mock.Anything, "hits", mock.MatchedBy(func(e domain.LocationHitEvent) bool {
			return e.Name == "top dog" && e.Instance == "test-1" && e.IsValid()
		})).Return(nil)

		resp, err := uc.Locations(ctx, dto.LocationsRequest{Name: "Top Dog"})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, 0, sm.Popularity("top dog"))
		mockStream.AssertExpectations(t)
	})

	t.Run("publish failure falls back to local", func(t *testing.T) {
		sm := testStreetMap()
		mockStream := &MockStreamRepository{}
		uc := usecase.NewSearchUseCase(sm, mockStream, metrics.New(), zap.NewNop(), usecase.SearchOptions{
			DefaultLimit: 20,
			MaxLimit:     100,
			Stream:       "hits",
		})

		mockStream.On("PublishToStream", mock.Anything, "hits", mock.Anything).Return(stderrors.New("redis down"))

		_, err := uc.Locations(ctx, dto.LocationsRequest{Name: "Tolman Hall"})
		require.NoError(t, err)
		assert.Equal(t, 1, sm.Popularity("tolman hall"))
	})

	t.Run("consumer not running records the hit locally", func(t *testing.T) {
		sm := testStreetMap()
		mockStream := &MockStreamRepository{}
		consumer := popularity.NewWorker(mockStream, sm, metrics.New(), "hits", "popularity", zap.NewNop())
		uc := usecase.NewSearchUseCase(sm, mockStream, metrics.New(), zap.NewNop(), usecase.SearchOptions{
			DefaultLimit: 20,
			MaxLimit:     100,
			Stream:       "hits",
			Consumer:     consumer,
		})

		mockStream.On("CreateConsumerGroup", mock.Anything, "hits", consumer.ConsumerGroup()).Return(stderrors.New("redis down"))
		require.Error(t, consumer.Start(ctx))

		for i := 0; i < 3; i++ {
			_, err := uc.Locations(ctx, dto.LocationsRequest{Name: "Tolman Hall"})
			require.NoError(t, err)
		}
		assert.Equal(t, 3, sm.Popularity("tolman hall"))
		mockStream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown name", func(t *testing.T) {
		mockStream := &MockStreamRepository{}
		uc := usecase.NewSearchUseCase(testStreetMap(), mockStream, metrics.New(), zap.NewNop(), usecase.SearchOptions{
			Stream: "hits",
		})

		_, err := uc.Locations(ctx, dto.LocationsRequest{Name: "Nowhere"})
		assert.ErrorIs(t, err, errors.ErrLocationNotFound)
		mockStream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	})
}
