package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/streetmap"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetRoute(ctx context.Context, startID, goalID int64) (*domain.Route, error) {
	args := m.Called(ctx, startID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockCacheRepository) SetRoute(ctx context.Context, route *domain.Route, ttl time.Duration) error {
	args := m.Called(ctx, route, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) DeleteConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// testStreetMap builds a small street map around Berkeley:
// a two-way square 1-2-3-4 and a oneway spur 1 -> 6.
// Node 5 is named but not on any road.
func testStreetMap() *streetmap.StreetMap {
	return streetmap.Build(&domain.MapData{
		Source: "test",
		Nodes: []domain.Node{
			{ID: 1, Lat: 37.870, Lon: -122.270, Name: "Top Dog"},
			{ID: 2, Lat: 37.870, Lon: -122.260},
			{ID: 3, Lat: 37.860, Lon: -122.260, Name: "top dog!"},
			{ID: 4, Lat: 37.860, Lon: -122.270, Name: "Topaz Café"},
			{ID: 5, Lat: 37.850, Lon: -122.250, Name: "Tolman Hall"},
			{ID: 6, Lat: 37.880, Lon: -122.280},
		},
		Ways: []domain.Way{
			{ID: 10, NodeIDs: []int64{1, 2, 3}, Highway: "residential"},
			{ID: 11, NodeIDs: []int64{3, 4, 1}, Highway: "residential"},
			{ID: 12, NodeIDs: []int64{1, 6}, Highway: "primary", Oneway: true},
		},
	}, zap.NewNop())
}

func emptyStreetMap() *streetmap.StreetMap {
	return streetmap.Build(&domain.MapData{Source: "test"}, zap.NewNop())
}
