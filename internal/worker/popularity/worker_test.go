package popularity_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/pkg/metrics"
	"github.com/geoquery-service/internal/worker/popularity"
)

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

type fakeRecorder struct {
	mu    sync.Mutex
	known map[string]bool
	hits  map[string]int
}

func newFakeRecorder(names ...string) *fakeRecorder {
	r := &fakeRecorder{known: map[string]bool{}, hits: map[string]int{}}
	for _, n := range names {
		r.known[n] = true
	}
	return r
}

func (r *fakeRecorder) RecordHit(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.known[name] {
		return errors.New("unknown")
	}
	r.hits[name]++
	return nil
}

func (r *fakeRecorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[name]
}

func eventMessage(t *testing.T, id, name string) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(domain.NewLocationHitEvent(name, "replica-a"))
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func TestWorker_ConsumerGroupPerReplica(t *testing.T) {
	w := popularity.NewWorker(&MockStreamRepository{}, newFakeRecorder(), metrics.New(), "hits", "popularity", zap.NewNop())

	assert.Equal(t, "popularity", w.Name())
	assert.True(t, strings.HasPrefix(w.ConsumerGroup(), "popularity:"))
	assert.True(t, strings.HasSuffix(w.ConsumerGroup(), popularity.InstanceName()))
}

func TestWorker_AppliesEvents(t *testing.T) {
	repo := &MockStreamRepository{}
	recorder := newFakeRecorder("top dog")
	w := popularity.NewWorker(repo, recorder, metrics.New(), "hits", "popularity", zap.NewNop())
	group := w.ConsumerGroup()

	ch := make(chan domain.StreamMessage, 4)
	ch <- eventMessage(t, "1-0", "top dog")
	ch <- domain.StreamMessage{ID: "2-0", Data: "{not json"}
	ch <- eventMessage(t, "3-0", "nowhere")
	ch <- eventMessage(t, "4-0", "top dog")
	close(ch)

	repo.On("CreateConsumerGroup", mock.Anything, "hits", group).Return(nil)
	repo.On("ConsumeStream", mock.Anything, "hits", group, mock.Anything).Return((<-chan domain.StreamMessage)(ch), nil)
	repo.On("AckMessage", mock.Anything, "hits", group, mock.Anything).Return(nil)
	repo.On("DeleteConsumerGroup", mock.Anything, "hits", group).Return(nil)

	err := w.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, recorder.count("top dog"))
	repo.AssertNumberOfCalls(t, "AckMessage", 4)
	repo.AssertCalled(t, "DeleteConsumerGroup", mock.Anything, "hits", group)
}

func TestWorker_Stop(t *testing.T) {
	repo := &MockStreamRepository{}
	w := popularity.NewWorker(repo, newFakeRecorder(), metrics.New(), "hits", "popularity", zap.NewNop())

	ch := make(chan domain.StreamMessage)
	repo.On("CreateConsumerGroup", mock.Anything, "hits", mock.Anything).Return(nil)
	repo.On("ConsumeStream", mock.Anything, "hits", mock.Anything, mock.Anything).Return((<-chan domain.StreamMessage)(ch), nil)
	repo.On("DeleteConsumerGroup", mock.Anything, "hits", mock.Anything).Return(errors.New("redis down"))

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
	repo.AssertNumberOfCalls(t, "DeleteConsumerGroup", 1)
}

func TestWorker_CreateGroupFails(t *testing.T) {
	repo := &MockStreamRepository{}
	w := popularity.NewWorker(repo, newFakeRecorder(), metrics.New(), "hits", "popularity", zap.NewNop())

	repo.On("CreateConsumerGroup", mock.Anything, "hits", mock.Anything).Return(errors.New("redis down"))

	err := w.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, w.Running())
	repo.AssertNotCalled(t, "ConsumeStream", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorker_PrepareCreatesGroupOnce(t *testing.T) {
	repo := &MockStreamRepository{}
	w := popularity.NewWorker(repo, newFakeRecorder("top dog"), metrics.New(), "hits", "popularity", zap.NewNop())
	group := w.ConsumerGroup()

	ch := make(chan domain.StreamMessage)
	repo.On("CreateConsumerGroup", mock.Anything, "hits", group).Return(nil)
	repo.On("ConsumeStream", mock.Anything, "hits", group, mock.Anything).Return((<-chan domain.StreamMessage)(ch), nil)
	repo.On("DeleteConsumerGroup", mock.Anything, "hits", group).Return(nil)

	require.NoError(t, w.Prepare(context.Background()))
	assert.False(t, w.Running())

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	require.Eventually(t, w.Running, 5*time.Second, 10*time.Millisecond)
	repo.AssertNumberOfCalls(t, "CreateConsumerGroup", 1)

	close(ch)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
	assert.False(t, w.Running())
}

func TestWorker_PrepareFails(t *testing.T) {
	repo := &MockStreamRepository{}
	w := popularity.NewWorker(repo, newFakeRecorder(), metrics.New(), "hits", "popularity", zap.NewNop())

	repo.On("CreateConsumerGroup", mock.Anything, "hits", mock.Anything).Return(errors.New("redis down"))

	assert.Error(t, w.Prepare(context.Background()))
	assert.False(t, w.Running())
}
