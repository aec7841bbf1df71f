// Package popularity applies location selections published by any replica to
// the local name index.
package popularity

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/domain/repository"
	"github.com/geoquery-service/internal/pkg/metrics"
	"github.com/geoquery-service/internal/worker"
)

const cleanupTimeout = 5 * time.Second

// HitRecorder - индекс, к которому применяются выборы локаций
type HitRecorder interface {
	RecordHit(name string) error
}

// Worker читает стрим событий популярности. У каждой реплики своя consumer
// group, поэтому каждое событие применяется на всех репликах
type Worker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	recorder     HitRecorder
	metrics      *metrics.Metrics
	stream       string
	consumerName string

	prepared atomic.Bool
	running  atomic.Bool
}

// NewWorker создает новый Worker. Группа реплики получает имя <group>:<hostname>-<pid>
func NewWorker(
	streamRepo repository.StreamRepository,
	recorder HitRecorder,
	m *metrics.Metrics,
	stream string,
	group string,
	logger *zap.Logger,
) *Worker {
	consumerName := InstanceName()

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("popularity", fmt.Sprintf("%s:%s", group, consumerName), logger),
		streamRepo:   streamRepo,
		recorder:     recorder,
		metrics:      m,
		stream:       stream,
		consumerName: consumerName,
	}
}

// InstanceName - имя реплики в виде <hostname>-<pid>
func InstanceName() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, os.Getpid())
}

// Prepare создает группу реплики. Группа читает события, опубликованные после
// ее создания, поэтому Prepare вызывается до того, как сервер начнет принимать запросы
func (w *Worker) Prepare(ctx context.Context) error {
	if w.prepared.Load() {
		return nil
	}
	if err := w.streamRepo.CreateConsumerGroup(ctx, w.stream, w.ConsumerGroup()); err != nil {
		w.Logger().Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	w.prepared.Store(true)
	return nil
}

// Running сообщает, читает ли воркер стрим в данный момент
func (w *Worker) Running() bool {
	return w.running.Load()
}

// Start запускает воркер и блокируется до остановки
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting popularity worker",
		zap.String("stream", w.stream),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.Prepare(ctx); err != nil {
		return err
	}
	defer w.cleanup()

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(consumeCtx, w.stream, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	w.running.Store(true)
	defer w.running.Store(false)

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream closed")
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

func (w *Worker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.LocationHitEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || !event.IsValid() {
		logger.Warn("Invalid popularity event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.metrics.StreamEvent("invalid")
		w.ack(ctx, msg.ID)
		return
	}

	if err := w.recorder.RecordHit(event.Name); err != nil {
		logger.Debug("Location from event is not indexed",
			zap.String("name", event.Name),
			zap.String("instance", event.Instance))
		w.metrics.StreamEvent("unknown_name")
	} else {
		w.metrics.StreamEvent("applied")
		w.metrics.PopularityHit("stream")
	}

	w.ack(ctx, msg.ID)
}

func (w *Worker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, w.stream, w.ConsumerGroup(), id); err != nil {
		w.Logger().Warn("Failed to ack message", zap.String("message_id", id), zap.Error(err))
	}
}

// cleanup удаляет группу реплики, иначе стрим копит группы перезапущенных процессов
func (w *Worker) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	if err := w.streamRepo.DeleteConsumerGroup(ctx, w.stream, w.ConsumerGroup()); err != nil {
		w.Logger().Warn("Failed to delete consumer group",
			zap.String("consumer_group", w.ConsumerGroup()),
			zap.Error(err))
	}
}
