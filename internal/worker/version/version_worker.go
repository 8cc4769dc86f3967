package version

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/worker"
	"go.uber.org/zap"
)

const (
	defaultBatchSize = 20
	emptyQueueSleep  = 100 * time.Millisecond
	errorSleep       = time.Second
)

// Recorder writes the version carried by a saved event
type Recorder interface {
	Record(ctx context.Context, event *domain.ResourceSavedEvent) (bool, error)
}

// VersionWorker turns resource-saved events into version history
type VersionWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	recorder   Recorder
	batchSize  int
}

func NewVersionWorker(
	streamRepo repository.StreamRepository,
	recorder Recorder,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *VersionWorker {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &VersionWorker{
		BaseWorker: worker.NewBaseWorker("resource-versions", consumerGroup, logger),
		streamRepo: streamRepo,
		recorder:   recorder,
		batchSize:  batchSize,
	}
}

func (w *VersionWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting version worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamResourceSaved, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.ProcessBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.sleep(ctx, errorSleep)
				continue
			}
			if processed == 0 {
				w.sleep(ctx, emptyQueueSleep)
			}
		}
	}
}

// ProcessBatch reads one batch, records a version per event and acknowledges
// what was handled. Malformed messages are acknowledged and dropped. Events
// whose version could not be stored stay unacked and come back in a later
// batch once the stream's claim idle time has passed. It returns the number
// of messages read.
func (w *VersionWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamResourceSaved,
		w.ConsumerGroup(),
		w.ConsumerName(),
		int64(w.batchSize),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ack := make([]string, 0, len(messages))
	recorded := 0
	for _, msg := range messages {
		var event domain.ResourceSavedEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			ack = append(ack, msg.ID)
			continue
		}

		ok, err := w.recorder.Record(ctx, &event)
		if err != nil {
			logger.Error("Failed to record version",
				zap.String("message_id", msg.ID),
				zap.Int64("resource_id", event.ResourceID),
				zap.Error(err))
			continue
		}
		if ok {
			recorded++
		}
		ack = append(ack, msg.ID)
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamResourceSaved, w.ConsumerGroup(), ack); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Debug("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("recorded", recorded),
		zap.Int("acked", len(ack)))

	return len(messages), nil
}

func (w *VersionWorker) sleep(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-w.StopChan():
	case <-ctx.Done():
	}
}
