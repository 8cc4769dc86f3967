package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// blockTimeout bounds how long ConsumeBatch waits for new messages.
	blockTimeout = 2 * time.Second
	// DefaultClaimMinIdle is how long a delivered message stays unacked
	// before ConsumeBatch hands it out again.
	DefaultClaimMinIdle = 30 * time.Second
)

type streamRepository struct {
	client       *redis.Client
	logger       *zap.Logger
	claimMinIdle time.Duration
}

// Option configures a stream repository
type Option func(*streamRepository)

// WithClaimMinIdle sets the idle time after which unacked messages are
// redelivered. Negative values are ignored.
func WithClaimMinIdle(d time.Duration) Option {
	return func(r *streamRepository) {
		if d >= 0 {
			r.claimMinIdle = d
		}
	}
}

// NewStreamRepository creates a StreamRepository on client
func NewStreamRepository(client *redis.Client, logger *zap.Logger, opts ...Option) repository.StreamRepository {
	r := &streamRepository{
		client:       client,
		logger:       logger,
		claimMinIdle: DefaultClaimMinIdle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateConsumerGroup creates the group at the start of the stream, creating
// the stream if needed. An existing group is not an error.
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeBatch first claims messages of the group that stayed unacked for
// longer than the claim idle time, whichever consumer they were delivered to.
// When there are none it reads up to count new messages, returning an empty
// batch when nothing arrives within the block timeout.
func (r *streamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error) {
	claimed, err := r.claimIdle(ctx, stream, group, consumer, count)
	if err != nil {
		return nil, err
	}
	if len(claimed) > 0 {
		return claimed, nil
	}

	result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    count,
		Block:    blockTimeout,
	}).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Error("Failed to read from stream",
			zap.String("stream", stream),
			zap.String("consumer", consumer),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	var messages []domain.StreamMessage
	for _, s := range result {
		messages = append(messages, r.toMessages(s.Messages)...)
	}
	return messages, nil
}

// claimIdle moves messages idle for at least claimMinIdle to consumer. This
// covers retries of this consumer's own failures as well as messages left
// behind by consumers that are gone.
func (r *streamRepository) claimIdle(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error) {
	msgs, _, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   stream,
		Group:    group,
		Consumer: consumer,
		MinIdle:  r.claimMinIdle,
		Start:    "0-0",
		Count:    count,
	}).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Error("Failed to claim pending messages",
			zap.String("stream", stream),
			zap.String("consumer", consumer),
			zap.Error(err))
		return nil, fmt.Errorf("failed to claim pending messages: %w", err)
	}
	if len(msgs) > 0 {
		r.logger.Info("Claimed pending messages",
			zap.String("stream", stream),
			zap.String("consumer", consumer),
			zap.Int("count", len(msgs)))
	}
	return r.toMessages(msgs), nil
}

func (r *streamRepository) toMessages(msgs []redis.XMessage) []domain.StreamMessage {
	messages := make([]domain.StreamMessage, 0, len(msgs))
	for _, msg := range msgs {
		data, ok := msg.Values["data"].(string)
		if !ok {
			r.logger.Warn("Message does not contain 'data' field",
				zap.String("message_id", msg.ID))
		}
		messages = append(messages, domain.StreamMessage{ID: msg.ID, Data: data})
	}
	return messages
}

// AckMessage acknowledges one processed message
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return r.AckMessages(ctx, stream, group, []string{messageID})
}

// AckMessages acknowledges several messages in one XACK
func (r *streamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}

	if err := r.client.XAck(ctx, stream, group, messageIDs...).Err(); err != nil {
		r.logger.Error("Failed to acknowledge messages",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Strings("message_ids", messageIDs),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge messages: %w", err)
	}

	r.logger.Debug("Messages acknowledged",
		zap.String("stream", stream),
		zap.Int("count", len(messageIDs)))
	return nil
}

// PublishToStream appends data, JSON encoded, under the "data" field
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("Failed to marshal data",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
