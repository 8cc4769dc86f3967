package repository

import (
	"context"

	"github.com/learning-catalog/internal/domain"
)

// StreamRepository works with Redis Streams
type StreamRepository interface {
	// ConsumeBatch reads up to count messages for consumer, redelivering
	// messages that stayed unacked before new ones
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error)

	// AckMessage acknowledges one processed message
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// AckMessages acknowledges several messages at once
	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error

	// CreateConsumerGroup creates the group, ignoring BUSYGROUP
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream appends data as JSON to the stream
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
