package version_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learning-catalog/internal/domain"
	redisRepo "github.com/learning-catalog/internal/repository/redis"
	"github.com/learning-catalog/internal/worker"
	"github.com/learning-catalog/internal/worker/version"
)

const testGroup = "catalog-version-workers"

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	return m.Called(ctx, stream, group, messageIDs).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

// fakeRecorder records versioned kinds and fails for one resource id.
type fakeRecorder struct {
	mu      sync.Mutex
	failFor int64
	events  []*domain.ResourceSavedEvent
}

func (f *fakeRecorder) Record(_ context.Context, e *domain.ResourceSavedEvent) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ResourceID == f.failFor {
		return false, stderrors.New("database unavailable")
	}
	f.events = append(f.events, e)
	return e.ResourceType != "sessionway", nil
}

func (f *fakeRecorder) heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failFor = 0
}

func (f *fakeRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func eventJSON(t *testing.T, id int64, typ string) string {
	data, err := json.Marshal(domain.ResourceSavedEvent{
		EventID:      uuid.New(),
		ResourceID:   id,
		ResourceType: typ,
		Snapshot:     domain.ResourceSnapshot{Name: "Jardinage", Slug: "jardinage"},
	})
	require.NoError(t, err)
	return string(data)
}

func TestVersionWorker_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("acks recorded and malformed messages, keeps failures pending", func(t *testing.T) {
		stream := &MockStreamRepository{}
		recorder := &fakeRecorder{failFor: 3}
		w := version.NewVersionWorker(stream, recorder, testGroup, 10, zap.NewNop())

		stream.On("ConsumeBatch", ctx, domain.StreamResourceSaved, testGroup, w.ConsumerName(), int64(10)).
			Return([]domain.StreamMessage{
				{ID: "1-0", Data: eventJSON(t, 1, "way")},
				{ID: "2-0", Data: "not json"},
				{ID: "3-0", Data: eventJSON(t, 3, "wiki")},
				{ID: "4-0", Data: eventJSON(t, 4, "sessionway")},
			}, nil)
		stream.On("AckMessages", ctx, domain.StreamResourceSaved, testGroup, []string{"1-0", "2-0", "4-0"}).Return(nil)

		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 4, processed)
		assert.Equal(t, 2, recorder.count())
		stream.AssertExpectations(t)
	})

	t.Run("empty stream", func(t *testing.T) {
		stream := &MockStreamRepository{}
		w := version.NewVersionWorker(stream, &fakeRecorder{}, testGroup, 0, zap.NewNop())
		stream.On("ConsumeBatch", ctx, domain.StreamResourceSaved, testGroup, w.ConsumerName(), int64(20)).
			Return([]domain.StreamMessage{}, nil)

		processed, err := w.ProcessBatch(ctx)

		require.NoError(t, err)
		assert.Zero(t, processed)
		stream.AssertNotCalled(t, "AckMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("consume error", func(t *testing.T) {
		stream := &MockStreamRepository{}
		w := version.NewVersionWorker(stream, &fakeRecorder{}, testGroup, 5, zap.NewNop())
		stream.On("ConsumeBatch", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, stderrors.New("connection refused"))

		_, err := w.ProcessBatch(ctx)

		assert.Error(t, err)
	})
}

func TestVersionWorker_EndToEnd(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zap.NewNop()
	streams := redisRepo.NewStreamRepository(client, logger)
	recorder := &fakeRecorder{}
	manager := worker.NewWorkerManager(logger)
	require.NoError(t, manager.Register(version.NewVersionWorker(streams, recorder, testGroup, 10, logger)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// events published before the group exists are still delivered
	require.NoError(t, streams.PublishToStream(ctx, domain.StreamResourceSaved, json.RawMessage(eventJSON(t, 1, "way"))))
	require.NoError(t, manager.Start(ctx))
	require.NoError(t, streams.PublishToStream(ctx, domain.StreamResourceSaved, json.RawMessage(eventJSON(t, 2, "wiki"))))

	assert.Eventually(t, func() bool { return recorder.count() == 2 }, 5*time.Second, 20*time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, manager.Stop(stopCtx))

	pending, err := client.XPending(context.Background(), domain.StreamResourceSaved, testGroup).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestVersionWorker_RetriesFailedRecords(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	streams := redisRepo.NewStreamRepository(client, zap.NewNop(), redisRepo.WithClaimMinIdle(0))
	recorder := &fakeRecorder{failFor: 3}
	w := version.NewVersionWorker(streams, recorder, testGroup, 10, zap.NewNop())

	require.NoError(t, streams.CreateConsumerGroup(ctx, domain.StreamResourceSaved, testGroup))
	require.NoError(t, streams.PublishToStream(ctx, domain.StreamResourceSaved, json.RawMessage(eventJSON(t, 3, "wiki"))))

	processed, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Zero(t, recorder.count())

	// still failing: handed out again and left pending
	processed, err = w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Zero(t, recorder.count())

	recorder.heal()

	processed, err = w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, recorder.count())

	pending, err := client.XPending(ctx, domain.StreamResourceSaved, testGroup).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestVersionWorker_TakesOverEventsOfStoppedConsumer(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	streams := redisRepo.NewStreamRepository(client, zap.NewNop(), redisRepo.WithClaimMinIdle(0))
	require.NoError(t, streams.CreateConsumerGroup(ctx, domain.StreamResourceSaved, testGroup))
	require.NoError(t, streams.PublishToStream(ctx, domain.StreamResourceSaved, json.RawMessage(eventJSON(t, 8, "way"))))

	// a previous process read the event and exited before acking it
	batch, err := streams.ConsumeBatch(ctx, domain.StreamResourceSaved, testGroup, "old-host-1", 10)
	require.NoError(t, err)
	require.Len(t, batch, 1)

	recorder := &fakeRecorder{}
	w := version.NewVersionWorker(streams, recorder, testGroup, 10, zap.NewNop())

	processed, err := w.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, recorder.count())

	pending, err := client.XPending(ctx, domain.StreamResourceSaved, testGroup).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}
