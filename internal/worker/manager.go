package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// WorkerManager runs the registered workers and stops them together.
// Errors returned by workers are collected and reported by Stop.
type WorkerManager struct {
	workers []Worker
	logger  *zap.Logger
	wg      sync.WaitGroup

	mu     sync.Mutex
	failed []error
}

func NewWorkerManager(logger *zap.Logger) *WorkerManager {
	return &WorkerManager{
		workers: make([]Worker, 0),
		logger:  logger,
	}
}

// Register adds w. Worker names must be unique.
func (m *WorkerManager) Register(w Worker) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.workers {
		if existing.Name() == w.Name() {
			return fmt.Errorf("worker %q already registered", w.Name())
		}
	}
	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered", zap.String("name", w.Name()))
	return nil
}

func (m *WorkerManager) snapshot() []Worker {
	m.mu.Lock()
	defer m.mu.Unlock()
	workers := make([]Worker, len(m.workers))
	copy(workers, m.workers)
	return workers
}

func (m *WorkerManager) fail(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, fmt.Errorf("worker %s: %w", name, err))
}

// Start launches each worker in its own goroutine and returns immediately
func (m *WorkerManager) Start(ctx context.Context) error {
	workers := m.snapshot()
	if len(workers) == 0 {
		return fmt.Errorf("no workers registered")
	}

	m.logger.Info("Starting workers", zap.Int("count", len(workers)))

	for _, worker := range workers {
		m.wg.Add(1)
		go func(w Worker) {
			defer m.wg.Done()

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				m.logger.Error("Worker failed",
					zap.String("name", w.Name()),
					zap.Error(err))
				m.fail(w.Name(), err)
			}
		}(worker)
	}

	return nil
}

// Stop signals every worker and waits for them until ctx expires. The
// returned error joins the failures of workers that exited on their own.
func (m *WorkerManager) Stop(ctx context.Context) error {
	workers := m.snapshot()
	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, worker := range workers {
		if err := worker.Stop(); err != nil {
			m.logger.Error("Failed to stop worker",
				zap.String("name", worker.Name()),
				zap.Error(err))
			m.fail(worker.Name(), err)
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("Workers shutdown timed out, unacked events will be claimed by the next consumer")
		return fmt.Errorf("workers shutdown: %w", ctx.Err())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.failed) > 0 {
		return errors.Join(m.failed...)
	}
	m.logger.Info("All workers stopped gracefully")
	return nil
}
