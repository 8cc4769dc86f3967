package worker

import (
	"context"
)

// Worker is a long-running background consumer
type Worker interface {
	// Start runs the worker until Stop is called or ctx is done
	Start(ctx context.Context) error

	// Stop asks the worker to finish its current batch and return
	Stop() error

	Name() string
}
