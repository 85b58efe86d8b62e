package messaging

import (
	"context"
	"runtime/debug"

	"MockECommerce/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Runner drives a set of workers with one shared handler.
type Runner struct {
	logger  *logger.Logger
	workers []Worker
	handler MessageHandler
}

func NewRunner(l *logger.Logger, workers []Worker, handler MessageHandler) *Runner {
	return &Runner{
		logger:  l,
		workers: workers,
		handler: handler,
	}
}

// Start blocks until ctx is cancelled or a worker fails. Every worker is
// closed on the way out, and a panicking worker is reported as stopped
// instead of taking the process down.
func (r *Runner) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for i, w := range r.workers {
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					r.logger.Error("Worker panic recovered: worker_idx=%d panic=%v stack=%s",
						i, rec, string(debug.Stack()))
					err = errWorkerPanic
				}
				if cerr := w.Close(); cerr != nil {
					r.logger.Error("Failed to close worker: worker_idx=%d error=%v", i, cerr)
				}
			}()
			return w.Start(ctx, r.handler)
		})
	}

	return g.Wait()
}
