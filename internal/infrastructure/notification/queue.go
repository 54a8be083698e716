package notification

import (
	"context"
	"sync"

	"go.uber.org/zap"

	notificationdomain "github.com/storefront/backend/internal/domain/notification"
)

// Queue is a bounded in-process work queue with a single background worker.
// It is deliberately not durable: jobs die with the process, and delivery is
// best-effort by contract.
type Queue struct {
	jobs   chan notificationdomain.Job
	logger *zap.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

// NewQueue creates a queue holding at most size pending jobs
func NewQueue(size int, logger *zap.Logger) *Queue {
	if size <= 0 {
		size = 128
	}
	return &Queue{
		jobs:   make(chan notificationdomain.Job, size),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start launches the worker goroutine. Jobs run one at a time in enqueue
// order until Stop is called or ctx is cancelled.
func (q *Queue) Start(ctx context.Context) {
	q.startOnce.Do(func() {
		go q.run(ctx)
	})
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-q.jobs:
			if !ok {
				return
			}
			job(ctx)
		}
	}
}

// Enqueue hands a job to the worker without blocking. It returns false when
// the queue is full; the caller decides whether that is worth logging.
func (q *Queue) Enqueue(job notificationdomain.Job) bool {
	select {
	case q.jobs <- job:
		return true
	default:
		q.logger.Warn("notification queue full, job dropped",
			zap.Int("capacity", cap(q.jobs)))
		return false
	}
}

// Stop closes the queue and waits for the worker to finish the jobs already
// accepted. Enqueue must not be called after Stop.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() {
		close(q.jobs)
		<-q.done
	})
}

// Ensure Queue implements the domain queue port
var _ notificationdomain.Queue = (*Queue)(nil)
