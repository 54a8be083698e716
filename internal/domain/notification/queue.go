package notification

import "context"

// Job is a unit of deferred dispatch work. It receives the queue's lifecycle
// context, not the context of the caller that enqueued it.
type Job func(ctx context.Context)

// Queue accepts jobs for background execution. Enqueue must not block; it
// returns false when the job was not accepted.
type Queue interface {
	Enqueue(job Job) bool
}
