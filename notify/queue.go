package notify

import (
	"context"
	"errors"
)

var ErrQueueFull = errors.New("notification queue is full")

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	// Dequeue blocks until a job is available or ctx is done.
	Dequeue(ctx context.Context) (Job, error)
}

// MemoryQueue is a bounded in-process queue. Jobs are lost on restart.
type MemoryQueue struct {
	jobs chan Job
}

func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{jobs: make(chan Job, size)}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, job Job) error {
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (Job, error) {
	select {
	case job := <-q.jobs:
		return job, nil
	case <-ctx.Done():
		return Job{}, ctx.Err()
	}
}

func (q *MemoryQueue) Len() int {
	return len(q.jobs)
}
