package notify

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const defaultDeferPoll = 100 * time.Millisecond

type RetryPolicy struct {
	MaxAttempts int
	// Backoff is multiplied by the attempt number to get the delay before a
	// failed job is tried again.
	Backoff time.Duration
}

type Worker struct {
	queue  Queue
	mailer Mailer
	policy RetryPolicy
	now    func() time.Time
	// deferPoll caps the pause after putting back a job that is not due yet.
	deferPoll time.Duration
}

func NewWorker(queue Queue, mailer Mailer, policy RetryPolicy) *Worker {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &Worker{queue: queue, mailer: mailer, policy: policy, now: time.Now, deferPoll: defaultDeferPoll}
}

// Run processes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	log.Info("notification worker started")
	for ctx.Err() == nil {
		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification worker stopped")
				return
			}
			log.WithError(err).Error("notification dequeue failed")
			if !sleep(ctx, w.policy.Backoff) {
				return
			}
			continue
		}

		if !job.due(w.now()) {
			w.postpone(ctx, job)
			continue
		}
		w.Process(ctx, job)
	}
	log.Info("notification worker stopped")
}

// postpone puts a job that is still backing off at the back of the queue so
// jobs behind it are not held up.
func (w *Worker) postpone(ctx context.Context, job Job) {
	if err := w.queue.Enqueue(context.WithoutCancel(ctx), job); err != nil {
		log.WithError(err).WithField("job_id", job.ID).Error("notification requeue failed")
		return
	}
	wait := job.NotBefore.Sub(w.now())
	if wait > w.deferPoll {
		wait = w.deferPoll
	}
	sleep(ctx, wait)
}

// Process sends one job. A failed job goes straight back on the queue with a
// NotBefore time until the attempt budget is spent; jobs that can never
// succeed are dropped at once.
func (w *Worker) Process(ctx context.Context, job Job) {
	entry := log.WithFields(log.Fields{
		"job_id":     job.ID,
		"kind":       job.Kind,
		"booking_id": job.BookingID,
	})

	msg, err := Compose(job)
	if err != nil {
		entry.WithError(err).Error("dropping malformed notification")
		return
	}

	job.Attempts++
	err = w.mailer.Send(ctx, msg)
	if err == nil {
		entry.WithField("attempts", job.Attempts).Info("notification sent")
		return
	}

	entry = entry.WithError(err).WithField("attempts", job.Attempts)
	if job.Attempts >= w.policy.MaxAttempts {
		entry.Error("notification dropped after final attempt")
		return
	}
	job.NotBefore = w.now().Add(w.policy.Backoff * time.Duration(job.Attempts))
	if err := w.queue.Enqueue(context.WithoutCancel(ctx), job); err != nil {
		entry.WithField("requeue_error", err.Error()).Error("notification requeue failed")
		return
	}
	entry.WithField("not_before", job.NotBefore).Warn("notification requeued")
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
