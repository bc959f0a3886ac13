package reminder

import (
	"context"
	"log/slog"
	"time"
)

// Interval is the fixed delay between reminder runs.
const Interval = 24 * time.Hour

// Worker re-runs a Job on a fixed interval.
type Worker struct {
	job      *Job
	interval time.Duration
	now      func() time.Time
}

// NewWorker creates a worker that runs job every 24 hours.
func NewWorker(job *Job) *Worker {
	return &Worker{job: job, interval: Interval, now: time.Now}
}

// Start runs the job immediately and then once per interval until ctx is
// cancelled. Runs never overlap.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping reminder worker")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	if _, err := w.job.Run(ctx, w.now()); err != nil {
		slog.Error("Reminder run failed", "error", err)
	}
}
