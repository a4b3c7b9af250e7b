package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/pkg/logx"
	"github.com/Abraxas-365/relaymatch/recruitment/embedding"
	"github.com/panjf2000/ants/v2"
)

const (
	DefaultPoolSize    = 4
	DefaultPollTimeout = 5 * time.Second
	DefaultDelayedTick = 30 * time.Second
	DefaultBaseBackoff = 2 * time.Second
	DefaultMaxBackoff  = 5 * time.Minute
)

// Worker drains the embedding queue: each task's text is embedded and the
// vector handed to the applier. Failed tasks go back on the delayed queue
// with exponential backoff until they run out of attempts.
type Worker struct {
	queue     embedding.Queue
	generator embedding.Generator
	applier   embedding.Applier
	pool      *ants.Pool

	pollTimeout time.Duration
	delayedTick time.Duration
	baseBackoff time.Duration
	maxBackoff  time.Duration

	wg        sync.WaitGroup
	processed atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

// Option configures a Worker.
type Option func(*Worker)

func WithPollTimeout(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.pollTimeout = d
		}
	}
}

func WithDelayedTick(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.delayedTick = d
		}
	}
}

func WithBackoff(base, max time.Duration) Option {
	return func(w *Worker) {
		if base > 0 {
			w.baseBackoff = base
		}
		if max > 0 {
			w.maxBackoff = max
		}
	}
}

// New creates a worker backed by an ants pool of poolSize goroutines
func New(queue embedding.Queue, generator embedding.Generator, applier embedding.Applier, poolSize int, opts ...Option) (*Worker, error) {
	if poolSize < 1 {
		poolSize = DefaultPoolSize
	}

	pool, err := ants.NewPool(poolSize, ants.WithPanicHandler(func(p any) {
		logx.Errorf("embedding task panicked: %v", p)
	}))
	if err != nil {
		return nil, err
	}

	w := &Worker{
		queue:       queue,
		generator:   generator,
		applier:     applier,
		pool:        pool,
		pollTimeout: DefaultPollTimeout,
		delayedTick: DefaultDelayedTick,
		baseBackoff: DefaultBaseBackoff,
		maxBackoff:  DefaultMaxBackoff,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Stats is a snapshot of the worker counters
type Stats struct {
	Processed int64 `json:"processed"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
	Running   int   `json:"running"`
}

func (w *Worker) Stats() Stats {
	return Stats{
		Processed: w.processed.Load(),
		Failed:    w.failed.Load(),
		Dropped:   w.dropped.Load(),
		Running:   w.pool.Running(),
	}
}

// Run blocks until ctx is cancelled. In-flight tasks are allowed to finish
// before the pool is released.
func (w *Worker) Run(ctx context.Context) error {
	logx.Infof("Starting embedding worker with %d goroutines", w.pool.Cap())

	// Tasks already handed to the pool outlive the dequeue loop
	taskCtx := context.WithoutCancel(ctx)

	go w.moveDelayedTasks(ctx)

	defer func() {
		w.wg.Wait()
		w.pool.Release()
		logx.Info("Embedding worker stopped")
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		task, err := w.queue.Dequeue(ctx, w.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logx.Errorf("Embedding worker dequeue error: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.pollTimeout):
			}
			continue
		}

		// Queue timeout, no tasks available
		if task == nil {
			continue
		}

		t := *task
		w.wg.Add(1)
		if err := w.pool.Submit(func() {
			defer w.wg.Done()
			w.handle(taskCtx, t)
		}); err != nil {
			w.wg.Done()
			logx.Errorf("Embedding worker submit error: %v", err)
			w.retry(taskCtx, t, err)
		}
	}
}

func (w *Worker) handle(ctx context.Context, task embedding.Task) {
	if err := w.Process(ctx, task); err != nil {
		w.retry(ctx, task, err)
	}
}

// Process embeds and applies a single task without any retry handling
func (w *Worker) Process(ctx context.Context, task embedding.Task) error {
	log := logx.With("task_id", task.ID, "candidate_id", task.CandidateID, "source", task.Source, "attempt", task.Attempt)

	vector, err := w.generator.GenerateEmbedding(ctx, task.Text)
	if err != nil {
		w.failed.Add(1)
		log.Warnw("embedding generation failed", "error", err)
		return err
	}

	if err := w.applier.ApplyEmbedding(ctx, task, vector); err != nil {
		w.failed.Add(1)
		log.Warnw("embedding apply failed", "error", err)
		return err
	}

	w.processed.Add(1)
	log.Debugw("embedding stored", "dim", vector.Dim())
	return nil
}

func (w *Worker) retry(ctx context.Context, task embedding.Task, cause error) {
	if permanent(cause) || !task.CanRetry() {
		w.dropped.Add(1)
		logx.Errorf("Dropping embedding task %s for candidate %s after %d attempt(s): %v",
			task.ID, task.CandidateID, task.Attempt+1, cause)
		return
	}

	delay := embedding.Backoff(w.baseBackoff, w.maxBackoff, task.Attempt)
	if err := w.queue.EnqueueDelayed(ctx, task.NextAttempt(), delay); err != nil {
		w.dropped.Add(1)
		logx.Errorf("Failed to reschedule embedding task %s: %v", task.ID, err)
		return
	}
	logx.Infof("Embedding task %s rescheduled in %s", task.ID, delay)
}

// permanent errors cannot be fixed by trying again
func permanent(err error) bool {
	return errx.IsType(err, errx.TypeValidation) || errx.IsType(err, errx.TypeNotFound)
}

func (w *Worker) moveDelayedTasks(ctx context.Context) {
	ticker := time.NewTicker(w.delayedTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed embedding tasks: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed embedding tasks to ready queue", count)
			}
		}
	}
}
