package embeddinginfra

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/relaymatch/recruitment/embedding"
)

type delayedTask struct {
	task  embedding.Task
	dueAt time.Time
}

// MemoryQueue is an in-process embedding.Queue for single-binary setups and tests
type MemoryQueue struct {
	mu      sync.Mutex
	ready   []embedding.Task
	delayed []delayedTask
	notify  chan struct{}
	now     func() time.Time
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		notify: make(chan struct{}, 1),
		now:    time.Now,
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, task embedding.Task) error {
	q.mu.Lock()
	q.ready = append(q.ready, task)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return nil
}

// Dequeue waits up to timeout for a task; a non-positive timeout only polls
func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*embedding.Task, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	for {
		if task, ok := q.pop(); ok {
			return &task, nil
		}
		if expired == nil {
			return nil, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-expired:
			return nil, nil
		case <-q.notify:
		}
	}
}

func (q *MemoryQueue) pop() (embedding.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ready) == 0 {
		return embedding.Task{}, false
	}
	task := q.ready[0]
	q.ready = q.ready[1:]
	return task, true
}

func (q *MemoryQueue) EnqueueDelayed(ctx context.Context, task embedding.Task, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.delayed = append(q.delayed, delayedTask{task: task, dueAt: q.now().Add(delay)})
	return nil
}

func (q *MemoryQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	q.mu.Lock()
	now := q.now()
	moved := 0
	pending := q.delayed[:0]
	for _, d := range q.delayed {
		if d.dueAt.After(now) {
			pending = append(pending, d)
			continue
		}
		q.ready = append(q.ready, d.task)
		moved++
	}
	q.delayed = pending
	q.mu.Unlock()

	if moved > 0 {
		select {
		case q.notify <- struct{}{}:
		default:
		}
	}
	return moved, nil
}

func (q *MemoryQueue) Size(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.ready)), nil
}

// DelayedSize returns the number of tasks waiting for a retry
func (q *MemoryQueue) DelayedSize(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.delayed)), nil
}
