package embedding

import (
	"context"
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
)

// Queue carries embedding tasks between the API and the worker
type Queue interface {
	// Enqueue makes a task immediately available
	Enqueue(ctx context.Context, task Task) error

	// Dequeue blocks up to timeout; a nil task with a nil error means nothing arrived
	Dequeue(ctx context.Context, timeout time.Duration) (*Task, error)

	// EnqueueDelayed schedules a task for later processing (retries)
	EnqueueDelayed(ctx context.Context, task Task, delay time.Duration) error

	// MoveDelayedToReady promotes due delayed tasks and returns how many moved
	MoveDelayedToReady(ctx context.Context) (int, error)

	// Size returns the number of ready tasks
	Size(ctx context.Context) (int64, error)
}

// Generator turns text into a vector
type Generator interface {
	GenerateEmbedding(ctx context.Context, text string) (kernel.Embedding, error)
}

// Applier stores a generated vector on the candidate the task belongs to
type Applier interface {
	ApplyEmbedding(ctx context.Context, task Task, vector kernel.Embedding) error
}
