package embedding

import (
	"time"

	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/recruitment/candidate"
	"github.com/google/uuid"
)

// DefaultMaxAttempts bounds how often a failing task is retried
const DefaultMaxAttempts = 3

// Task asks the worker to embed one piece of candidate text
type Task struct {
	ID          kernel.TaskID             `json:"id"`
	CandidateID kernel.CandidateID        `json:"candidate_id"`
	Source      candidate.EmbeddingSource `json:"source"`
	Text        string                    `json:"text"`
	Attempt     int                       `json:"attempt"`
	MaxAttempts int                       `json:"max_attempts"`
	CreatedAt   time.Time                 `json:"created_at"`
}

// NewTask builds a first-attempt task with a fresh ID
func NewTask(candidateID kernel.CandidateID, source candidate.EmbeddingSource, text string, maxAttempts int) Task {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return Task{
		ID:          kernel.NewTaskID(uuid.NewString()),
		CandidateID: candidateID,
		Source:      source,
		Text:        text,
		MaxAttempts: maxAttempts,
		CreatedAt:   time.Now(),
	}
}

// CanRetry reports whether another attempt is allowed after the current one fails
func (t Task) CanRetry() bool {
	return t.Attempt+1 < t.MaxAttempts
}

// NextAttempt returns a copy of the task for its retry
func (t Task) NextAttempt() Task {
	t.Attempt++
	return t
}

// Backoff returns base * 2^attempt, capped at max
func Backoff(base, max time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if max > 0 && d >= max {
			return max
		}
	}
	return d
}
