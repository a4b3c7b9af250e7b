package embeddinginfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/relaymatch/recruitment/embedding"
	"github.com/go-redis/redis/v8"
)

// RedisQueue implements embedding.Queue with a Redis list for ready tasks
// and a sorted set, scored by due time, for delayed ones
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue creates a new Redis-based queue
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

func (q *RedisQueue) delayedKey() string {
	return q.queueName + ":delayed"
}

// Enqueue adds a task to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, task embedding.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task %s: %w", task.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue task %s: %w", task.ID, err)
	}

	return nil
}

// Dequeue gets a task from the queue (blocking with timeout)
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*embedding.Task, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when timeout occurs
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue task: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var task embedding.Task
	if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
		return nil, fmt.Errorf("unmarshal task: %w", err)
	}

	return &task, nil
}

// EnqueueDelayed schedules a task for later processing (for retries)
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, task embedding.Task, delay time.Duration) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal delayed task %s: %w", task.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedKey(), &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed task %s: %w", task.ID, err)
	}

	return nil
}

// MoveDelayedToReady moves due delayed tasks to the main queue
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := float64(time.Now().Unix())

	due, err := q.client.ZRangeByScore(ctx, q.delayedKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed tasks: %w", err)
	}

	if len(due) == 0 {
		return 0, nil
	}

	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, member := range due {
			pipe.LPush(ctx, q.queueName, member)
			pipe.ZRem(ctx, q.delayedKey(), member)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("move delayed tasks to ready: %w", err)
	}

	return len(due), nil
}

// Size returns the number of ready tasks
func (q *RedisQueue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}

// DelayedSize returns the number of tasks waiting for a retry
func (q *RedisQueue) DelayedSize(ctx context.Context) (int64, error) {
	size, err := q.client.ZCard(ctx, q.delayedKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed queue size: %w", err)
	}
	return size, nil
}

// Ping checks if Redis connection is alive
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
