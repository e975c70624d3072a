package driven

import (
	"context"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
)

// TaskQueue is the interface for background task queuing
type TaskQueue interface {
	// Enqueue adds a task to the queue
	Enqueue(ctx context.Context, task *domain.Task) error

	// DequeueWithTimeout retrieves the next available task, waiting up to
	// timeout seconds. Returns (nil, nil) when no task is available.
	DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error)

	// Ack acknowledges successful completion of a task
	Ack(ctx context.Context, taskID string) error

	// Nack indicates task processing failed; the task is retried with
	// backoff until its attempts are exhausted
	Nack(ctx context.Context, taskID string, reason string) error

	// GetTask retrieves a task by ID. Returns (nil, nil) when unknown.
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
}
