package driven

import (
	"context"
	"time"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
)

// ScheduleStore persists retrain schedules. A bot has at most one schedule;
// the disabled state is represented by the absence of a row.
type ScheduleStore interface {
	// Get returns the schedule for a bot, or domain.ErrNotFound.
	Get(ctx context.Context, botID string) (*domain.RetrainSchedule, error)

	// Save upserts a schedule.
	Save(ctx context.Context, schedule *domain.RetrainSchedule) error

	// Delete removes a bot's schedule. Deleting a missing schedule is not an error.
	Delete(ctx context.Context, botID string) error

	// ListDue returns enabled schedules whose next run is at or before now.
	ListDue(ctx context.Context, now time.Time) ([]*domain.RetrainSchedule, error)

	// MarkRun records an execution and advances the next run time.
	MarkRun(ctx context.Context, botID string, lastRun, nextRun time.Time, lastError string) error
}
