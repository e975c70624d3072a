package driving

import (
	"context"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
)

// ScheduleService manages a bot's recurring retrain policy.
type ScheduleService interface {
	// Get returns the bot's schedule, loading it on demand. A missing or
	// unloadable schedule is reported as the disabled state, not an error.
	Get(ctx context.Context, customerID, botID string) (*domain.RetrainSchedule, error)

	// Save applies the frequency/time transitions and persists the result.
	// The in-memory state is only committed after the store acknowledges
	// the write; on failure the previous state is kept.
	Save(ctx context.Context, customerID, botID string, frequency domain.Frequency, timeOfDay string) (*domain.RetrainSchedule, error)
}

// NotificationService exposes the active toast for a workspace.
type NotificationService interface {
	Active(customerID, botID string) *domain.Notification
}
