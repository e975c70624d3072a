package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ScheduleStore = (*ScheduleStore)(nil)

// ScheduleStore implements driven.ScheduleStore using PostgreSQL
type ScheduleStore struct {
	db *DB
}

// NewScheduleStore creates a new ScheduleStore
func NewScheduleStore(db *DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

// Get retrieves a bot's retrain schedule
func (s *ScheduleStore) Get(ctx context.Context, botID string) (*domain.RetrainSchedule, error) {
	query := `
		SELECT bot_id, customer_id, frequency, time_of_day, next_run, last_run, last_error
		FROM retrain_schedules
		WHERE bot_id = $1
	`

	var schedule domain.RetrainSchedule
	var nextRun time.Time
	var lastRun sql.NullTime

	err := s.db.QueryRowContext(ctx, query, botID).Scan(
		&schedule.BotID,
		&schedule.CustomerID,
		&schedule.Frequency,
		&schedule.TimeOfDay,
		&nextRun,
		&lastRun,
		&schedule.LastError,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	schedule.NextRun = &nextRun
	schedule.LastRun = TimePtr(lastRun)

	return &schedule, nil
}

// Save creates or updates a bot's retrain schedule
func (s *ScheduleStore) Save(ctx context.Context, schedule *domain.RetrainSchedule) error {
	query := `
		INSERT INTO retrain_schedules (bot_id, customer_id, frequency, time_of_day, next_run, last_run, last_error, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (bot_id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			frequency = EXCLUDED.frequency,
			time_of_day = EXCLUDED.time_of_day,
			next_run = EXCLUDED.next_run,
			last_run = EXCLUDED.last_run,
			last_error = EXCLUDED.last_error,
			updated_at = now()
	`

	_, err := s.db.ExecContext(ctx, query,
		schedule.BotID,
		schedule.CustomerID,
		string(schedule.Frequency),
		schedule.TimeOfDay,
		schedule.NextRun,
		NullTime(schedule.LastRun),
		schedule.LastError,
	)
	return err
}

// Delete removes a bot's retrain schedule. A missing row is not an error;
// disabling an already-disabled schedule is idempotent.
func (s *ScheduleStore) Delete(ctx context.Context, botID string) error {
	query := `DELETE FROM retrain_schedules WHERE bot_id = $1`
	_, err := s.db.ExecContext(ctx, query, botID)
	return err
}

// ListDue retrieves schedules whose next run is at or before now
func (s *ScheduleStore) ListDue(ctx context.Context, now time.Time) ([]*domain.RetrainSchedule, error) {
	query := `
		SELECT bot_id, customer_id, frequency, time_of_day, next_run, last_run, last_error
		FROM retrain_schedules
		WHERE next_run <= $1
		ORDER BY next_run ASC
	`

	rows, err := s.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*domain.RetrainSchedule
	for rows.Next() {
		var schedule domain.RetrainSchedule
		var nextRun time.Time
		var lastRun sql.NullTime

		err := rows.Scan(
			&schedule.BotID,
			&schedule.CustomerID,
			&schedule.Frequency,
			&schedule.TimeOfDay,
			&nextRun,
			&lastRun,
			&schedule.LastError,
		)
		if err != nil {
			return nil, err
		}

		schedule.NextRun = &nextRun
		schedule.LastRun = TimePtr(lastRun)

		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// MarkRun records an execution and advances the next run time
func (s *ScheduleStore) MarkRun(ctx context.Context, botID string, lastRun, nextRun time.Time, lastError string) error {
	query := `
		UPDATE retrain_schedules
		SET last_run = $1, next_run = $2, last_error = $3, updated_at = now()
		WHERE bot_id = $4
	`

	result, err := s.db.ExecContext(ctx, query, lastRun, nextRun, lastError, botID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
