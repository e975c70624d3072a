package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driven"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driving"
)

// Ensure scheduleManager implements ScheduleService
var _ driving.ScheduleService = (*scheduleManager)(nil)

// scheduleManager owns retrain schedules. Saves are transactional: the
// cached state moves to the new value only after the store acknowledges
// the write, so a failed save leaves the previous schedule intact. Reads
// go to the store so scheduler bookkeeping (next_run, last_run) stays
// visible; the cache serves reads only while the store is unreachable.
type scheduleManager struct {
	store    driven.ScheduleStore
	notifier *Notifier
	logger   *slog.Logger

	mu    sync.Mutex
	cache map[string]*domain.RetrainSchedule // key: botID
}

// NewScheduleManager creates a new ScheduleService.
func NewScheduleManager(store driven.ScheduleStore, notifier *Notifier, logger *slog.Logger) driving.ScheduleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scheduleManager{
		store:    store,
		notifier: notifier,
		logger:   logger,
		cache:    make(map[string]*domain.RetrainSchedule),
	}
}

// Get returns the bot's schedule. A missing row is reported as the
// disabled state; a load failure falls back to the last committed state,
// or disabled when none is known, so callers always get a usable schedule.
func (m *scheduleManager) Get(ctx context.Context, customerID, botID string) (*domain.RetrainSchedule, error) {
	schedule, err := m.store.Get(ctx, botID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			m.mu.Lock()
			delete(m.cache, botID)
			m.mu.Unlock()
			return domain.NewDisabledSchedule(customerID, botID), nil
		}

		m.logger.Warn("failed to load retrain schedule", "bot_id", botID, "error", err)
		m.mu.Lock()
		cached, ok := m.cache[botID]
		m.mu.Unlock()
		if ok {
			return cached.Clone(), nil
		}
		return domain.NewDisabledSchedule(customerID, botID), nil
	}

	m.mu.Lock()
	m.cache[botID] = schedule.Clone()
	m.mu.Unlock()
	return schedule, nil
}

// Save applies the frequency and optional time transition and persists the
// result. Disabling removes the stored row. The notification reflects what
// was committed.
func (m *scheduleManager) Save(ctx context.Context, customerID, botID string, frequency domain.Frequency, timeOfDay string) (*domain.RetrainSchedule, error) {
	current, _ := m.Get(ctx, customerID, botID)
	if !current.Disabled() && current.CustomerID != customerID {
		return nil, domain.ErrForbidden
	}

	next := current.Clone()
	next.SetFrequency(frequency)
	if timeOfDay != "" {
		next.SetTime(timeOfDay)
	}
	if err := next.Validate(); err != nil {
		m.notifier.Error(customerID, botID, "Failed to save schedule")
		return nil, err
	}

	if next.Disabled() {
		if err := m.store.Delete(ctx, botID); err != nil {
			m.logger.Error("failed to remove retrain schedule", "bot_id", botID, "error", err)
			m.notifier.Error(customerID, botID, "Failed to save schedule")
			return nil, err
		}
	} else {
		nextRun, err := next.NextRunAfter(time.Now())
		if err != nil {
			m.notifier.Error(customerID, botID, "Failed to save schedule")
			return nil, err
		}
		next.NextRun = &nextRun

		if err := m.store.Save(ctx, next); err != nil {
			m.logger.Error("failed to save retrain schedule", "bot_id", botID, "error", err)
			m.notifier.Error(customerID, botID, "Failed to save schedule")
			return nil, err
		}
	}

	m.mu.Lock()
	m.cache[botID] = next.Clone()
	m.mu.Unlock()

	if next.Disabled() {
		m.notifier.Success(customerID, botID, "Retrain schedule removed")
	} else {
		m.notifier.Success(customerID, botID,
			fmt.Sprintf("Retrain scheduled %s at %s UTC", next.Frequency, next.TimeOfDay))
	}
	return next.Clone(), nil
}
