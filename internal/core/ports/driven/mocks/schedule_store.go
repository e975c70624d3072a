package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
)

// MockScheduleStore is an in-memory ScheduleStore for testing
type MockScheduleStore struct {
	mu        sync.Mutex
	schedules map[string]*domain.RetrainSchedule

	GetErr    error
	SaveErr   error
	DeleteErr error
	ListErr   error
}

// NewMockScheduleStore creates a new MockScheduleStore
func NewMockScheduleStore() *MockScheduleStore {
	return &MockScheduleStore{
		schedules: make(map[string]*domain.RetrainSchedule),
	}
}

func (m *MockScheduleStore) Get(ctx context.Context, botID string) (*domain.RetrainSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	s, ok := m.schedules[botID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Clone(), nil
}

func (m *MockScheduleStore) Save(ctx context.Context, schedule *domain.RetrainSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.schedules[schedule.BotID] = schedule.Clone()
	return nil
}

func (m *MockScheduleStore) Delete(ctx context.Context, botID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.schedules, botID)
	return nil
}

func (m *MockScheduleStore) ListDue(ctx context.Context, now time.Time) ([]*domain.RetrainSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var due []*domain.RetrainSchedule
	for _, s := range m.schedules {
		if !s.Disabled() && s.NextRun != nil && !s.NextRun.After(now) {
			due = append(due, s.Clone())
		}
	}
	return due, nil
}

func (m *MockScheduleStore) MarkRun(ctx context.Context, botID string, lastRun, nextRun time.Time, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[botID]
	if !ok {
		return domain.ErrNotFound
	}
	s.LastRun = &lastRun
	s.NextRun = &nextRun
	s.LastError = lastError
	return nil
}
