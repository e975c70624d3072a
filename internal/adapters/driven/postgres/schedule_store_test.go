package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
)

func newMockStore(t *testing.T) (*ScheduleStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewScheduleStore(&DB{DB: db}), mock
}

func scheduleColumns() []string {
	return []string{"bot_id", "customer_id", "frequency", "time_of_day", "next_run", "last_run", "last_error"}
}

func TestScheduleStoreGet(t *testing.T) {
	store, mock := newMockStore(t)
	nextRun := time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM retrain_schedules").
		WithArgs("bot-1").
		WillReturnRows(sqlmock.NewRows(scheduleColumns()).
			AddRow("bot-1", "cust-1", "daily", "03:00", nextRun, nil, ""))

	schedule, err := store.Get(context.Background(), "bot-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if schedule.Frequency != domain.FrequencyDaily || schedule.TimeOfDay != "03:00" {
		t.Errorf("schedule = %+v", schedule)
	}
	if schedule.NextRun == nil || !schedule.NextRun.Equal(nextRun) {
		t.Errorf("NextRun = %v, want %v", schedule.NextRun, nextRun)
	}
	if schedule.LastRun != nil {
		t.Errorf("LastRun = %v, want nil", schedule.LastRun)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestScheduleStoreGetMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM retrain_schedules").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(scheduleColumns()))

	_, err := store.Get(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestScheduleStoreSaveUpsert(t *testing.T) {
	store, mock := newMockStore(t)
	nextRun := time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC)
	schedule := &domain.RetrainSchedule{
		BotID:      "bot-1",
		CustomerID: "cust-1",
		Frequency:  domain.FrequencyWeekly,
		TimeOfDay:  "22:30",
		NextRun:    &nextRun,
	}

	mock.ExpectExec("INSERT INTO retrain_schedules").
		WithArgs("bot-1", "cust-1", "weekly", "22:30", nextRun, nil, "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Save(context.Background(), schedule); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestScheduleStoreDeleteMissingNotError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM retrain_schedules").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.Delete(context.Background(), "ghost"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestScheduleStoreListDue(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 9, 1, 4, 0, 0, 0, time.UTC)
	due := now.Add(-time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM retrain_schedules").
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows(scheduleColumns()).
			AddRow("bot-1", "cust-1", "daily", "03:00", due, due.Add(-24*time.Hour), "").
			AddRow("bot-2", "cust-2", "weekly", "03:30", due, nil, "previous failure"))

	schedules, err := store.ListDue(context.Background(), now)
	if err != nil {
		t.Fatalf("ListDue: %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("len = %d, want 2", len(schedules))
	}
	if schedules[1].LastError != "previous failure" {
		t.Errorf("LastError = %q", schedules[1].LastError)
	}
}

func TestScheduleStoreMarkRun(t *testing.T) {
	store, mock := newMockStore(t)
	lastRun := time.Date(2026, 9, 1, 3, 0, 5, 0, time.UTC)
	nextRun := time.Date(2026, 9, 2, 3, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE retrain_schedules").
		WithArgs(lastRun, nextRun, "", "bot-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.MarkRun(context.Background(), "bot-1", lastRun, nextRun, ""); err != nil {
		t.Fatalf("MarkRun: %v", err)
	}
}

func TestScheduleStoreMarkRunMissing(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectExec("UPDATE retrain_schedules").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.MarkRun(context.Background(), "ghost", now, now.Add(24*time.Hour), "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("MarkRun error = %v, want ErrNotFound", err)
	}
}
