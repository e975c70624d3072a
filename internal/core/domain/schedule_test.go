package domain

import (
	"testing"
	"time"
)

func TestRetrainSchedule_SetFrequency_NoneClearsTime(t *testing.T) {
	s := NewDisabledSchedule("cust-1", "bot-1")
	s.SetFrequency(FrequencyDaily)
	s.SetTime("14:30")

	s.SetFrequency(FrequencyNone)

	if !s.Disabled() {
		t.Error("expected schedule to be disabled")
	}
	if s.TimeOfDay != "" {
		t.Errorf("expected time to be cleared, got %q", s.TimeOfDay)
	}
}

func TestRetrainSchedule_SetFrequency_DefaultsTime(t *testing.T) {
	s := NewDisabledSchedule("cust-1", "bot-1")
	s.SetFrequency(FrequencyWeekly)

	if s.TimeOfDay != DefaultRetrainTime {
		t.Errorf("expected default time %q, got %q", DefaultRetrainTime, s.TimeOfDay)
	}

	// An already-set time survives a frequency change
	s.SetTime("22:15")
	s.SetFrequency(FrequencyMonthly)
	if s.TimeOfDay != "22:15" {
		t.Errorf("expected time to be kept, got %q", s.TimeOfDay)
	}
}

func TestRetrainSchedule_SetTime_NoopWhileDisabled(t *testing.T) {
	s := NewDisabledSchedule("cust-1", "bot-1")
	s.SetTime("09:00")

	if s.TimeOfDay != "" {
		t.Errorf("expected SetTime to be a no-op while disabled, got %q", s.TimeOfDay)
	}
}

func TestRetrainSchedule_Validate(t *testing.T) {
	s := NewDisabledSchedule("cust-1", "bot-1")
	if err := s.Validate(); err != nil {
		t.Errorf("disabled schedule should be valid: %v", err)
	}

	s.Frequency = "hourly"
	if s.Validate() == nil {
		t.Error("expected unknown frequency to be rejected")
	}

	s = NewDisabledSchedule("cust-1", "bot-1")
	s.SetFrequency(FrequencyDaily)
	s.SetTime("25:00")
	if s.Validate() == nil {
		t.Error("expected invalid time to be rejected")
	}

	s.SetTime("23:59")
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRetrainSchedule_NextRunAfter(t *testing.T) {
	after := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) // a Tuesday

	s := NewDisabledSchedule("cust-1", "bot-1")
	s.SetFrequency(FrequencyDaily)
	s.SetTime("03:00")

	next, err := s.NextRunAfter(after)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 11, 3, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("daily: expected %v, got %v", want, next)
	}

	s.SetFrequency(FrequencyWeekly)
	next, err = s.NextRunAfter(after)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC) // next Sunday
	if !next.Equal(want) {
		t.Errorf("weekly: expected %v, got %v", want, next)
	}

	s.SetFrequency(FrequencyMonthly)
	next, err = s.NextRunAfter(after)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("monthly: expected %v, got %v", want, next)
	}
}

func TestRetrainSchedule_NextRunAfter_Disabled(t *testing.T) {
	s := NewDisabledSchedule("cust-1", "bot-1")
	if _, err := s.NextRunAfter(time.Now()); err == nil {
		t.Error("expected error for disabled schedule")
	}
}

func TestRetrainSchedule_Due(t *testing.T) {
	now := time.Now()
	s := NewDisabledSchedule("cust-1", "bot-1")
	s.SetFrequency(FrequencyDaily)

	if s.Due(now) {
		t.Error("schedule without next run should not be due")
	}

	past := now.Add(-time.Minute)
	s.NextRun = &past
	if !s.Due(now) {
		t.Error("expected schedule to be due")
	}

	s.SetFrequency(FrequencyNone)
	if s.Due(now) {
		t.Error("disabled schedule should never be due")
	}
}
