package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Frequency is how often a bot's URL-backed documents are re-ingested
type Frequency string

const (
	FrequencyNone    Frequency = "none"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// DefaultRetrainTime is the time-of-day used when a schedule is first
// enabled without an explicit time.
const DefaultRetrainTime = "03:00"

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// RetrainSchedule is the recurring re-ingestion policy for a bot.
// The canonical disabled state is frequency "none" with an empty time.
type RetrainSchedule struct {
	BotID      string    `json:"bot_id"`
	CustomerID string    `json:"customer_id"`
	Frequency  Frequency `json:"retrain_frequency"`
	TimeOfDay  string    `json:"retrain_time,omitempty"` // 24h UTC, "HH:MM"

	// Execution bookkeeping, maintained by the scheduler
	NextRun   *time.Time `json:"next_run,omitempty"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// NewDisabledSchedule returns the canonical "no schedule set" state.
func NewDisabledSchedule(customerID, botID string) *RetrainSchedule {
	return &RetrainSchedule{
		BotID:      botID,
		CustomerID: customerID,
		Frequency:  FrequencyNone,
	}
}

// Disabled reports whether the schedule is in its disabled state.
func (s *RetrainSchedule) Disabled() bool {
	return s.Frequency == FrequencyNone || s.Frequency == ""
}

// SetFrequency transitions the schedule. Setting "none" clears the time;
// enabling with no time set defaults to 03:00 UTC.
func (s *RetrainSchedule) SetFrequency(f Frequency) {
	if f == FrequencyNone || f == "" {
		s.Frequency = FrequencyNone
		s.TimeOfDay = ""
		s.NextRun = nil
		return
	}
	s.Frequency = f
	if s.TimeOfDay == "" {
		s.TimeOfDay = DefaultRetrainTime
	}
}

// SetTime updates the time-of-day. It is a no-op while disabled.
func (s *RetrainSchedule) SetTime(t string) {
	if s.Disabled() {
		return
	}
	s.TimeOfDay = t
}

// Validate checks the schedule is internally consistent.
func (s *RetrainSchedule) Validate() error {
	switch s.Frequency {
	case FrequencyNone, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, s.Frequency)
	}
	if s.Disabled() {
		if s.TimeOfDay != "" {
			return fmt.Errorf("%w: disabled schedule must not carry a time", ErrInvalidInput)
		}
		return nil
	}
	if !timeOfDayPattern.MatchString(s.TimeOfDay) {
		return fmt.Errorf("%w: time must be HH:MM in 24-hour UTC", ErrInvalidInput)
	}
	return nil
}

// Clone returns a copy of the schedule.
func (s *RetrainSchedule) Clone() *RetrainSchedule {
	c := *s
	if s.NextRun != nil {
		t := *s.NextRun
		c.NextRun = &t
	}
	if s.LastRun != nil {
		t := *s.LastRun
		c.LastRun = &t
	}
	return &c
}

// NextRunAfter computes the next execution instant strictly after the given
// time, in UTC. Weekly schedules run on Sundays, monthly on the 1st.
func (s *RetrainSchedule) NextRunAfter(after time.Time) (time.Time, error) {
	if s.Disabled() {
		return time.Time{}, fmt.Errorf("%w: schedule is disabled", ErrInvalidInput)
	}
	if err := s.Validate(); err != nil {
		return time.Time{}, err
	}

	parts := strings.SplitN(s.TimeOfDay, ":", 2)
	hour, minute := parts[0], parts[1]

	var spec string
	switch s.Frequency {
	case FrequencyDaily:
		spec = fmt.Sprintf("%s %s * * *", minute, hour)
	case FrequencyWeekly:
		spec = fmt.Sprintf("%s %s * * 0", minute, hour)
	case FrequencyMonthly:
		spec = fmt.Sprintf("%s %s 1 * *", minute, hour)
	}

	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse schedule spec: %w", err)
	}
	return sched.Next(after.UTC()), nil
}

// Due reports whether the schedule should be triggered at the given time.
func (s *RetrainSchedule) Due(now time.Time) bool {
	return !s.Disabled() && s.NextRun != nil && now.After(*s.NextRun)
}
