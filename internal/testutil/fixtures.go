package testutil

import (
	"time"

	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/google/uuid"
)

// ScheduleOption customizes a test schedule.
type ScheduleOption func(*domain.Schedule)

func WithID(id string) ScheduleOption {
	return func(s *domain.Schedule) {
		s.ID = id
	}
}

func WithEmployees(ids ...string) ScheduleOption {
	return func(s *domain.Schedule) {
		s.EmployeeIDs = ids
	}
}

// WithDates sets the range from YYYY-MM-DD literals.
func WithDates(start, end string) ScheduleOption {
	return func(s *domain.Schedule) {
		s.StartDate = domain.MustParseDate(start)
		s.EndDate = domain.MustParseDate(end)
	}
}

func WithPredecessor(id string, lag int) ScheduleOption {
	return func(s *domain.Schedule) {
		s.PredecessorID = &id
		s.PredecessorLag = lag
	}
}

// WithFixedDuration turns on duration-based re-timing.
func WithFixedDuration(days int) ScheduleOption {
	return func(s *domain.Schedule) {
		s.Duration = days
		s.UseDuration = true
	}
}

func WithStatus(st domain.ScheduleStatus) ScheduleOption {
	return func(s *domain.Schedule) {
		s.Status = st
	}
}

func WithJob(jobID string) ScheduleOption {
	return func(s *domain.Schedule) {
		s.JobID = jobID
	}
}

// NewTestSchedule returns a valid single-day schedule on 2024-03-01 with no crew.
func NewTestSchedule(title string, opts ...ScheduleOption) domain.Schedule {
	now := time.Now().UTC()
	s := domain.Schedule{
		ID:          uuid.New().String(),
		Title:       title,
		JobID:       "job-1",
		EmployeeIDs: []string{},
		StartDate:   domain.MustParseDate("2024-03-01"),
		EndDate:     domain.MustParseDate("2024-03-01"),
		Status:      domain.ScheduleScheduled,
		Duration:    domain.DefaultDuration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ByID indexes schedules for assertions.
func ByID(schedules []domain.Schedule) map[string]domain.Schedule {
	out := make(map[string]domain.Schedule, len(schedules))
	for _, s := range schedules {
		out[s.ID] = s
	}
	return out
}

// NewInput builds a create request from YYYY-MM-DD literals.
func NewInput(title, start, end string, employees ...string) domain.ScheduleInput {
	return domain.ScheduleInput{
		Title:       title,
		JobID:       "job-1",
		EmployeeIDs: employees,
		StartDate:   domain.MustParseDate(start),
		EndDate:     domain.MustParseDate(end),
	}
}
