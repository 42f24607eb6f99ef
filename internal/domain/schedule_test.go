package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func validSchedule() Schedule {
	return Schedule{
		ID:          "s1",
		Title:       "Pour footings",
		EmployeeIDs: []string{"alice"},
		StartDate:   MustParseDate("2024-03-01"),
		EndDate:     MustParseDate("2024-03-03"),
		Status:      ScheduleScheduled,
		Duration:    1,
	}
}

func TestSchedule_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Schedule)
		field  string
	}{
		{"valid", func(*Schedule) {}, ""},
		{"single day", func(s *Schedule) { s.EndDate = s.StartDate }, ""},
		{"missing start", func(s *Schedule) { s.StartDate = Date{} }, "startDate"},
		{"missing end", func(s *Schedule) { s.EndDate = Date{} }, "endDate"},
		{"end before start", func(s *Schedule) { s.EndDate = s.StartDate.AddDays(-1) }, "endDate"},
		{"bad status", func(s *Schedule) { s.Status = "paused" }, "status"},
		{"negative lag", func(s *Schedule) { s.PredecessorLag = -1 }, "predecessorLag"},
		{"zero duration", func(s *Schedule) { s.Duration = 0 }, "duration"},
		{"empty predecessor", func(s *Schedule) { empty := ""; s.PredecessorID = &empty }, "predecessorId"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSchedule()
			tc.mutate(&s)
			err := s.Validate()
			if tc.field == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestSchedule_CloneIsDeep(t *testing.T) {
	pred := "p1"
	s := validSchedule()
	s.PredecessorID = &pred

	c := s.Clone()
	c.EmployeeIDs[0] = "mallory"
	*c.PredecessorID = "p2"

	assert.Equal(t, "alice", s.EmployeeIDs[0])
	assert.Equal(t, "p1", *s.PredecessorID)
}

func TestSchedule_SpanDays(t *testing.T) {
	s := validSchedule()
	assert.Equal(t, 3, s.SpanDays())
	s.EndDate = s.StartDate
	assert.Equal(t, 1, s.SpanDays())
}

func TestSchedule_DependsOn(t *testing.T) {
	s := validSchedule()
	assert.False(t, s.HasPredecessor())
	assert.False(t, s.DependsOn("p1"))

	pred := "p1"
	s.PredecessorID = &pred
	assert.True(t, s.DependsOn("p1"))
	assert.False(t, s.DependsOn("p2"))

	s.ClearPredecessor(testNow)
	assert.False(t, s.HasPredecessor())
	assert.Equal(t, testNow, s.UpdatedAt)
}

func TestSchedule_Reschedule(t *testing.T) {
	s := validSchedule()
	s.Reschedule(MustParseDate("2024-04-01"), MustParseDate("2024-04-02"), testNow)
	assert.Equal(t, "2024-04-01", s.StartDate.String())
	assert.Equal(t, "2024-04-02", s.EndDate.String())
	assert.Equal(t, testNow, s.UpdatedAt)
}

func TestScheduleStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to ScheduleStatus
		ok       bool
	}{
		{ScheduleScheduled, ScheduleInProgress, true},
		{ScheduleScheduled, ScheduleCancelled, true},
		{ScheduleScheduled, ScheduleCompleted, false},
		{ScheduleInProgress, ScheduleCompleted, true},
		{ScheduleInProgress, ScheduleCancelled, true},
		{ScheduleInProgress, ScheduleScheduled, false},
		{ScheduleCompleted, ScheduleInProgress, false},
		{ScheduleCompleted, ScheduleCancelled, false},
		{ScheduleCancelled, ScheduleScheduled, false},
		{ScheduleCancelled, ScheduleCancelled, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestScheduleStatus_BooksEmployees(t *testing.T) {
	assert.True(t, ScheduleScheduled.BooksEmployees())
	assert.True(t, ScheduleInProgress.BooksEmployees())
	assert.False(t, ScheduleCompleted.BooksEmployees())
	assert.False(t, ScheduleCancelled.BooksEmployees())
}
