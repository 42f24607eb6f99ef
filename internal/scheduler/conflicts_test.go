package scheduler

import (
	"testing"

	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/alexanderramin/foreman/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) domain.Date { return domain.MustParseDate(s) }

func TestOverlaps_InclusiveDays(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		overlap      bool
	}{
		{"identical", "2024-03-01", "2024-03-03", "2024-03-01", "2024-03-03", true},
		{"partial", "2024-03-02", "2024-03-04", "2024-03-01", "2024-03-03", true},
		{"contained", "2024-03-02", "2024-03-02", "2024-03-01", "2024-03-03", true},
		{"containing", "2024-02-01", "2024-04-01", "2024-03-01", "2024-03-03", true},
		{"shared last day", "2024-03-03", "2024-03-05", "2024-03-01", "2024-03-03", true},
		{"shared first day", "2024-02-25", "2024-03-01", "2024-03-01", "2024-03-03", true},
		{"day after", "2024-03-04", "2024-03-05", "2024-03-01", "2024-03-03", false},
		{"day before", "2024-02-27", "2024-02-29", "2024-03-01", "2024-03-03", false},
		{"single days equal", "2024-03-01", "2024-03-01", "2024-03-01", "2024-03-01", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, Overlaps(d(tc.aStart), d(tc.aEnd), d(tc.bStart), d(tc.bEnd)))
			assert.Equal(t, tc.overlap, Overlaps(d(tc.bStart), d(tc.bEnd), d(tc.aStart), d(tc.aEnd)), "symmetric")
		})
	}
}

func TestCheckConflicts_IdenticalRangeConflicts(t *testing.T) {
	s1 := testutil.NewTestSchedule("S1", testutil.WithID("s1"),
		testutil.WithEmployees("alice"), testutil.WithDates("2024-03-01", "2024-03-03"))

	got := CheckConflicts([]domain.Schedule{s1}, []string{"alice"}, d("2024-03-01"), d("2024-03-03"), "")
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].EmployeeID)
	assert.Equal(t, "s1", got[0].ScheduleID)
	assert.Equal(t, "S1", got[0].ScheduleTitle)

	got = CheckConflicts([]domain.Schedule{s1}, []string{"alice"}, d("2024-03-04"), d("2024-03-06"), "")
	assert.Empty(t, got, "strictly after is free")
}

func TestCheckConflicts_EmptyCrew(t *testing.T) {
	s1 := testutil.NewTestSchedule("S1", testutil.WithEmployees("alice"))
	assert.Empty(t, CheckConflicts([]domain.Schedule{s1}, nil, d("2024-03-01"), d("2024-03-01"), ""))
	assert.Empty(t, CheckConflicts([]domain.Schedule{s1}, []string{}, d("2024-03-01"), d("2024-03-01"), ""))
}

func TestCheckConflicts_ExcludesSelf(t *testing.T) {
	s1 := testutil.NewTestSchedule("S1", testutil.WithID("s1"), testutil.WithEmployees("alice"))
	assert.Empty(t, CheckConflicts([]domain.Schedule{s1}, []string{"alice"}, s1.StartDate, s1.EndDate, "s1"))
}

func TestCheckConflicts_OnePerPair(t *testing.T) {
	schedules := []domain.Schedule{
		testutil.NewTestSchedule("Late", testutil.WithID("late"),
			testutil.WithEmployees("alice", "bob"), testutil.WithDates("2024-03-05", "2024-03-06")),
		testutil.NewTestSchedule("Early", testutil.WithID("early"),
			testutil.WithEmployees("bob", "carol"), testutil.WithDates("2024-03-01", "2024-03-02")),
		testutil.NewTestSchedule("Elsewhere", testutil.WithID("other"),
			testutil.WithEmployees("dave"), testutil.WithDates("2024-03-01", "2024-03-10")),
	}

	got := CheckConflicts(schedules, []string{"bob", "alice", "carol"}, d("2024-03-01"), d("2024-03-10"), "")
	require.Len(t, got, 4)
	assert.Equal(t, "early", got[0].ScheduleID)
	assert.Equal(t, "bob", got[0].EmployeeID)
	assert.Equal(t, "early", got[1].ScheduleID)
	assert.Equal(t, "carol", got[1].EmployeeID)
	assert.Equal(t, "late", got[2].ScheduleID)
	assert.Equal(t, "bob", got[2].EmployeeID)
	assert.Equal(t, "late", got[3].ScheduleID)
	assert.Equal(t, "alice", got[3].EmployeeID)
}

func TestCheckConflicts_IgnoresFinishedWork(t *testing.T) {
	schedules := []domain.Schedule{
		testutil.NewTestSchedule("Done", testutil.WithEmployees("alice"), testutil.WithStatus(domain.ScheduleCompleted)),
		testutil.NewTestSchedule("Off", testutil.WithEmployees("alice"), testutil.WithStatus(domain.ScheduleCancelled)),
		testutil.NewTestSchedule("Live", testutil.WithID("live"), testutil.WithEmployees("alice"), testutil.WithStatus(domain.ScheduleInProgress)),
	}
	got := CheckConflicts(schedules, []string{"alice"}, d("2024-03-01"), d("2024-03-01"), "")
	require.Len(t, got, 1)
	assert.Equal(t, "live", got[0].ScheduleID)
}
