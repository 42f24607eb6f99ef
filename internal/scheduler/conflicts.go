package scheduler

import (
	"sort"

	"github.com/alexanderramin/foreman/internal/domain"
)

// Overlaps reports whether two inclusive day ranges share at least one day.
// A range ending on day N and one starting on day N overlap; one starting on
// N+1 does not.
func Overlaps(aStart, aEnd, bStart, bEnd domain.Date) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// CheckConflicts scans schedules for bookings of any of employeeIDs that
// overlap [start, end]. excludeID (may be empty) is skipped so an update can be
// checked against everything but itself. Schedules that no longer book their
// crew (completed, cancelled) are ignored.
//
// The result has one entry per (employee, schedule) pair, ordered by the
// conflicting schedule's start date and then by the order of employeeIDs.
func CheckConflicts(schedules []domain.Schedule, employeeIDs []string, start, end domain.Date, excludeID string) []domain.Conflict {
	if len(employeeIDs) == 0 {
		return nil
	}

	var conflicts []domain.Conflict
	for i := range schedules {
		s := &schedules[i]
		if s.ID == excludeID || !s.Status.BooksEmployees() {
			continue
		}
		if !Overlaps(start, end, s.StartDate, s.EndDate) {
			continue
		}
		for _, emp := range employeeIDs {
			if s.AssignedTo(emp) {
				conflicts = append(conflicts, domain.Conflict{
					EmployeeID:    emp,
					ScheduleID:    s.ID,
					ScheduleTitle: s.Title,
					StartDate:     s.StartDate,
					EndDate:       s.EndDate,
				})
			}
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		return conflicts[i].StartDate.Before(conflicts[j].StartDate)
	})
	return conflicts
}
