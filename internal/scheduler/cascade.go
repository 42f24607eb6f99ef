package scheduler

import (
	"time"

	"github.com/alexanderramin/foreman/internal/domain"
)

// Move describes a date change of one schedule.
type Move struct {
	ScheduleID string
	OldStart   domain.Date
	OldEnd     domain.Date
	NewStart   domain.Date
	NewEnd     domain.Date
}

// EndDelta is how many days the end of the moved schedule shifted.
func (m Move) EndDelta() int {
	return m.NewEnd.DaysSince(m.OldEnd)
}

// Shift records how a dependent was re-timed by a cascade.
type Shift struct {
	ScheduleID string      `json:"scheduleId"`
	Title      string      `json:"title"`
	OldStart   domain.Date `json:"oldStart"`
	OldEnd     domain.Date `json:"oldEnd"`
	NewStart   domain.Date `json:"newStart"`
	NewEnd     domain.Date `json:"newEnd"`
	Direct     bool        `json:"direct"`
}

// CascadeResult holds the re-timed copies of every dependent whose dates
// changed, in breadth-first order.
type CascadeResult struct {
	Shifts  []Shift
	Updated []domain.Schedule
}

// Len is the number of adjusted schedules.
func (r CascadeResult) Len() int { return len(r.Shifts) }

// Cascade re-times the dependents of m.ScheduleID. schedules is not modified.
//
// Direct dependents are pinned to the moved schedule's new end:
//
//	start = newEnd + lag + 1
//	end   = start + duration - 1   (UseDuration)
//	end   = start + span - 1       (otherwise; span is the inclusive day count before the move)
//
// Everything further down the chain receives the same shift as the moved
// schedule's end, keeping its own span. Lag is only recomputed one level deep.
func Cascade(schedules []domain.Schedule, m Move, now time.Time) CascadeResult {
	var res CascadeResult

	dependents := Dependents(schedules, m.ScheduleID)
	if len(dependents) == 0 {
		return res
	}

	delta := m.EndDelta()
	for _, d := range dependents {
		var start, end domain.Date
		direct := d.DependsOn(m.ScheduleID)
		if direct {
			start = m.NewEnd.AddDays(d.PredecessorLag + 1)
			if d.UseDuration {
				end = start.AddDays(d.Duration - 1)
			} else {
				end = start.AddDays(d.SpanDays() - 1)
			}
		} else {
			start = d.StartDate.AddDays(delta)
			end = d.EndDate.AddDays(delta)
		}

		if start.Equal(d.StartDate) && end.Equal(d.EndDate) {
			continue
		}

		updated := d.Clone()
		updated.Reschedule(start, end, now)
		res.Updated = append(res.Updated, updated)
		res.Shifts = append(res.Shifts, Shift{
			ScheduleID: d.ID,
			Title:      d.Title,
			OldStart:   d.StartDate,
			OldEnd:     d.EndDate,
			NewStart:   start,
			NewEnd:     end,
			Direct:     direct,
		})
	}
	return res
}

// CascadeWarning is an advisory double-booking introduced by a cascade.
// Cascades never reject on conflicts; callers decide what to do with these.
type CascadeWarning struct {
	ScheduleID string            `json:"scheduleId"`
	Conflicts  []domain.Conflict `json:"conflicts"`
}

// FlagConflicts checks each shifted schedule against the post-cascade
// collection.
func FlagConflicts(schedules []domain.Schedule, shifted []domain.Schedule) []CascadeWarning {
	var warnings []CascadeWarning
	for _, s := range shifted {
		if !s.Status.BooksEmployees() {
			continue
		}
		conflicts := CheckConflicts(schedules, s.EmployeeIDs, s.StartDate, s.EndDate, s.ID)
		if len(conflicts) > 0 {
			warnings = append(warnings, CascadeWarning{ScheduleID: s.ID, Conflicts: conflicts})
		}
	}
	return warnings
}
