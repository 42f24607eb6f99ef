package domain

type ScheduleStatus string

const (
	ScheduleScheduled  ScheduleStatus = "scheduled"
	ScheduleInProgress ScheduleStatus = "in-progress"
	ScheduleCompleted  ScheduleStatus = "completed"
	ScheduleCancelled  ScheduleStatus = "cancelled"
)

// ValidScheduleStatuses is the canonical set of accepted status strings.
var ValidScheduleStatuses = map[ScheduleStatus]bool{
	ScheduleScheduled:  true,
	ScheduleInProgress: true,
	ScheduleCompleted:  true,
	ScheduleCancelled:  true,
}

// scheduleTransitions lists the statuses reachable from each non-terminal status.
var scheduleTransitions = map[ScheduleStatus][]ScheduleStatus{
	ScheduleScheduled:  {ScheduleInProgress, ScheduleCancelled},
	ScheduleInProgress: {ScheduleCompleted, ScheduleCancelled},
}

// IsTerminal reports whether no further status change is allowed.
func (s ScheduleStatus) IsTerminal() bool {
	return s == ScheduleCompleted || s == ScheduleCancelled
}

// CanTransitionTo reports whether s may move to next. Staying put is always allowed.
func (s ScheduleStatus) CanTransitionTo(next ScheduleStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range scheduleTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BooksEmployees reports whether a schedule in this status occupies its crew.
// Cancelled and completed work never double-books anybody.
func (s ScheduleStatus) BooksEmployees() bool {
	return !s.IsTerminal()
}
