package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the targeted schedule does not exist.
	ErrNotFound = errors.New("schedule not found")

	// ErrConflict indicates a mutation would double-book an employee.
	ErrConflict = errors.New("employee scheduling conflict")

	// ErrCycle indicates a predecessor assignment would close a dependency loop.
	ErrCycle = errors.New("circular dependency")

	// ErrInvalid indicates a field-level validation failure.
	ErrInvalid = errors.New("invalid schedule")
)

// Conflict is one (employee, existing schedule) double-booking.
type Conflict struct {
	EmployeeID    string `json:"employeeId" yaml:"employeeId"`
	ScheduleID    string `json:"scheduleId" yaml:"scheduleId"`
	ScheduleTitle string `json:"scheduleTitle" yaml:"scheduleTitle"`
	StartDate     Date   `json:"startDate" yaml:"startDate"`
	EndDate       Date   `json:"endDate" yaml:"endDate"`
}

// ConflictError carries every conflicting pair so callers can present specifics.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s on %q (%s..%s)", c.EmployeeID, c.ScheduleTitle, c.StartDate, c.EndDate))
	}
	return fmt.Sprintf("%s: %s", ErrConflict, strings.Join(parts, ", "))
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// EmployeeIDs returns the distinct employees involved, in first-seen order.
func (e *ConflictError) EmployeeIDs() []string {
	seen := make(map[string]bool, len(e.Conflicts))
	var ids []string
	for _, c := range e.Conflicts {
		if !seen[c.EmployeeID] {
			seen[c.EmployeeID] = true
			ids = append(ids, c.EmployeeID)
		}
	}
	return ids
}

type CycleError struct {
	ScheduleID    string
	PredecessorID string
}

func (e *CycleError) Error() string {
	if e.ScheduleID == e.PredecessorID {
		return fmt.Sprintf("%s: schedule %s cannot depend on itself", ErrCycle, e.ScheduleID)
	}
	return fmt.Sprintf("%s: schedule %s already precedes %s", ErrCycle, e.ScheduleID, e.PredecessorID)
}

func (e *CycleError) Is(target error) bool { return target == ErrCycle }

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalid, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// IsRejection reports whether err is one of the modeled, recoverable outcomes
// rather than a storage fault.
func IsRejection(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrCycle) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalid)
}

// RejectionKind names the rejection category of err, or "" for anything else.
func RejectionKind(err error) string {
	switch {
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrCycle):
		return "cycle"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalid):
		return "invalid"
	default:
		return ""
	}
}
