package domain

import (
	"fmt"
	"slices"
	"time"
)

// Schedule is a single scheduled work assignment. Job and employee references
// are opaque ids owned by other parts of the application.
type Schedule struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	JobID       string         `json:"jobId" yaml:"jobId"`
	EmployeeIDs []string       `json:"employeeIds" yaml:"employeeIds"`
	StartDate   Date           `json:"startDate" yaml:"startDate"`
	EndDate     Date           `json:"endDate" yaml:"endDate"`
	Status      ScheduleStatus `json:"status" yaml:"status"`

	// Dependency
	PredecessorID  *string `json:"predecessorId" yaml:"predecessorId"`
	PredecessorLag int     `json:"predecessorLag" yaml:"predecessorLag"`
	Duration       int     `json:"duration" yaml:"duration"`
	UseDuration    bool    `json:"useDuration" yaml:"useDuration"`

	Notes     string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Clone returns a deep copy; the store hands these out so callers never share
// slices or pointers with the owned collection.
func (s Schedule) Clone() Schedule {
	c := s
	c.EmployeeIDs = slices.Clone(s.EmployeeIDs)
	if s.PredecessorID != nil {
		id := *s.PredecessorID
		c.PredecessorID = &id
	}
	return c
}

// HasPredecessor reports whether s depends on another schedule.
func (s *Schedule) HasPredecessor() bool {
	return s.PredecessorID != nil && *s.PredecessorID != ""
}

// DependsOn reports whether id is the direct predecessor of s.
func (s *Schedule) DependsOn(id string) bool {
	return s.HasPredecessor() && *s.PredecessorID == id
}

// SpanDays is the inclusive number of days the schedule covers.
func (s *Schedule) SpanDays() int {
	return s.EndDate.DaysSince(s.StartDate) + 1
}

// AssignedTo reports whether employeeID is on the crew.
func (s *Schedule) AssignedTo(employeeID string) bool {
	for _, id := range s.EmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// Validate checks the field-level invariants. Cross-entity rules (predecessor
// existence, cycles, conflicts) are enforced by the lifecycle service.
func (s *Schedule) Validate() error {
	if s.StartDate.IsZero() {
		return &ValidationError{Field: "startDate", Reason: "is required"}
	}
	if s.EndDate.IsZero() {
		return &ValidationError{Field: "endDate", Reason: "is required"}
	}
	if s.EndDate.Before(s.StartDate) {
		return &ValidationError{
			Field:  "endDate",
			Reason: fmt.Sprintf("%s is before startDate %s", s.EndDate, s.StartDate),
		}
	}
	if !ValidScheduleStatuses[s.Status] {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", s.Status)}
	}
	if s.PredecessorLag < 0 {
		return &ValidationError{Field: "predecessorLag", Reason: "must not be negative"}
	}
	if s.Duration < 1 {
		return &ValidationError{Field: "duration", Reason: "must be at least 1 day"}
	}
	if s.PredecessorID != nil && *s.PredecessorID == "" {
		return &ValidationError{Field: "predecessorId", Reason: "must not be empty"}
	}
	return nil
}

// Reschedule moves s to the given range and stamps UpdatedAt.
func (s *Schedule) Reschedule(start, end Date, now time.Time) {
	s.StartDate = start
	s.EndDate = end
	s.UpdatedAt = now
}

// ClearPredecessor unlinks s from its predecessor, leaving its dates alone.
func (s *Schedule) ClearPredecessor(now time.Time) {
	s.PredecessorID = nil
	s.UpdatedAt = now
}
