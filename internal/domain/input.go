package domain

import (
	"slices"
	"time"
)

// ScheduleInput is caller intent for a new schedule. Nil pointers take the
// documented defaults.
type ScheduleInput struct {
	Title          string          `json:"title" yaml:"title"`
	JobID          string          `json:"jobId" yaml:"jobId"`
	EmployeeIDs    []string        `json:"employeeIds" yaml:"employeeIds"`
	StartDate      Date            `json:"startDate" yaml:"startDate"`
	EndDate        Date            `json:"endDate" yaml:"endDate"`
	Status         *ScheduleStatus `json:"status,omitempty" yaml:"status,omitempty"`
	PredecessorID  *string         `json:"predecessorId,omitempty" yaml:"predecessorId,omitempty"`
	PredecessorLag *int            `json:"predecessorLag,omitempty" yaml:"predecessorLag,omitempty"`
	Duration       *int            `json:"duration,omitempty" yaml:"duration,omitempty"`
	UseDuration    *bool           `json:"useDuration,omitempty" yaml:"useDuration,omitempty"`
	Notes          string          `json:"notes,omitempty" yaml:"notes,omitempty"`
}

const (
	DefaultPredecessorLag = 0
	DefaultDuration       = 1
)

// NewSchedule builds the entity for in, applying defaults.
func (in ScheduleInput) NewSchedule(id string, now time.Time) Schedule {
	status := ScheduleScheduled
	if in.Status != nil {
		status = *in.Status
	}
	s := Schedule{
		ID:             id,
		Title:          in.Title,
		JobID:          in.JobID,
		EmployeeIDs:    dedupe(in.EmployeeIDs),
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Status:         status,
		PredecessorLag: IntFromPtrWithDefault(DefaultPredecessorLag, in.PredecessorLag),
		Duration:       IntFromPtrWithDefault(DefaultDuration, in.Duration),
		UseDuration:    BoolFromPtrWithDefault(false, in.UseDuration),
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.PredecessorID != nil {
		pred := *in.PredecessorID
		s.PredecessorID = &pred
	}
	return s
}

// SchedulePatch describes an update. Nil fields are left untouched;
// ClearPredecessor removes the dependency link.
type SchedulePatch struct {
	Title            *string         `json:"title,omitempty"`
	JobID            *string         `json:"jobId,omitempty"`
	EmployeeIDs      *[]string       `json:"employeeIds,omitempty"`
	StartDate        *Date           `json:"startDate,omitempty"`
	EndDate          *Date           `json:"endDate,omitempty"`
	Status           *ScheduleStatus `json:"status,omitempty"`
	PredecessorID    *string         `json:"predecessorId,omitempty"`
	ClearPredecessor bool            `json:"clearPredecessor,omitempty"`
	PredecessorLag   *int            `json:"predecessorLag,omitempty"`
	Duration         *int            `json:"duration,omitempty"`
	UseDuration      *bool           `json:"useDuration,omitempty"`
	Notes            *string         `json:"notes,omitempty"`
}

// PatchEffect records which aspects of a schedule a patch actually changed.
type PatchEffect struct {
	Changed     bool
	Dates       bool
	Employees   bool
	Predecessor bool
	Status      bool
}

// Apply returns s with the patch applied and what it changed. s is not modified.
func (p SchedulePatch) Apply(s Schedule) (Schedule, PatchEffect) {
	next := s.Clone()
	var eff PatchEffect

	if p.Title != nil && *p.Title != next.Title {
		next.Title = *p.Title
		eff.Changed = true
	}
	if p.JobID != nil && *p.JobID != next.JobID {
		next.JobID = *p.JobID
		eff.Changed = true
	}
	if p.EmployeeIDs != nil {
		ids := dedupe(*p.EmployeeIDs)
		if !slices.Equal(ids, next.EmployeeIDs) {
			next.EmployeeIDs = ids
			eff.Employees = true
		}
	}
	if p.StartDate != nil && !p.StartDate.Equal(next.StartDate) {
		next.StartDate = *p.StartDate
		eff.Dates = true
	}
	if p.EndDate != nil && !p.EndDate.Equal(next.EndDate) {
		next.EndDate = *p.EndDate
		eff.Dates = true
	}
	if p.Status != nil && *p.Status != next.Status {
		next.Status = *p.Status
		eff.Status = true
	}
	switch {
	case p.ClearPredecessor:
		if next.HasPredecessor() {
			next.PredecessorID = nil
			eff.Predecessor = true
		}
	case p.PredecessorID != nil:
		if !next.DependsOn(*p.PredecessorID) {
			pred := *p.PredecessorID
			next.PredecessorID = &pred
			eff.Predecessor = true
		}
	}
	if p.PredecessorLag != nil && *p.PredecessorLag != next.PredecessorLag {
		next.PredecessorLag = *p.PredecessorLag
		eff.Changed = true
	}
	if p.Duration != nil && *p.Duration != next.Duration {
		next.Duration = *p.Duration
		eff.Changed = true
	}
	if p.UseDuration != nil && *p.UseDuration != next.UseDuration {
		next.UseDuration = *p.UseDuration
		eff.Changed = true
	}
	if p.Notes != nil && *p.Notes != next.Notes {
		next.Notes = *p.Notes
		eff.Changed = true
	}

	eff.Changed = eff.Changed || eff.Dates || eff.Employees || eff.Predecessor || eff.Status
	return next, eff
}

// dedupe drops repeated ids while keeping first-seen order. A nil or empty
// input yields an empty, non-nil slice so the JSON form is always a list.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
