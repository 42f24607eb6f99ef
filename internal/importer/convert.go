package importer

import (
	"context"
	"fmt"

	"github.com/alexanderramin/foreman/internal/domain"
)

// PlannedSchedule is a create request whose predecessor is still a file ref.
type PlannedSchedule struct {
	Ref      string
	AfterRef string
	Input    domain.ScheduleInput
}

// Convert transforms a validated ImportSchema into create requests in file
// order. Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) ([]PlannedSchedule, error) {
	defaults := schema.Defaults
	if defaults == nil {
		defaults = &DefaultsImport{}
	}

	plan := make([]PlannedSchedule, 0, len(schema.Schedules))
	for _, s := range schema.Schedules {
		start, err := domain.ParseDate(s.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing %s.start_date: %w", s.Ref, err)
		}
		end := start
		if s.EndDate != nil && *s.EndDate != "" {
			if end, err = domain.ParseDate(*s.EndDate); err != nil {
				return nil, fmt.Errorf("parsing %s.end_date: %w", s.Ref, err)
			}
		}

		crew := s.Crew
		if len(crew) == 0 {
			crew = defaults.Crew
		}

		in := domain.ScheduleInput{
			Title:          s.Title,
			JobID:          domain.CoalesceStr(s.JobID, defaults.JobID),
			EmployeeIDs:    append([]string{}, crew...),
			StartDate:      start,
			EndDate:        end,
			PredecessorLag: s.Lag,
			Duration:       s.Duration,
			Notes:          s.Notes,
		}
		if s.Status != "" {
			st := domain.ScheduleStatus(s.Status)
			in.Status = &st
		}
		// An explicit duration implies duration-based re-timing unless the
		// entry or the defaults say otherwise.
		useDuration := domain.BoolFromPtrWithDefault(s.Duration != nil, s.UseDuration, defaults.UseDuration)
		in.UseDuration = &useDuration

		p := PlannedSchedule{Ref: s.Ref, Input: in}
		if s.After != nil {
			p.AfterRef = *s.After
		}
		plan = append(plan, p)
	}
	return plan, nil
}

// Creator is the part of the schedule service an import needs.
type Creator interface {
	Create(ctx context.Context, in domain.ScheduleInput) (*domain.Schedule, error)
}

// Apply creates the planned schedules in order, resolving each AfterRef to the
// id assigned to that earlier entry. It stops at the first rejection; entries
// created before it are kept.
func Apply(ctx context.Context, svc Creator, plan []PlannedSchedule) ([]domain.Schedule, error) {
	ids := make(map[string]string, len(plan))
	created := make([]domain.Schedule, 0, len(plan))

	for _, p := range plan {
		in := p.Input
		if p.AfterRef != "" {
			predID, ok := ids[p.AfterRef]
			if !ok {
				return created, fmt.Errorf("schedule %q: after ref %q has not been created", p.Ref, p.AfterRef)
			}
			in.PredecessorID = &predID
		}

		s, err := svc.Create(ctx, in)
		if err != nil {
			return created, fmt.Errorf("schedule %q: %w", p.Ref, err)
		}
		ids[p.Ref] = s.ID
		created = append(created, *s)
	}
	return created, nil
}
