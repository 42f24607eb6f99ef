package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/alexanderramin/foreman/internal/scheduler"
	"github.com/google/uuid"
)

// Options tunes the lifecycle service.
type Options struct {
	// FlagCascadeConflicts runs the conflict checker over cascaded schedules
	// and reports double-bookings as warnings.
	FlagCascadeConflicts bool
	// Now overrides the clock; nil uses time.Now in UTC.
	Now func() time.Time
	// NewID overrides id generation; nil uses random UUIDs.
	NewID func() string
}

type scheduleService struct {
	store    *ScheduleStore
	opts     Options
	observer UseCaseObserver

	// mu serializes mutations so that check and apply see the same collection.
	mu sync.Mutex
}

func NewScheduleService(store *ScheduleStore, opts Options, observers ...UseCaseObserver) ScheduleService {
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	return &scheduleService{
		store:    store,
		opts:     opts,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	fields["schedules"] = s.store.Len()
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *scheduleService) Create(ctx context.Context, in domain.ScheduleInput) (created *domain.Schedule, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"employees": len(in.EmployeeIDs)}
	defer func() { s.observe(ctx, "create-schedule", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	sched := in.NewSchedule(s.opts.NewID(), s.opts.Now())
	fields["schedule"] = sched.ID
	if err := sched.Validate(); err != nil {
		return nil, err
	}

	current := s.store.Snapshot()
	if sched.HasPredecessor() && indexOf(current, *sched.PredecessorID) < 0 {
		return nil, &domain.ValidationError{
			Field:  "predecessorId",
			Reason: fmt.Sprintf("references unknown schedule %s", *sched.PredecessorID),
		}
	}
	if sched.Status.BooksEmployees() {
		conflicts := scheduler.CheckConflicts(current, sched.EmployeeIDs, sched.StartDate, sched.EndDate, "")
		if len(conflicts) > 0 {
			return nil, &domain.ConflictError{Conflicts: conflicts}
		}
	}

	next := append(current, sched)
	if err := s.store.Commit(ctx, next); err != nil {
		return nil, err
	}
	out := sched.Clone()
	return &out, nil
}

func (s *scheduleService) Update(ctx context.Context, id string, patch domain.SchedulePatch) (result *UpdateResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"schedule": id}
	defer func() { s.observe(ctx, "update-schedule", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.store.Snapshot()
	idx := indexOf(current, id)
	if idx < 0 {
		return nil, &domain.NotFoundError{ID: id}
	}
	before := current[idx]

	next, eff := patch.Apply(before)
	if !eff.Changed {
		fields["changed"] = false
		return &UpdateResult{Schedule: before, Shifts: []scheduler.Shift{}}, nil
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if eff.Status && !before.Status.CanTransitionTo(next.Status) {
		return nil, &domain.ValidationError{
			Field:  "status",
			Reason: fmt.Sprintf("cannot move from %s to %s", before.Status, next.Status),
		}
	}
	if eff.Predecessor && next.HasPredecessor() {
		pred := *next.PredecessorID
		if pred != id && indexOf(current, pred) < 0 {
			return nil, &domain.ValidationError{
				Field:  "predecessorId",
				Reason: fmt.Sprintf("references unknown schedule %s", pred),
			}
		}
		if scheduler.HasCycle(current, id, pred) {
			return nil, &domain.CycleError{ScheduleID: id, PredecessorID: pred}
		}
	}

	now := s.opts.Now()
	next.UpdatedAt = now
	current[idx] = next

	var cascade scheduler.CascadeResult
	if eff.Dates {
		cascade = scheduler.Cascade(current, scheduler.Move{
			ScheduleID: id,
			OldStart:   before.StartDate,
			OldEnd:     before.EndDate,
			NewStart:   next.StartDate,
			NewEnd:     next.EndDate,
		}, now)
		for _, u := range cascade.Updated {
			current[indexOf(current, u.ID)] = u
		}
	}

	// Checked against the re-timed collection so a schedule never collides
	// with its own dependents at their old dates. Status-only changes skip
	// this: a cascade may already have double-booked the schedule.
	if (eff.Dates || eff.Employees) && next.Status.BooksEmployees() {
		conflicts := scheduler.CheckConflicts(current, next.EmployeeIDs, next.StartDate, next.EndDate, id)
		if len(conflicts) > 0 {
			return nil, &domain.ConflictError{Conflicts: conflicts}
		}
	}

	var warnings []scheduler.CascadeWarning
	if s.opts.FlagCascadeConflicts && cascade.Len() > 0 {
		warnings = scheduler.FlagConflicts(current, cascade.Updated)
	}

	if err := s.store.Commit(ctx, current); err != nil {
		return nil, err
	}

	fields["changed"] = true
	fields["cascaded"] = cascade.Len()
	fields["warnings"] = len(warnings)
	shifts := cascade.Shifts
	if shifts == nil {
		shifts = []scheduler.Shift{}
	}
	return &UpdateResult{
		Schedule: next.Clone(),
		Changed:  true,
		Shifts:   shifts,
		Warnings: warnings,
	}, nil
}

// Delete removes id. Direct dependents keep their dates and lose the link.
func (s *scheduleService) Delete(ctx context.Context, id string) (result *DeleteResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"schedule": id}
	defer func() { s.observe(ctx, "delete-schedule", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.store.Snapshot()
	idx := indexOf(current, id)
	if idx < 0 {
		return nil, &domain.NotFoundError{ID: id}
	}
	deleted := current[idx]

	now := s.opts.Now()
	next := make([]domain.Schedule, 0, len(current)-1)
	unlinked := []string{}
	for i := range current {
		if i == idx {
			continue
		}
		sched := current[i]
		if sched.DependsOn(id) {
			sched.ClearPredecessor(now)
			unlinked = append(unlinked, sched.ID)
		}
		next = append(next, sched)
	}

	if err := s.store.Commit(ctx, next); err != nil {
		return nil, err
	}
	fields["unlinked"] = len(unlinked)
	return &DeleteResult{Deleted: deleted, Unlinked: unlinked}, nil
}

func (s *scheduleService) Get(_ context.Context, id string) (*domain.Schedule, error) {
	sched, ok := s.store.Get(id)
	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}
	return &sched, nil
}

func (s *scheduleService) List(_ context.Context) ([]domain.Schedule, error) {
	schedules := s.store.Snapshot()
	sort.SliceStable(schedules, func(i, j int) bool {
		a, b := schedules[i], schedules[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
	return schedules, nil
}

func (s *scheduleService) Dependents(_ context.Context, id string) ([]domain.Schedule, error) {
	schedules := s.store.Snapshot()
	if indexOf(schedules, id) < 0 {
		return nil, &domain.NotFoundError{ID: id}
	}
	deps := scheduler.Dependents(schedules, id)
	if deps == nil {
		deps = []domain.Schedule{}
	}
	return deps, nil
}

func (s *scheduleService) HasCircularDependency(_ context.Context, id, proposedPredecessorID string) bool {
	return scheduler.HasCycle(s.store.Snapshot(), id, proposedPredecessorID)
}

func (s *scheduleService) CheckConflicts(_ context.Context, employeeIDs []string, start, end domain.Date, excludeID string) []domain.Conflict {
	conflicts := scheduler.CheckConflicts(s.store.Snapshot(), employeeIDs, start, end, excludeID)
	if conflicts == nil {
		conflicts = []domain.Conflict{}
	}
	return conflicts
}
