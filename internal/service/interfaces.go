package service

import (
	"context"

	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/alexanderramin/foreman/internal/scheduler"
)

// ScheduleService is the lifecycle boundary of the engine. Mutations are
// serialized; each one either applies and persists fully or leaves the
// collection untouched.
type ScheduleService interface {
	Create(ctx context.Context, in domain.ScheduleInput) (*domain.Schedule, error)
	Update(ctx context.Context, id string, patch domain.SchedulePatch) (*UpdateResult, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)

	Get(ctx context.Context, id string) (*domain.Schedule, error)
	// List returns every schedule ordered by start date, then title, then id.
	List(ctx context.Context) ([]domain.Schedule, error)
	// Dependents returns the transitive dependents of id in breadth-first order.
	Dependents(ctx context.Context, id string) ([]domain.Schedule, error)

	HasCircularDependency(ctx context.Context, id, proposedPredecessorID string) bool
	CheckConflicts(ctx context.Context, employeeIDs []string, start, end domain.Date, excludeID string) []domain.Conflict
}

// UpdateResult is the outcome of a successful update.
type UpdateResult struct {
	Schedule domain.Schedule `json:"schedule"`
	// Changed is false for a patch that matched the current values.
	Changed  bool                       `json:"changed"`
	Shifts   []scheduler.Shift          `json:"shifts"`
	Warnings []scheduler.CascadeWarning `json:"warnings,omitempty"`
}

// DeleteResult is the outcome of a successful delete.
type DeleteResult struct {
	Deleted domain.Schedule `json:"deleted"`
	// Unlinked lists the former direct dependents whose predecessor was cleared.
	Unlinked []string `json:"unlinked"`
}
