package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/foreman/internal/domain"
)

// MemoryScheduleRepo is an in-process ScheduleRepo that can be told to fail.
type MemoryScheduleRepo struct {
	mu        sync.Mutex
	saved     []domain.Schedule
	saves     int
	LoadErr   error
	SaveErr   error
	FailAfter int // when > 0, saves beyond this count return SaveErr
}

// NewMemoryScheduleRepo seeds the repo with schedules.
func NewMemoryScheduleRepo(seed ...domain.Schedule) *MemoryScheduleRepo {
	return &MemoryScheduleRepo{saved: cloneAll(seed)}
}

func (r *MemoryScheduleRepo) Load(context.Context) ([]domain.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	return cloneAll(r.saved), nil
}

func (r *MemoryScheduleRepo) Save(_ context.Context, schedules []domain.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil && (r.FailAfter == 0 || r.saves >= r.FailAfter) {
		return r.SaveErr
	}
	r.saves++
	r.saved = cloneAll(schedules)
	return nil
}

// Saved returns what the last successful save persisted.
func (r *MemoryScheduleRepo) Saved() []domain.Schedule {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAll(r.saved)
}

// SaveCount is the number of successful saves.
func (r *MemoryScheduleRepo) SaveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func cloneAll(in []domain.Schedule) []domain.Schedule {
	out := make([]domain.Schedule, 0, len(in))
	for _, s := range in {
		out = append(out, s.Clone())
	}
	return out
}
