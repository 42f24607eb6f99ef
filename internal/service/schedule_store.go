package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/alexanderramin/foreman/internal/repository"
)

// ErrStoreNotLoaded is returned by Commit before Load has succeeded.
var ErrStoreNotLoaded = errors.New("schedule store not loaded")

// ScheduleStore exclusively owns the in-memory collection. Callers only ever
// see deep copies, and a new collection becomes visible only after the
// repository accepted it.
type ScheduleStore struct {
	repo repository.ScheduleRepo

	mu        sync.RWMutex
	schedules []domain.Schedule
	loaded    bool
}

func NewScheduleStore(repo repository.ScheduleRepo) *ScheduleStore {
	return &ScheduleStore{repo: repo}
}

// Load replaces the in-memory collection with what the repository holds.
func (s *ScheduleStore) Load(ctx context.Context) error {
	schedules, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules = cloneSchedules(schedules)
	s.loaded = true
	return nil
}

func (s *ScheduleStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Snapshot returns a deep copy of the collection.
func (s *ScheduleStore) Snapshot() []domain.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSchedules(s.schedules)
}

func (s *ScheduleStore) Get(id string) (domain.Schedule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.schedules {
		if s.schedules[i].ID == id {
			return s.schedules[i].Clone(), true
		}
	}
	return domain.Schedule{}, false
}

func (s *ScheduleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.schedules)
}

// Commit persists next and, only if that succeeds, makes it current.
func (s *ScheduleStore) Commit(ctx context.Context, next []domain.Schedule) error {
	if !s.Loaded() {
		return ErrStoreNotLoaded
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("committing schedules: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules = cloneSchedules(next)
	return nil
}

func cloneSchedules(in []domain.Schedule) []domain.Schedule {
	out := make([]domain.Schedule, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func indexOf(schedules []domain.Schedule, id string) int {
	for i := range schedules {
		if schedules[i].ID == id {
			return i
		}
	}
	return -1
}
