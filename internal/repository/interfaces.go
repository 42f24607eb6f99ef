package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/foreman/internal/domain"
)

// ErrKeyNotFound is returned by KVStore.Get for a missing key.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the local persistent key-value collaborator.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// PutBatch writes all entries atomically.
	PutBatch(ctx context.Context, entries map[string][]byte) error
	Close() error
}

// ScheduleRepo is the persistence boundary of the schedule engine: the whole
// collection is loaded once and saved in full after every mutation.
type ScheduleRepo interface {
	Load(ctx context.Context) ([]domain.Schedule, error)
	Save(ctx context.Context, schedules []domain.Schedule) error
}
