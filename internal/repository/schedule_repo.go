package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/foreman/internal/domain"
)

const (
	// SchedulesKey is the fixed collection name the schedule list is stored under.
	SchedulesKey = "schedules"

	schedulesMetaKey = SchedulesKey + ".meta"
)

// CollectionMeta is written alongside every save.
type CollectionMeta struct {
	Revision int64     `json:"revision"`
	Count    int       `json:"count"`
	SavedAt  time.Time `json:"savedAt"`
}

// KVScheduleRepo stores the schedule collection as one JSON document in a KVStore.
type KVScheduleRepo struct {
	kv KVStore
}

// NewKVScheduleRepo creates a new KVScheduleRepo.
func NewKVScheduleRepo(kv KVStore) *KVScheduleRepo {
	return &KVScheduleRepo{kv: kv}
}

// Load returns the stored collection; a store that was never written yields
// an empty one.
func (r *KVScheduleRepo) Load(ctx context.Context) ([]domain.Schedule, error) {
	raw, err := r.kv.Get(ctx, SchedulesKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return []domain.Schedule{}, nil
		}
		return nil, fmt.Errorf("loading schedules: %w", err)
	}

	var schedules []domain.Schedule
	if err := json.Unmarshal(raw, &schedules); err != nil {
		return nil, fmt.Errorf("decoding schedules: %w", err)
	}
	if schedules == nil {
		schedules = []domain.Schedule{}
	}
	return schedules, nil
}

// Save replaces the stored collection and bumps the revision.
func (r *KVScheduleRepo) Save(ctx context.Context, schedules []domain.Schedule) error {
	if schedules == nil {
		schedules = []domain.Schedule{}
	}
	body, err := json.Marshal(schedules)
	if err != nil {
		return fmt.Errorf("encoding schedules: %w", err)
	}

	meta, err := r.Meta(ctx)
	if err != nil {
		return err
	}
	meta.Revision++
	meta.Count = len(schedules)
	meta.SavedAt = time.Now().UTC()
	metaBody, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding schedules meta: %w", err)
	}

	if err := r.kv.PutBatch(ctx, map[string][]byte{
		SchedulesKey:     body,
		schedulesMetaKey: metaBody,
	}); err != nil {
		return fmt.Errorf("saving schedules: %w", err)
	}
	return nil
}

// Meta returns the bookkeeping of the last save; zero before the first one.
func (r *KVScheduleRepo) Meta(ctx context.Context) (CollectionMeta, error) {
	var meta CollectionMeta
	raw, err := r.kv.Get(ctx, schedulesMetaKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return meta, nil
		}
		return meta, fmt.Errorf("loading schedules meta: %w", err)
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return meta, fmt.Errorf("decoding schedules meta: %w", err)
	}
	return meta, nil
}
