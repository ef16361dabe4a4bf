package local

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
	"liftlog/internal/schedule"

	"github.com/google/uuid"
)

const schedulesKeyPrefix = "workout_schedules_"

// localScheduleRepository implements repository.ScheduleRepository on top
// of the file KV. A user's schedules are serialized as one JSON list per
// owner key and rewritten whole on every mutation; there is no partial
// update and no version check (last writer wins).
type localScheduleRepository struct {
	kv  *KV
	now func() time.Time
}

// NewScheduleRepository creates a schedule repository over kv. now is the
// clock used for assigned timestamps; pass time.Now outside of tests.
func NewScheduleRepository(kv *KV, now func() time.Time) repository.ScheduleRepository {
	return &localScheduleRepository{kv: kv, now: now}
}

// List returns the owner's schedules, newest-created first. A missing
// key means the user simply has none.
func (r *localScheduleRepository) List(_ context.Context, ownerID string) ([]domain.Schedule, error) {
	return r.load(ownerID), nil
}

// Create validates and persists a new schedule. The new record is
// prepended, making it the active schedule. The pattern must be
// non-empty and every entry a known day type; nothing is persisted on
// validation failure.
func (r *localScheduleRepository) Create(_ context.Context, ownerID, name string, pattern []domain.WorkoutDayType, startDate time.Time) (*domain.Schedule, error) {
	if len(pattern) == 0 {
		return nil, repository.ErrEmptyPattern
	}
	for _, dayType := range pattern {
		if !dayType.IsValid() {
			return nil, repository.RepositoryError("unknown workout day type: " + string(dayType))
		}
	}

	now := r.now().UTC()
	created := domain.Schedule{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Pattern:   append([]domain.WorkoutDayType(nil), pattern...),
		StartDate: schedule.Normalize(startDate),
		CreatedAt: now,
		UpdatedAt: now,
	}

	schedules := append([]domain.Schedule{created}, r.load(ownerID)...)
	if err := r.save(ownerID, schedules); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update merges patch into the schedule with the given id and refreshes
// updated_at. Returns ErrNotFound when the owner has no such schedule.
func (r *localScheduleRepository) Update(_ context.Context, ownerID, id string, patch domain.SchedulePatch) (*domain.Schedule, error) {
	if patch.Pattern != nil {
		// A patch may replace the pattern but never empty it.
		if len(patch.Pattern) == 0 {
			return nil, repository.ErrEmptyPattern
		}
		for _, dayType := range patch.Pattern {
			if !dayType.IsValid() {
				return nil, repository.RepositoryError("unknown workout day type: " + string(dayType))
			}
		}
	}

	schedules := r.load(ownerID)
	for i := range schedules {
		if schedules[i].ID != id {
			continue
		}
		if patch.Name != nil {
			schedules[i].Name = *patch.Name
		}
		if patch.Pattern != nil {
			schedules[i].Pattern = append([]domain.WorkoutDayType(nil), patch.Pattern...)
		}
		if patch.StartDate != nil {
			schedules[i].StartDate = schedule.Normalize(*patch.StartDate)
		}
		schedules[i].UpdatedAt = r.now().UTC()

		if err := r.save(ownerID, schedules); err != nil {
			return nil, err
		}
		updated := schedules[i]
		return &updated, nil
	}
	return nil, repository.ErrNotFound
}

// Delete removes the schedule with the given id. Deleting an id the
// owner does not have is a no-op, keeping delete idempotent.
func (r *localScheduleRepository) Delete(_ context.Context, ownerID, id string) error {
	schedules := r.load(ownerID)
	remaining := schedules[:0]
	for _, s := range schedules {
		if s.ID != id {
			remaining = append(remaining, s)
		}
	}
	if len(remaining) == len(schedules) {
		return nil
	}
	return r.save(ownerID, remaining)
}

// load reads and parses the owner's schedule list. A corrupt blob is
// logged and treated as an empty list rather than surfaced: losing a
// local schedule cache beats making every schedule read fail.
func (r *localScheduleRepository) load(ownerID string) []domain.Schedule {
	data, found, err := r.kv.Get(schedulesKeyPrefix + ownerID)
	if err != nil {
		log.Printf("ERROR: Failed to read schedules for owner %s: %v", ownerID, err)
		return nil
	}
	if !found {
		return nil
	}

	var schedules []domain.Schedule
	if err := json.Unmarshal(data, &schedules); err != nil {
		log.Printf("WARN: Corrupt schedule store for owner %s, treating as empty: %v", ownerID, err)
		return nil
	}
	return schedules
}

func (r *localScheduleRepository) save(ownerID string, schedules []domain.Schedule) error {
	if schedules == nil {
		schedules = []domain.Schedule{}
	}
	data, err := json.Marshal(schedules)
	if err != nil {
		return err
	}
	return r.kv.Set(schedulesKeyPrefix+ownerID, data)
}
