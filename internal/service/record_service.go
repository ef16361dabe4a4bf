package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
	"liftlog/internal/schedule"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrRecordNotFound = errors.New("personal record not found")

// TopRecord pairs an exercise name with the heaviest record logged for it.
type TopRecord struct {
	ExerciseName string                `json:"exerciseName"`
	Record       domain.PersonalRecord `json:"record"`
}

// RecordService manages personal records.
type RecordService interface {
	CreateRecord(ctx context.Context, ownerID primitive.ObjectID, exerciseName string, weight float64, unit domain.WeightUnit, reps int, date time.Time, notes string) (*domain.PersonalRecord, error)
	GetRecords(ctx context.Context, ownerID primitive.ObjectID) ([]domain.PersonalRecord, error)
	GetRecordsByExercise(ctx context.Context, ownerID primitive.ObjectID) (map[string][]domain.PersonalRecord, error)
	GetTopRecords(ctx context.Context, ownerID primitive.ObjectID) ([]TopRecord, error)
	UpdateRecord(ctx context.Context, ownerID, recordID primitive.ObjectID, exerciseName string, weight float64, unit domain.WeightUnit, reps int, date time.Time, notes string) (*domain.PersonalRecord, error)
	DeleteRecord(ctx context.Context, ownerID, recordID primitive.ObjectID) error
}

type recordService struct {
	recordRepo repository.RecordRepository
}

// NewRecordService creates a new instance of recordService.
func NewRecordService(recordRepo repository.RecordRepository) RecordService {
	return &recordService{recordRepo: recordRepo}
}

// CreateRecord registers a new personal record. Reps defaults to 1 (a
// plain 1RM entry) and the unit to kg.
func (s *recordService) CreateRecord(ctx context.Context, ownerID primitive.ObjectID, exerciseName string, weight float64, unit domain.WeightUnit, reps int, date time.Time, notes string) (*domain.PersonalRecord, error) {
	if exerciseName == "" || weight <= 0 || date.IsZero() {
		return nil, ErrValidationFailed
	}
	if reps <= 0 {
		reps = 1
	}
	if unit == "" {
		unit = domain.UnitKg
	}
	if !unit.IsValid() {
		return nil, ErrValidationFailed
	}

	record := &domain.PersonalRecord{
		OwnerID:      ownerID,
		ExerciseName: exerciseName,
		Weight:       weight,
		Unit:         unit,
		Reps:         reps,
		Date:         schedule.Normalize(date),
		Notes:        notes,
	}

	recordID, err := s.recordRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return s.recordRepo.GetByID(ctx, recordID)
}

// GetRecords returns all of a user's records, most recent date first.
func (s *recordService) GetRecords(ctx context.Context, ownerID primitive.ObjectID) ([]domain.PersonalRecord, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	return s.recordRepo.GetByOwner(ctx, ownerID)
}

// GetRecordsByExercise groups a user's records by exercise name, each
// group sorted heaviest first.
func (s *recordService) GetRecordsByExercise(ctx context.Context, ownerID primitive.ObjectID) (map[string][]domain.PersonalRecord, error) {
	records, err := s.GetRecords(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.PersonalRecord)
	for _, record := range records {
		grouped[record.ExerciseName] = append(grouped[record.ExerciseName], record)
	}
	for _, group := range grouped {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Weight > group[j].Weight
		})
	}
	return grouped, nil
}

// GetTopRecords returns the heaviest record per exercise, sorted by
// exercise name for a stable listing.
func (s *recordService) GetTopRecords(ctx context.Context, ownerID primitive.ObjectID) ([]TopRecord, error) {
	grouped, err := s.GetRecordsByExercise(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	top := make([]TopRecord, 0, len(grouped))
	for exerciseName, group := range grouped {
		top = append(top, TopRecord{ExerciseName: exerciseName, Record: group[0]})
	}
	sort.Slice(top, func(i, j int) bool {
		return top[i].ExerciseName < top[j].ExerciseName
	})
	return top, nil
}

// UpdateRecord replaces a record's fields, enforcing ownership.
func (s *recordService) UpdateRecord(ctx context.Context, ownerID, recordID primitive.ObjectID, exerciseName string, weight float64, unit domain.WeightUnit, reps int, date time.Time, notes string) (*domain.PersonalRecord, error) {
	if exerciseName == "" || weight <= 0 || reps <= 0 || !unit.IsValid() || date.IsZero() {
		return nil, ErrValidationFailed
	}

	existing, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, ErrRecordNotFound
	}

	existing.ExerciseName = exerciseName
	existing.Weight = weight
	existing.Unit = unit
	existing.Reps = reps
	existing.Date = schedule.Normalize(date)
	existing.Notes = notes

	if err := s.recordRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteRecord deletes a record.
func (s *recordService) DeleteRecord(ctx context.Context, ownerID, recordID primitive.ObjectID) error {
	err := s.recordRepo.Delete(ctx, recordID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}
