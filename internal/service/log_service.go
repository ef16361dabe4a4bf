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

var ErrLogNotFound = errors.New("workout log not found")

// LogService manages completed workout sessions.
type LogService interface {
	CreateLog(ctx context.Context, ownerID primitive.ObjectID, templateID *primitive.ObjectID, date time.Time, notes string, durationMinutes *int, sets []domain.SetEntry) (*domain.WorkoutLog, error)
	GetLog(ctx context.Context, ownerID, logID primitive.ObjectID) (*domain.WorkoutLog, error)
	GetLogs(ctx context.Context, ownerID primitive.ObjectID, from, to *time.Time) ([]domain.WorkoutLog, error)
	UpdateLog(ctx context.Context, ownerID, logID primitive.ObjectID, templateID *primitive.ObjectID, date time.Time, notes string, durationMinutes *int, sets []domain.SetEntry) (*domain.WorkoutLog, error)
	DeleteLog(ctx context.Context, ownerID, logID primitive.ObjectID) error
}

type logService struct {
	logRepo repository.LogRepository
}

// NewLogService creates a new instance of logService.
func NewLogService(logRepo repository.LogRepository) LogService {
	return &logService{logRepo: logRepo}
}

// CreateLog records a completed session. The session date is normalized
// to a calendar date; set entries are ordered by OrderIndex.
func (s *logService) CreateLog(ctx context.Context, ownerID primitive.ObjectID, templateID *primitive.ObjectID, date time.Time, notes string, durationMinutes *int, sets []domain.SetEntry) (*domain.WorkoutLog, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required to create a log")
	}
	if date.IsZero() {
		return nil, ErrValidationFailed
	}
	for _, set := range sets {
		if set.ExerciseName == "" || set.Reps <= 0 {
			return nil, ErrValidationFailed
		}
	}
	sortSets(sets)

	workoutLog := &domain.WorkoutLog{
		OwnerID:         ownerID,
		TemplateID:      templateID,
		Date:            schedule.Normalize(date),
		Notes:           notes,
		DurationMinutes: durationMinutes,
		Sets:            sets,
	}

	logID, err := s.logRepo.Create(ctx, workoutLog)
	if err != nil {
		return nil, err
	}
	return s.logRepo.GetByID(ctx, logID)
}

// GetLog retrieves a single log, enforcing ownership.
func (s *logService) GetLog(ctx context.Context, ownerID, logID primitive.ObjectID) (*domain.WorkoutLog, error) {
	workoutLog, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	if workoutLog.OwnerID != ownerID {
		return nil, ErrLogNotFound
	}
	return workoutLog, nil
}

// GetLogs retrieves a user's history, optionally bounded by an inclusive
// session date range, most recent first.
func (s *logService) GetLogs(ctx context.Context, ownerID primitive.ObjectID, from, to *time.Time) ([]domain.WorkoutLog, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	if from != nil {
		normalized := schedule.Normalize(*from)
		from = &normalized
	}
	if to != nil {
		normalized := schedule.Normalize(*to)
		to = &normalized
	}
	return s.logRepo.GetByOwner(ctx, ownerID, from, to)
}

// UpdateLog replaces a log's fields and set list.
func (s *logService) UpdateLog(ctx context.Context, ownerID, logID primitive.ObjectID, templateID *primitive.ObjectID, date time.Time, notes string, durationMinutes *int, sets []domain.SetEntry) (*domain.WorkoutLog, error) {
	existing, err := s.GetLog(ctx, ownerID, logID)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, ErrValidationFailed
	}
	sortSets(sets)

	existing.TemplateID = templateID
	existing.Date = schedule.Normalize(date)
	existing.Notes = notes
	existing.DurationMinutes = durationMinutes
	existing.Sets = sets

	if err := s.logRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteLog deletes a log.
func (s *logService) DeleteLog(ctx context.Context, ownerID, logID primitive.ObjectID) error {
	err := s.logRepo.Delete(ctx, logID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return err
	}
	return nil
}

func sortSets(sets []domain.SetEntry) {
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].OrderIndex < sets[j].OrderIndex
	})
}
