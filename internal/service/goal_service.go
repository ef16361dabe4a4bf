package service

import (
	"context"
	"errors"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
	"liftlog/internal/schedule"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrGoalNotFound = errors.New("fitness goal not found")

// GoalService manages fitness goals.
type GoalService interface {
	CreateGoal(ctx context.Context, ownerID primitive.ObjectID, title, description, category string, targetValue *float64, targetUnit string) (*domain.FitnessGoal, error)
	GetGoals(ctx context.Context, ownerID primitive.ObjectID) ([]domain.FitnessGoal, error)
	UpdateGoal(ctx context.Context, ownerID, goalID primitive.ObjectID, title, description, category string, targetValue *float64, targetUnit string) (*domain.FitnessGoal, error)
	SetAchieved(ctx context.Context, ownerID, goalID primitive.ObjectID, achieved bool) (*domain.FitnessGoal, error)
	DeleteGoal(ctx context.Context, ownerID, goalID primitive.ObjectID) error
}

type goalService struct {
	goalRepo repository.GoalRepository
	now      func() time.Time
}

// NewGoalService creates a new instance of goalService. now supplies the
// achieved date; pass time.Now outside of tests.
func NewGoalService(goalRepo repository.GoalRepository, now func() time.Time) GoalService {
	return &goalService{goalRepo: goalRepo, now: now}
}

// CreateGoal creates a new (un-achieved) goal.
func (s *goalService) CreateGoal(ctx context.Context, ownerID primitive.ObjectID, title, description, category string, targetValue *float64, targetUnit string) (*domain.FitnessGoal, error) {
	if title == "" {
		return nil, ErrValidationFailed
	}
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required to create a goal")
	}

	goal := &domain.FitnessGoal{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Category:    category,
		TargetValue: targetValue,
		TargetUnit:  targetUnit,
	}

	goalID, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}
	return s.goalRepo.GetByID(ctx, goalID)
}

// GetGoals returns all of a user's goals, newest first.
func (s *goalService) GetGoals(ctx context.Context, ownerID primitive.ObjectID) ([]domain.FitnessGoal, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	return s.goalRepo.GetByOwner(ctx, ownerID)
}

// UpdateGoal replaces a goal's descriptive fields; the achieved state is
// only changed through SetAchieved.
func (s *goalService) UpdateGoal(ctx context.Context, ownerID, goalID primitive.ObjectID, title, description, category string, targetValue *float64, targetUnit string) (*domain.FitnessGoal, error) {
	if title == "" {
		return nil, ErrValidationFailed
	}

	existing, err := s.getOwned(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}

	existing.Title = title
	existing.Description = description
	existing.Category = category
	existing.TargetValue = targetValue
	existing.TargetUnit = targetUnit

	if err := s.goalRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return existing, nil
}

// SetAchieved toggles a goal's achieved flag. Achieving stamps today's
// date; un-achieving clears it.
func (s *goalService) SetAchieved(ctx context.Context, ownerID, goalID primitive.ObjectID, achieved bool) (*domain.FitnessGoal, error) {
	existing, err := s.getOwned(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}

	existing.Achieved = achieved
	if achieved {
		achievedDate := schedule.Normalize(s.now())
		existing.AchievedDate = &achievedDate
	} else {
		existing.AchievedDate = nil
	}

	if err := s.goalRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteGoal deletes a goal.
func (s *goalService) DeleteGoal(ctx context.Context, ownerID, goalID primitive.ObjectID) error {
	err := s.goalRepo.Delete(ctx, goalID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	return nil
}

func (s *goalService) getOwned(ctx context.Context, ownerID, goalID primitive.ObjectID) (*domain.FitnessGoal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if goal.OwnerID != ownerID {
		return nil, ErrGoalNotFound
	}
	return goal, nil
}
