package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"liftlog/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockGoalRepo struct {
	CreateFunc     func(ctx context.Context, goal *domain.FitnessGoal) (primitive.ObjectID, error)
	GetByIDFunc    func(ctx context.Context, id primitive.ObjectID) (*domain.FitnessGoal, error)
	GetByOwnerFunc func(ctx context.Context, ownerID primitive.ObjectID) ([]domain.FitnessGoal, error)
	UpdateFunc     func(ctx context.Context, goal *domain.FitnessGoal) error
	DeleteFunc     func(ctx context.Context, id, ownerID primitive.ObjectID) error
}

func (m *mockGoalRepo) Create(ctx context.Context, goal *domain.FitnessGoal) (primitive.ObjectID, error) {
	return m.CreateFunc(ctx, goal)
}

func (m *mockGoalRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FitnessGoal, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockGoalRepo) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.FitnessGoal, error) {
	return m.GetByOwnerFunc(ctx, ownerID)
}

func (m *mockGoalRepo) Update(ctx context.Context, goal *domain.FitnessGoal) error {
	return m.UpdateFunc(ctx, goal)
}

func (m *mockGoalRepo) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	return m.DeleteFunc(ctx, id, ownerID)
}

func TestSetAchievedStampsDate(t *testing.T) {
	t.Parallel()

	ownerID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()
	repo := &mockGoalRepo{
		GetByIDFunc: func(context.Context, primitive.ObjectID) (*domain.FitnessGoal, error) {
			return &domain.FitnessGoal{ID: goalID, OwnerID: ownerID, Title: "Squat 2x bodyweight"}, nil
		},
		UpdateFunc: func(context.Context, *domain.FitnessGoal) error { return nil },
	}
	clock := func() time.Time {
		return time.Date(2024, time.August, 14, 20, 15, 0, 0, time.UTC)
	}
	svc := NewGoalService(repo, clock)

	goal, err := svc.SetAchieved(context.Background(), ownerID, goalID, true)
	if err != nil {
		t.Fatalf("SetAchieved: %v", err)
	}
	if !goal.Achieved {
		t.Error("goal not marked achieved")
	}
	wantDate := time.Date(2024, time.August, 14, 0, 0, 0, 0, time.UTC)
	if goal.AchievedDate == nil || !goal.AchievedDate.Equal(wantDate) {
		t.Errorf("AchievedDate = %v, want %v", goal.AchievedDate, wantDate)
	}

	// Un-achieving clears the date again.
	repo.GetByIDFunc = func(context.Context, primitive.ObjectID) (*domain.FitnessGoal, error) {
		achievedDate := wantDate
		return &domain.FitnessGoal{ID: goalID, OwnerID: ownerID, Title: "Squat 2x bodyweight", Achieved: true, AchievedDate: &achievedDate}, nil
	}
	goal, err = svc.SetAchieved(context.Background(), ownerID, goalID, false)
	if err != nil {
		t.Fatalf("SetAchieved(false): %v", err)
	}
	if goal.Achieved || goal.AchievedDate != nil {
		t.Errorf("after clearing: achieved=%v date=%v, want false/nil", goal.Achieved, goal.AchievedDate)
	}
}

func TestSetAchievedOwnership(t *testing.T) {
	t.Parallel()

	repo := &mockGoalRepo{
		GetByIDFunc: func(_ context.Context, id primitive.ObjectID) (*domain.FitnessGoal, error) {
			return &domain.FitnessGoal{ID: id, OwnerID: primitive.NewObjectID(), Title: "someone else's"}, nil
		},
	}
	svc := NewGoalService(repo, time.Now)

	_, err := svc.SetAchieved(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), true)
	if !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("err = %v, want ErrGoalNotFound", err)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	t.Parallel()

	svc := NewGoalService(&mockGoalRepo{}, time.Now)

	_, err := svc.CreateGoal(context.Background(), primitive.NewObjectID(), "", "", "strength", nil, "")
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("empty title err = %v, want ErrValidationFailed", err)
	}
}

func TestCreateGoalStartsUnachieved(t *testing.T) {
	t.Parallel()

	var stored *domain.FitnessGoal
	goalID := primitive.NewObjectID()
	repo := &mockGoalRepo{
		CreateFunc: func(_ context.Context, goal *domain.FitnessGoal) (primitive.ObjectID, error) {
			stored = goal
			return goalID, nil
		},
		GetByIDFunc: func(context.Context, primitive.ObjectID) (*domain.FitnessGoal, error) {
			return stored, nil
		},
	}
	svc := NewGoalService(repo, time.Now)

	target := 120.0
	goal, err := svc.CreateGoal(context.Background(), primitive.NewObjectID(), "Bench 120", "", "strength", &target, "kg")
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if goal.Achieved || goal.AchievedDate != nil {
		t.Errorf("new goal achieved=%v date=%v, want false/nil", goal.Achieved, goal.AchievedDate)
	}
}
