package service

import (
	"context"
	"errors"
	"testing"

	"liftlog/internal/domain"
	"liftlog/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConvertWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		weight float64
		from   domain.WeightUnit
		to     domain.WeightUnit
		want   float64
	}{
		{"kg to lbs", 100, domain.UnitKg, domain.UnitLbs, 220.5},
		{"lbs to kg", 220.5, domain.UnitLbs, domain.UnitKg, 100},
		{"same unit unchanged", 82.3, domain.UnitKg, domain.UnitKg, 82.3},
		{"rounds to one decimal", 60, domain.UnitKg, domain.UnitLbs, 132.3},
		{"zero stays zero", 0, domain.UnitKg, domain.UnitLbs, 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ConvertWeight(tc.weight, tc.from, tc.to); got != tc.want {
				t.Errorf("ConvertWeight(%v, %s, %s) = %v, want %v",
					tc.weight, tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestGetSettingsLazyCreate(t *testing.T) {
	t.Parallel()

	var created *domain.UserSettings
	repo := &mockSettingsRepo{
		GetByOwnerFunc: func(context.Context, primitive.ObjectID) (*domain.UserSettings, error) {
			return nil, repository.ErrNotFound
		},
		CreateFunc: func(_ context.Context, settings *domain.UserSettings) (primitive.ObjectID, error) {
			created = settings
			return primitive.NewObjectID(), nil
		},
	}
	svc := NewSettingsService(repo)

	ownerID := primitive.NewObjectID()
	settings, err := svc.GetSettings(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.WeightUnit != domain.UnitKg {
		t.Errorf("default unit = %q, want kg", settings.WeightUnit)
	}
	if len(settings.WorkoutColors) != 0 {
		t.Errorf("default colors = %v, want empty", settings.WorkoutColors)
	}
	if created == nil || created.OwnerID != ownerID {
		t.Error("defaults record was not persisted for the owner")
	}
}

func TestGetSettingsExisting(t *testing.T) {
	t.Parallel()

	repo := &mockSettingsRepo{
		GetByOwnerFunc: func(context.Context, primitive.ObjectID) (*domain.UserSettings, error) {
			return &domain.UserSettings{WeightUnit: domain.UnitLbs}, nil
		},
		CreateFunc: func(context.Context, *domain.UserSettings) (primitive.ObjectID, error) {
			t.Error("Create called for an existing settings record")
			return primitive.NilObjectID, nil
		},
	}
	svc := NewSettingsService(repo)

	settings, err := svc.GetSettings(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.WeightUnit != domain.UnitLbs {
		t.Errorf("unit = %q, want lbs", settings.WeightUnit)
	}
}

func TestGetSettingsUpstreamFailure(t *testing.T) {
	t.Parallel()

	repo := &mockSettingsRepo{
		GetByOwnerFunc: func(context.Context, primitive.ObjectID) (*domain.UserSettings, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := NewSettingsService(repo)

	_, err := svc.GetSettings(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, ErrSettingsUnavailable) {
		t.Errorf("err = %v, want ErrSettingsUnavailable", err)
	}
}

func TestUpdateUnit(t *testing.T) {
	t.Parallel()

	stored := &domain.UserSettings{WeightUnit: domain.UnitKg}
	repo := &mockSettingsRepo{
		GetByOwnerFunc: func(context.Context, primitive.ObjectID) (*domain.UserSettings, error) {
			return stored, nil
		},
		UpdateFunc: func(_ context.Context, settings *domain.UserSettings) error {
			stored = settings
			return nil
		},
	}
	svc := NewSettingsService(repo)

	settings, err := svc.UpdateUnit(context.Background(), primitive.NewObjectID(), domain.UnitLbs)
	if err != nil {
		t.Fatalf("UpdateUnit: %v", err)
	}
	if settings.WeightUnit != domain.UnitLbs || stored.WeightUnit != domain.UnitLbs {
		t.Errorf("unit after update = %q (stored %q), want lbs", settings.WeightUnit, stored.WeightUnit)
	}

	if _, err := svc.UpdateUnit(context.Background(), primitive.NewObjectID(), "stone"); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("invalid unit err = %v, want ErrValidationFailed", err)
	}
}

func TestUpdateColorsMergesAndClears(t *testing.T) {
	t.Parallel()

	stored := &domain.UserSettings{
		WeightUnit:    domain.UnitKg,
		WorkoutColors: map[string]string{"push": "#EC4899", "legs": "#84CC16"},
	}
	repo := &mockSettingsRepo{
		GetByOwnerFunc: func(context.Context, primitive.ObjectID) (*domain.UserSettings, error) {
			return stored, nil
		},
		UpdateFunc: func(context.Context, *domain.UserSettings) error { return nil },
	}
	svc := NewSettingsService(repo)

	settings, err := svc.UpdateColors(context.Background(), primitive.NewObjectID(), map[string]string{
		"pull": "#F59E0B", // new override
		"legs": "",        // clear back to default
	})
	if err != nil {
		t.Fatalf("UpdateColors: %v", err)
	}

	want := map[string]string{"push": "#EC4899", "pull": "#F59E0B"}
	if len(settings.WorkoutColors) != len(want) {
		t.Fatalf("colors = %v, want %v", settings.WorkoutColors, want)
	}
	for dayType, hex := range want {
		if settings.WorkoutColors[dayType] != hex {
			t.Errorf("colors[%q] = %q, want %q", dayType, settings.WorkoutColors[dayType], hex)
		}
	}
}

func TestUpdateColorsRejectsUnknownDayType(t *testing.T) {
	t.Parallel()

	svc := NewSettingsService(&mockSettingsRepo{})

	_, err := svc.UpdateColors(context.Background(), primitive.NewObjectID(), map[string]string{"arms": "#FFFFFF"})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}
}
