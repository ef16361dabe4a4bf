package service

import (
	"context"
	"errors"
	"math"

	"liftlog/internal/domain"
	"liftlog/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrSettingsUnavailable wraps failures of the settings store so callers
// can distinguish "the backend is down" from validation problems and
// decide whether to fall back to defaults (reads) or surface the error
// (writes).
var ErrSettingsUnavailable = errors.New("settings store unavailable")

// lbsPerKg is the conversion factor used across the app.
const lbsPerKg = 2.205

// SettingsService manages the per-user preferences record.
type SettingsService interface {
	// GetSettings returns the user's settings, creating the default
	// record (kg, no color overrides) on first access.
	GetSettings(ctx context.Context, ownerID primitive.ObjectID) (*domain.UserSettings, error)
	UpdateUnit(ctx context.Context, ownerID primitive.ObjectID, unit domain.WeightUnit) (*domain.UserSettings, error)
	// UpdateColors upserts the user's workout color overrides, merged
	// entry by entry into any existing overrides.
	UpdateColors(ctx context.Context, ownerID primitive.ObjectID, colors map[string]string) (*domain.UserSettings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new instance of settingsService.
func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetSettings(ctx context.Context, ownerID primitive.ObjectID) (*domain.UserSettings, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}

	settings, err := s.settingsRepo.GetByOwner(ctx, ownerID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Join(ErrSettingsUnavailable, err)
	}

	// First access: create the defaults record.
	settings = &domain.UserSettings{
		OwnerID:    ownerID,
		WeightUnit: domain.UnitKg,
	}
	if _, err := s.settingsRepo.Create(ctx, settings); err != nil {
		return nil, errors.Join(ErrSettingsUnavailable, err)
	}
	return settings, nil
}

func (s *settingsService) UpdateUnit(ctx context.Context, ownerID primitive.ObjectID, unit domain.WeightUnit) (*domain.UserSettings, error) {
	if !unit.IsValid() {
		return nil, ErrValidationFailed
	}

	settings, err := s.GetSettings(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	settings.WeightUnit = unit
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, errors.Join(ErrSettingsUnavailable, err)
	}
	return settings, nil
}

func (s *settingsService) UpdateColors(ctx context.Context, ownerID primitive.ObjectID, colors map[string]string) (*domain.UserSettings, error) {
	for dayType := range colors {
		if !domain.WorkoutDayType(dayType).IsValid() {
			return nil, ErrValidationFailed
		}
	}

	settings, err := s.GetSettings(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if settings.WorkoutColors == nil {
		settings.WorkoutColors = make(map[string]string, len(colors))
	}
	for dayType, hex := range colors {
		if hex == "" {
			// Empty value clears the override back to the default.
			delete(settings.WorkoutColors, dayType)
			continue
		}
		settings.WorkoutColors[dayType] = hex
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, errors.Join(ErrSettingsUnavailable, err)
	}
	return settings, nil
}

// ConvertWeight converts between kg and lbs, rounded to one decimal.
func ConvertWeight(weight float64, from, to domain.WeightUnit) float64 {
	if from == to {
		return weight
	}
	if from == domain.UnitKg && to == domain.UnitLbs {
		return math.Round(weight*lbsPerKg*10) / 10
	}
	return math.Round(weight/lbsPerKg*10) / 10
}
