package service

import (
	"context"
	"errors"
	"sort"

	"liftlog/internal/domain"
	"liftlog/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound = errors.New("workout template not found")
	ErrValidationFailed = errors.New("validation failed")
)

// TemplateService manages workout templates and their exercise lists.
type TemplateService interface {
	CreateTemplate(ctx context.Context, ownerID primitive.ObjectID, name, description string, exercises []domain.TemplateExercise) (*domain.WorkoutTemplate, error)
	GetTemplate(ctx context.Context, ownerID, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error)
	GetTemplates(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	UpdateTemplate(ctx context.Context, ownerID, templateID primitive.ObjectID, name, description string, exercises []domain.TemplateExercise) (*domain.WorkoutTemplate, error)
	DeleteTemplate(ctx context.Context, ownerID, templateID primitive.ObjectID) error
}

// templateService implements the TemplateService interface.
type templateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

// CreateTemplate creates a template with its exercise list. Exercises
// are kept sorted by OrderIndex so readers never have to re-sort.
func (s *templateService) CreateTemplate(ctx context.Context, ownerID primitive.ObjectID, name, description string, exercises []domain.TemplateExercise) (*domain.WorkoutTemplate, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required to create a template")
	}
	for _, exercise := range exercises {
		if exercise.Name == "" {
			return nil, ErrValidationFailed
		}
	}
	sortExercises(exercises)

	template := &domain.WorkoutTemplate{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Exercises:   exercises,
	}

	templateID, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return nil, err
	}
	// Fetch again so callers get the repo-assigned timestamps.
	return s.templateRepo.GetByID(ctx, templateID)
}

// GetTemplate retrieves a single template, enforcing ownership.
func (s *templateService) GetTemplate(ctx context.Context, ownerID, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.OwnerID != ownerID {
		// Hide other users' templates entirely rather than admitting
		// they exist.
		return nil, ErrTemplateNotFound
	}
	return template, nil
}

// GetTemplates retrieves all templates for a user, newest first.
func (s *templateService) GetTemplates(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	return s.templateRepo.GetByOwner(ctx, ownerID)
}

// UpdateTemplate replaces a template's name, description and full
// exercise list (merge semantics per field, replace semantics for the
// list, matching how the editing form submits).
func (s *templateService) UpdateTemplate(ctx context.Context, ownerID, templateID primitive.ObjectID, name, description string, exercises []domain.TemplateExercise) (*domain.WorkoutTemplate, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}

	existing, err := s.GetTemplate(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}

	sortExercises(exercises)
	existing.Name = name
	existing.Description = description
	existing.Exercises = exercises

	if err := s.templateRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteTemplate deletes a template. Logs referencing it keep their
// denormalized exercise names, so nothing else needs cleanup.
func (s *templateService) DeleteTemplate(ctx context.Context, ownerID, templateID primitive.ObjectID) error {
	err := s.templateRepo.Delete(ctx, templateID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return nil
}

func sortExercises(exercises []domain.TemplateExercise) {
	sort.SliceStable(exercises, func(i, j int) bool {
		return exercises[i].OrderIndex < exercises[j].OrderIndex
	})
}
