package repository

import (
	"context"
	"time"

	"liftlog/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound       = RepositoryError("not found")
	ErrEmptyPattern   = RepositoryError("schedule pattern must not be empty")
	ErrDuplicateEmail = RepositoryError("user with this email already exists")
)

// RepositoryError helps distinguish repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// TemplateRepository defines the interface for workout template data.
// Exercises are embedded in the template document.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	Update(ctx context.Context, template *domain.WorkoutTemplate) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// LogRepository defines the interface for workout log data. from/to
// bound the session date (inclusive); nil means unbounded.
type LogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID, from, to *time.Time) ([]domain.WorkoutLog, error)
	Update(ctx context.Context, log *domain.WorkoutLog) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// RecordRepository defines the interface for personal record data.
type RecordRepository interface {
	Create(ctx context.Context, record *domain.PersonalRecord) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PersonalRecord, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.PersonalRecord, error)
	Update(ctx context.Context, record *domain.PersonalRecord) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// GoalRepository defines the interface for fitness goal data.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.FitnessGoal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FitnessGoal, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.FitnessGoal, error)
	Update(ctx context.Context, goal *domain.FitnessGoal) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// PhotoRepository defines the interface for progress photo metadata.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressPhoto, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ProgressPhoto, error)
	Update(ctx context.Context, photo *domain.ProgressPhoto) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// SettingsRepository defines the interface for the per-user settings
// record. GetByOwner returns ErrNotFound when the user has none yet;
// callers create lazily on first access.
type SettingsRepository interface {
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.UserSettings, error)
	Create(ctx context.Context, settings *domain.UserSettings) (primitive.ObjectID, error)
	Update(ctx context.Context, settings *domain.UserSettings) error
}

// ScheduleRepository defines the interface for repeating workout
// schedules. Unlike everything above, schedules live in the local
// file-backed store, so owners are identified by their hex id string.
//
// List returns schedules newest-created first; by convention the element
// at index 0 is the active schedule. Create rejects an empty pattern
// with ErrEmptyPattern before persisting anything. Delete of an unknown
// id is a no-op.
type ScheduleRepository interface {
	List(ctx context.Context, ownerID string) ([]domain.Schedule, error)
	Create(ctx context.Context, ownerID, name string, pattern []domain.WorkoutDayType, startDate time.Time) (*domain.Schedule, error)
	Update(ctx context.Context, ownerID, id string, patch domain.SchedulePatch) (*domain.Schedule, error)
	Delete(ctx context.Context, ownerID, id string) error
}
