package service

import (
	"context"
	"errors"
	"log"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
	"liftlog/internal/schedule"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrEmptyPattern     = errors.New("schedule pattern must not be empty")
)

// ScheduleService glues the pure resolver to the schedule store and the
// color preferences in user settings.
//
// The active schedule is the most recently created one (index 0 of
// List); callers should go through ActiveSchedule rather than relying on
// list order themselves.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, ownerID primitive.ObjectID, name string, pattern []domain.WorkoutDayType, startDate time.Time) (*domain.Schedule, error)
	GetSchedules(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Schedule, error)
	UpdateSchedule(ctx context.Context, ownerID primitive.ObjectID, id string, patch domain.SchedulePatch) (*domain.Schedule, error)
	DeleteSchedule(ctx context.Context, ownerID primitive.ObjectID, id string) error

	// ActiveSchedule returns nil (no error) when the user has no schedules.
	ActiveSchedule(ctx context.Context, ownerID primitive.ObjectID) (*domain.Schedule, error)
	// WorkoutForDate resolves a date against the active schedule. A zero
	// date means "today" per the service clock. The returned day is
	// unscheduled when there is no active schedule or the date precedes
	// its anchor.
	WorkoutForDate(ctx context.Context, ownerID primitive.ObjectID, date time.Time) (schedule.Day, error)
	// UpcomingWorkouts resolves the next window days starting at from.
	UpcomingWorkouts(ctx context.Context, ownerID primitive.ObjectID, from time.Time, window int) ([]schedule.Day, error)
	// ColorFor resolves the display color for a day type, honoring the
	// user's overrides. When the settings store is unreachable the
	// default palette is used; color reads never fail on upstream
	// trouble.
	ColorFor(ctx context.Context, ownerID primitive.ObjectID, dayType domain.WorkoutDayType) schedule.Color
}

const defaultUpcomingWindow = 7

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	settingsRepo repository.SettingsRepository
	now          func() time.Time
}

// NewScheduleService creates a new instance of scheduleService. now is
// the clock consulted when callers don't supply a date; pass time.Now
// outside of tests.
func NewScheduleService(scheduleRepo repository.ScheduleRepository, settingsRepo repository.SettingsRepository, now func() time.Time) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		now:          now,
	}
}

// CreateSchedule validates and persists a new schedule; the new schedule
// becomes the active one.
func (s *scheduleService) CreateSchedule(ctx context.Context, ownerID primitive.ObjectID, name string, pattern []domain.WorkoutDayType, startDate time.Time) (*domain.Schedule, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	created, err := s.scheduleRepo.Create(ctx, ownerID.Hex(), name, pattern, startDate)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyPattern) {
			return nil, ErrEmptyPattern
		}
		return nil, err
	}
	return created, nil
}

// GetSchedules lists the user's schedules, newest-created first.
func (s *scheduleService) GetSchedules(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Schedule, error) {
	return s.scheduleRepo.List(ctx, ownerID.Hex())
}

// UpdateSchedule merge-patches a schedule.
func (s *scheduleService) UpdateSchedule(ctx context.Context, ownerID primitive.ObjectID, id string, patch domain.SchedulePatch) (*domain.Schedule, error) {
	// A patch may not empty the pattern; omitting it entirely is how you
	// leave it unchanged.
	if patch.Pattern != nil && len(patch.Pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	updated, err := s.scheduleRepo.Update(ctx, ownerID.Hex(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteSchedule removes a schedule; deleting an unknown id is a no-op.
func (s *scheduleService) DeleteSchedule(ctx context.Context, ownerID primitive.ObjectID, id string) error {
	return s.scheduleRepo.Delete(ctx, ownerID.Hex(), id)
}

// ActiveSchedule returns the most recently created schedule, or nil when
// the user has none.
func (s *scheduleService) ActiveSchedule(ctx context.Context, ownerID primitive.ObjectID) (*domain.Schedule, error) {
	schedules, err := s.scheduleRepo.List(ctx, ownerID.Hex())
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, nil
	}
	return &schedules[0], nil
}

func (s *scheduleService) WorkoutForDate(ctx context.Context, ownerID primitive.ObjectID, date time.Time) (schedule.Day, error) {
	if date.IsZero() {
		date = s.now()
	}
	day := schedule.Day{Date: schedule.Normalize(date)}

	active, err := s.ActiveSchedule(ctx, ownerID)
	if err != nil {
		return schedule.Day{}, err
	}
	if active == nil {
		return day, nil
	}
	day.Type, day.Scheduled = schedule.ResolveDay(active, date)
	return day, nil
}

func (s *scheduleService) UpcomingWorkouts(ctx context.Context, ownerID primitive.ObjectID, from time.Time, window int) ([]schedule.Day, error) {
	if window <= 0 {
		window = defaultUpcomingWindow
	}
	if from.IsZero() {
		from = s.now()
	}

	active, err := s.ActiveSchedule(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		// No schedule: still produce the dated window, all unscheduled.
		days := make([]schedule.Day, 0, window)
		start := schedule.Normalize(from)
		for i := 0; i < window; i++ {
			days = append(days, schedule.Day{Date: start.AddDate(0, 0, i)})
		}
		return days, nil
	}
	return schedule.Upcoming(active, from, window), nil
}

func (s *scheduleService) ColorFor(ctx context.Context, ownerID primitive.ObjectID, dayType domain.WorkoutDayType) schedule.Color {
	settings, err := s.settingsRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			// Upstream trouble: fall back to defaults rather than failing
			// a read that is purely cosmetic.
			log.Printf("WARN: settings lookup failed for %s, using default colors: %v", ownerID.Hex(), err)
		}
		return schedule.ColorFor(dayType, nil)
	}
	return schedule.ColorFor(dayType, settings.WorkoutColors)
}
