package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Mocks ---

type mockScheduleRepo struct {
	ListFunc   func(ctx context.Context, ownerID string) ([]domain.Schedule, error)
	CreateFunc func(ctx context.Context, ownerID, name string, pattern []domain.WorkoutDayType, startDate time.Time) (*domain.Schedule, error)
	UpdateFunc func(ctx context.Context, ownerID, id string, patch domain.SchedulePatch) (*domain.Schedule, error)
	DeleteFunc func(ctx context.Context, ownerID, id string) error
}

func (m *mockScheduleRepo) List(ctx context.Context, ownerID string) ([]domain.Schedule, error) {
	return m.ListFunc(ctx, ownerID)
}

func (m *mockScheduleRepo) Create(ctx context.Context, ownerID, name string, pattern []domain.WorkoutDayType, startDate time.Time) (*domain.Schedule, error) {
	return m.CreateFunc(ctx, ownerID, name, pattern, startDate)
}

func (m *mockScheduleRepo) Update(ctx context.Context, ownerID, id string, patch domain.SchedulePatch) (*domain.Schedule, error) {
	return m.UpdateFunc(ctx, ownerID, id, patch)
}

func (m *mockScheduleRepo) Delete(ctx context.Context, ownerID, id string) error {
	return m.DeleteFunc(ctx, ownerID, id)
}

type mockSettingsRepo struct {
	GetByOwnerFunc func(ctx context.Context, ownerID primitive.ObjectID) (*domain.UserSettings, error)
	CreateFunc     func(ctx context.Context, settings *domain.UserSettings) (primitive.ObjectID, error)
	UpdateFunc     func(ctx context.Context, settings *domain.UserSettings) error
}

func (m *mockSettingsRepo) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*domain.UserSettings, error) {
	return m.GetByOwnerFunc(ctx, ownerID)
}

func (m *mockSettingsRepo) Create(ctx context.Context, settings *domain.UserSettings) (primitive.ObjectID, error) {
	return m.CreateFunc(ctx, settings)
}

func (m *mockSettingsRepo) Update(ctx context.Context, settings *domain.UserSettings) error {
	return m.UpdateFunc(ctx, settings)
}

func fixedClock() time.Time {
	return time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
}

func noSettings() *mockSettingsRepo {
	return &mockSettingsRepo{
		GetByOwnerFunc: func(context.Context, primitive.ObjectID) (*domain.UserSettings, error) {
			return nil, repository.ErrNotFound
		},
	}
}

// --- Tests ---

func TestCreateScheduleValidation(t *testing.T) {
	t.Parallel()

	ownerID := primitive.NewObjectID()
	repo := &mockScheduleRepo{
		CreateFunc: func(_ context.Context, _, _ string, pattern []domain.WorkoutDayType, _ time.Time) (*domain.Schedule, error) {
			if len(pattern) == 0 {
				return nil, repository.ErrEmptyPattern
			}
			return &domain.Schedule{ID: "new"}, nil
		},
	}
	svc := NewScheduleService(repo, noSettings(), fixedClock)

	if _, err := svc.CreateSchedule(context.Background(), ownerID, "", []domain.WorkoutDayType{domain.DayPush}, fixedClock()); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("empty name err = %v, want ErrValidationFailed", err)
	}
	if _, err := svc.CreateSchedule(context.Background(), ownerID, "PPL", nil, fixedClock()); !errors.Is(err, ErrEmptyPattern) {
		t.Errorf("empty pattern err = %v, want ErrEmptyPattern", err)
	}
	created, err := svc.CreateSchedule(context.Background(), ownerID, "PPL", []domain.WorkoutDayType{domain.DayPush}, fixedClock())
	if err != nil || created.ID != "new" {
		t.Errorf("CreateSchedule = (%v, %v), want schedule 'new'", created, err)
	}
}

func TestUpdateScheduleRejectsEmptiedPattern(t *testing.T) {
	t.Parallel()

	svc := NewScheduleService(&mockScheduleRepo{}, noSettings(), fixedClock)

	_, err := svc.UpdateSchedule(context.Background(), primitive.NewObjectID(), "s1", domain.SchedulePatch{
		Pattern: []domain.WorkoutDayType{},
	})
	if !errors.Is(err, ErrEmptyPattern) {
		t.Errorf("err = %v, want ErrEmptyPattern", err)
	}
}

func TestUpdateScheduleNotFound(t *testing.T) {
	t.Parallel()

	repo := &mockScheduleRepo{
		UpdateFunc: func(context.Context, string, string, domain.SchedulePatch) (*domain.Schedule, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewScheduleService(repo, noSettings(), fixedClock)

	name := "x"
	_, err := svc.UpdateSchedule(context.Background(), primitive.NewObjectID(), "missing", domain.SchedulePatch{Name: &name})
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("err = %v, want ErrScheduleNotFound", err)
	}
}

func TestActiveSchedule(t *testing.T) {
	t.Parallel()

	newest := domain.Schedule{ID: "newest", Pattern: []domain.WorkoutDayType{domain.DayPush}}
	older := domain.Schedule{ID: "older", Pattern: []domain.WorkoutDayType{domain.DayRest}}

	tests := []struct {
		name      string
		schedules []domain.Schedule
		wantID    string
		wantNil   bool
	}{
		{"none", nil, "", true},
		{"single", []domain.Schedule{newest}, "newest", false},
		{"newest wins", []domain.Schedule{newest, older}, "newest", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			repo := &mockScheduleRepo{
				ListFunc: func(context.Context, string) ([]domain.Schedule, error) {
					return tc.schedules, nil
				},
			}
			svc := NewScheduleService(repo, noSettings(), fixedClock)

			active, err := svc.ActiveSchedule(context.Background(), primitive.NewObjectID())
			if err != nil {
				t.Fatalf("ActiveSchedule: %v", err)
			}
			if tc.wantNil {
				if active != nil {
					t.Errorf("active = %v, want nil", active)
				}
				return
			}
			if active == nil || active.ID != tc.wantID {
				t.Errorf("active = %v, want id %q", active, tc.wantID)
			}
		})
	}
}

func TestWorkoutForDate(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	repo := &mockScheduleRepo{
		ListFunc: func(context.Context, string) ([]domain.Schedule, error) {
			return []domain.Schedule{{
				ID:        "s1",
				Pattern:   []domain.WorkoutDayType{domain.DayPush, domain.DayPull},
				StartDate: start,
			}}, nil
		},
	}
	svc := NewScheduleService(repo, noSettings(), fixedClock)
	ownerID := primitive.NewObjectID()

	day, err := svc.WorkoutForDate(context.Background(), ownerID, start.AddDate(0, 0, 3))
	if err != nil || !day.Scheduled || day.Type != domain.DayPull {
		t.Errorf("WorkoutForDate = (%+v, %v), want pull scheduled", day, err)
	}
	if !day.Date.Equal(start.AddDate(0, 0, 3)) {
		t.Errorf("resolved date = %v, want %v", day.Date, start.AddDate(0, 0, 3))
	}

	// Before the anchor.
	day, err = svc.WorkoutForDate(context.Background(), ownerID, start.AddDate(0, 0, -1))
	if err != nil || day.Scheduled {
		t.Errorf("date before anchor resolved: %+v err=%v", day, err)
	}
}

func TestWorkoutForDateDefaultsToClock(t *testing.T) {
	t.Parallel()

	// Clock date June 10 is 9 days past the June 1 anchor; 9 % 3 = 0.
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo := &mockScheduleRepo{
		ListFunc: func(context.Context, string) ([]domain.Schedule, error) {
			return []domain.Schedule{{
				ID:        "s1",
				Pattern:   []domain.WorkoutDayType{domain.DayPush, domain.DayPull, domain.DayRest},
				StartDate: start,
			}}, nil
		},
	}
	svc := NewScheduleService(repo, noSettings(), fixedClock)

	day, err := svc.WorkoutForDate(context.Background(), primitive.NewObjectID(), time.Time{})
	if err != nil {
		t.Fatalf("WorkoutForDate: %v", err)
	}
	wantDate := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	if !day.Date.Equal(wantDate) {
		t.Errorf("zero date resolved to %v, want clock date %v", day.Date, wantDate)
	}
	if !day.Scheduled || day.Type != domain.DayPush {
		t.Errorf("day = %+v, want scheduled push", day)
	}
}

func TestWorkoutForDateNoSchedule(t *testing.T) {
	t.Parallel()

	repo := &mockScheduleRepo{
		ListFunc: func(context.Context, string) ([]domain.Schedule, error) { return nil, nil },
	}
	svc := NewScheduleService(repo, noSettings(), fixedClock)

	day, err := svc.WorkoutForDate(context.Background(), primitive.NewObjectID(), fixedClock())
	if err != nil || day.Scheduled {
		t.Errorf("no schedule: %+v err=%v, want unscheduled", day, err)
	}
}

func TestUpcomingWorkoutsDefaults(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo := &mockScheduleRepo{
		ListFunc: func(context.Context, string) ([]domain.Schedule, error) {
			return []domain.Schedule{{
				ID:        "s1",
				Pattern:   []domain.WorkoutDayType{domain.DayPush, domain.DayPull, domain.DayRest},
				StartDate: start,
			}}, nil
		},
	}
	svc := NewScheduleService(repo, noSettings(), fixedClock)

	// Zero from and zero window fall back to the clock and a 7-day window.
	days, err := svc.UpcomingWorkouts(context.Background(), primitive.NewObjectID(), time.Time{}, 0)
	if err != nil {
		t.Fatalf("UpcomingWorkouts: %v", err)
	}
	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want 7", len(days))
	}
	wantFirst := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	if !days[0].Date.Equal(wantFirst) {
		t.Errorf("first day = %v, want clock date %v", days[0].Date, wantFirst)
	}
	// June 10 is 9 days past June 1; 9 % 3 = 0 -> push.
	if !days[0].Scheduled || days[0].Type != domain.DayPush {
		t.Errorf("first day = {%q %v}, want {push true}", days[0].Type, days[0].Scheduled)
	}
}

func TestUpcomingWorkoutsNoSchedule(t *testing.T) {
	t.Parallel()

	repo := &mockScheduleRepo{
		ListFunc: func(context.Context, string) ([]domain.Schedule, error) { return nil, nil },
	}
	svc := NewScheduleService(repo, noSettings(), fixedClock)

	from := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	days, err := svc.UpcomingWorkouts(context.Background(), primitive.NewObjectID(), from, 3)
	if err != nil {
		t.Fatalf("UpcomingWorkouts: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("len(days) = %d, want 3", len(days))
	}
	for i, day := range days {
		if day.Scheduled {
			t.Errorf("days[%d] scheduled without any schedule", i)
		}
		want := from.AddDate(0, 0, i)
		if !day.Date.Equal(want) {
			t.Errorf("days[%d] date = %v, want %v", i, day.Date, want)
		}
	}
}

func TestColorForUsesOverrides(t *testing.T) {
	t.Parallel()

	settingsRepo := &mockSettingsRepo{
		GetByOwnerFunc: func(context.Context, primitive.ObjectID) (*domain.UserSettings, error) {
			return &domain.UserSettings{
				WeightUnit:    domain.UnitKg,
				WorkoutColors: map[string]string{"push": "#EC4899"},
			}, nil
		},
	}
	svc := NewScheduleService(&mockScheduleRepo{}, settingsRepo, fixedClock)

	color := svc.ColorFor(context.Background(), primitive.NewObjectID(), domain.DayPush)
	if color.Hex != "#EC4899" || color.Token != "pink" {
		t.Errorf("ColorFor = %+v, want pink override", color)
	}
}

func TestColorForFallsBackWhenSettingsUnavailable(t *testing.T) {
	t.Parallel()

	settingsRepo := &mockSettingsRepo{
		GetByOwnerFunc: func(context.Context, primitive.ObjectID) (*domain.UserSettings, error) {
			return nil, errors.New("mongo is down")
		},
	}
	svc := NewScheduleService(&mockScheduleRepo{}, settingsRepo, fixedClock)

	color := svc.ColorFor(context.Background(), primitive.NewObjectID(), domain.DayLegs)
	if color.Hex != "#F97316" || color.Token != "orange" {
		t.Errorf("ColorFor = %+v, want default orange", color)
	}
}

func TestDeleteSchedulePassesThrough(t *testing.T) {
	t.Parallel()

	var gotOwner, gotID string
	repo := &mockScheduleRepo{
		DeleteFunc: func(_ context.Context, ownerID, id string) error {
			gotOwner, gotID = ownerID, id
			return nil
		},
	}
	svc := NewScheduleService(repo, noSettings(), fixedClock)

	ownerID := primitive.NewObjectID()
	if err := svc.DeleteSchedule(context.Background(), ownerID, "s9"); err != nil {
		t.Fatalf("DeleteSchedule: %v", err)
	}
	if gotOwner != ownerID.Hex() || gotID != "s9" {
		t.Errorf("delete forwarded (%q, %q), want (%q, s9)", gotOwner, gotID, ownerID.Hex())
	}
}
