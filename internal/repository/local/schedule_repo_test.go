package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

const testOwner = "662f0a1b2c3d4e5f60718293"

func newTestRepo(t *testing.T) (repository.ScheduleRepository, *KV) {
	t.Helper()
	kv, err := NewKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewKV: %v", err)
	}
	clock := func() time.Time {
		return time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC)
	}
	return NewScheduleRepository(kv, clock), kv
}

func TestCreateAndList(t *testing.T) {
	t.Parallel()
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2024, time.January, 1, 15, 30, 0, 0, time.UTC)
	created, err := repo.Create(ctx, testOwner, "PPL", []domain.WorkoutDayType{domain.DayPush, domain.DayPull, domain.DayLegs}, start)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("created schedule has no id")
	}
	if created.OwnerID != testOwner {
		t.Errorf("OwnerID = %q, want %q", created.OwnerID, testOwner)
	}
	// The anchor is stored as a calendar date.
	wantStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !created.StartDate.Equal(wantStart) {
		t.Errorf("StartDate = %v, want %v", created.StartDate, wantStart)
	}

	schedules, err := repo.List(ctx, testOwner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(schedules) != 1 {
		t.Fatalf("len(schedules) = %d, want 1", len(schedules))
	}
	if schedules[0].ID != created.ID {
		t.Errorf("listed id = %q, want %q", schedules[0].ID, created.ID)
	}
}

func TestCreatePrependsNewest(t *testing.T) {
	t.Parallel()
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	first, err := repo.Create(ctx, testOwner, "old", []domain.WorkoutDayType{domain.DayRest}, start)
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := repo.Create(ctx, testOwner, "new", []domain.WorkoutDayType{domain.DayPush}, start)
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	schedules, err := repo.List(ctx, testOwner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("len(schedules) = %d, want 2", len(schedules))
	}
	if schedules[0].ID != second.ID || schedules[1].ID != first.ID {
		t.Errorf("order = [%s %s], want newest first [%s %s]",
			schedules[0].Name, schedules[1].Name, second.Name, first.Name)
	}
}

func TestCreateRejectsEmptyPattern(t *testing.T) {
	t.Parallel()
	repo, kv := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testOwner, "bad", nil, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != repository.ErrEmptyPattern {
		t.Fatalf("Create err = %v, want ErrEmptyPattern", err)
	}

	// Nothing may have been persisted.
	if _, found, _ := kv.Get(schedulesKeyPrefix + testOwner); found {
		t.Error("rejected create still wrote to the store")
	}
	schedules, err := repo.List(ctx, testOwner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(schedules) != 0 {
		t.Errorf("len(schedules) = %d, want 0", len(schedules))
	}
}

func TestCreateRejectsUnknownDayType(t *testing.T) {
	t.Parallel()
	repo, _ := newTestRepo(t)

	_, err := repo.Create(context.Background(), testOwner, "bad",
		[]domain.WorkoutDayType{domain.DayPush, "arm_day"},
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("Create accepted an unknown day type")
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	t.Parallel()
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testOwner, "before",
		[]domain.WorkoutDayType{domain.DayUpper, domain.DayLower},
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newName := "after"
	updated, err := repo.Update(ctx, testOwner, created.ID, domain.SchedulePatch{Name: &newName})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "after" {
		t.Errorf("Name = %q, want %q", updated.Name, "after")
	}
	// Untouched fields survive.
	if len(updated.Pattern) != 2 || updated.Pattern[0] != domain.DayUpper {
		t.Errorf("Pattern changed unexpectedly: %v", updated.Pattern)
	}
	if !updated.StartDate.Equal(created.StartDate) {
		t.Errorf("StartDate changed unexpectedly: %v", updated.StartDate)
	}
	if updated.ID != created.ID {
		t.Errorf("ID changed on update: %q -> %q", created.ID, updated.ID)
	}
}

func TestUpdateRejectsEmptiedPattern(t *testing.T) {
	t.Parallel()
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testOwner, "keep pattern",
		[]domain.WorkoutDayType{domain.DayPush, domain.DayPull},
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A non-nil empty pattern must be rejected at the store layer.
	_, err = repo.Update(ctx, testOwner, created.ID, domain.SchedulePatch{Pattern: []domain.WorkoutDayType{}})
	if err != repository.ErrEmptyPattern {
		t.Fatalf("Update err = %v, want ErrEmptyPattern", err)
	}

	// The stored schedule is untouched.
	schedules, err := repo.List(ctx, testOwner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(schedules) != 1 || len(schedules[0].Pattern) != 2 {
		t.Errorf("pattern after rejected update = %v, want the original 2 entries", schedules[0].Pattern)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	t.Parallel()
	repo, _ := newTestRepo(t)

	name := "x"
	_, err := repo.Update(context.Background(), testOwner, "no-such-id", domain.SchedulePatch{Name: &name})
	if err != repository.ErrNotFound {
		t.Fatalf("Update err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	keep, err := repo.Create(ctx, testOwner, "keep", []domain.WorkoutDayType{domain.DayRest}, start)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	drop, err := repo.Create(ctx, testOwner, "drop", []domain.WorkoutDayType{domain.DayPush}, start)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, testOwner, drop.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	schedules, err := repo.List(ctx, testOwner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(schedules) != 1 || schedules[0].ID != keep.ID {
		t.Errorf("after delete: %v, want only %q", schedules, keep.ID)
	}
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testOwner, "solo", []domain.WorkoutDayType{domain.DayCardio},
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, testOwner, "never-existed"); err != nil {
		t.Fatalf("Delete of unknown id errored: %v", err)
	}

	schedules, err := repo.List(ctx, testOwner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(schedules) != 1 || schedules[0].ID != created.ID {
		t.Errorf("no-op delete changed the list: %v", schedules)
	}
}

func TestOwnersAreIsolated(t *testing.T) {
	t.Parallel()
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	otherOwner := "772f0a1b2c3d4e5f60718293"
	if _, err := repo.Create(ctx, testOwner, "mine", []domain.WorkoutDayType{domain.DayPush},
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	schedules, err := repo.List(ctx, otherOwner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(schedules) != 0 {
		t.Errorf("other owner sees %d schedules, want 0", len(schedules))
	}
}

func TestCorruptStoreTreatedAsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	kv, err := NewKV(dir)
	if err != nil {
		t.Fatalf("NewKV: %v", err)
	}
	repo := NewScheduleRepository(kv, time.Now)
	ctx := context.Background()

	// Plant a blob that is not valid JSON.
	corruptPath := filepath.Join(dir, schedulesKeyPrefix+testOwner+".json")
	if err := os.WriteFile(corruptPath, []byte("{{{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	schedules, err := repo.List(ctx, testOwner)
	if err != nil {
		t.Fatalf("List over corrupt blob errored: %v", err)
	}
	if len(schedules) != 0 {
		t.Errorf("corrupt blob produced %d schedules, want 0", len(schedules))
	}

	// Writes recover the key.
	if _, err := repo.Create(ctx, testOwner, "fresh", []domain.WorkoutDayType{domain.DayLegs},
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Create after corruption: %v", err)
	}
	schedules, err = repo.List(ctx, testOwner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(schedules) != 1 {
		t.Errorf("len(schedules) = %d after recovery, want 1", len(schedules))
	}
}

func TestKVRoundTrip(t *testing.T) {
	t.Parallel()

	kv, err := NewKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewKV: %v", err)
	}

	if _, found, err := kv.Get("missing"); err != nil || found {
		t.Fatalf("Get(missing) = found=%v err=%v, want absent", found, err)
	}

	if err := kv.Set("k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, found, err := kv.Get("k")
	if err != nil || !found || string(value) != "v1" {
		t.Fatalf("Get = (%q, %v, %v), want (v1, true, nil)", value, found, err)
	}

	// Overwrite.
	if err := kv.Set("k", []byte("v2")); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	value, _, _ = kv.Get("k")
	if string(value) != "v2" {
		t.Errorf("after overwrite value = %q, want v2", value)
	}

	if err := kv.Remove("k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, found, _ := kv.Get("k"); found {
		t.Error("key still present after Remove")
	}
	if err := kv.Remove("k"); err != nil {
		t.Errorf("Remove of absent key errored: %v", err)
	}
}

func TestKVSanitizesKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	kv, err := NewKV(dir)
	if err != nil {
		t.Fatalf("NewKV: %v", err)
	}
	if err := kv.Set("../escape", []byte("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// The file must land inside the store directory.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("store dir has %d entries, want 1", len(entries))
	}
	if _, err := os.Stat(filepath.Join(dir, "..", "escape.json")); err == nil {
		t.Error("key escaped the store directory")
	}
}
