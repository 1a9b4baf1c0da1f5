package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/workout-tracker/internal/persistence"
)

func march(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func seedWorkout(t *testing.T, storage *Storage, userID string, date time.Time) persistence.WorkoutDay {
	t.Helper()

	day, err := storage.UpsertWorkoutDay(context.Background(), persistence.WorkoutDay{
		ID:     "workout-" + date.Format(time.DateOnly),
		UserID: userID,
		Date:   date,
	})
	if err != nil {
		t.Fatalf("UpsertWorkoutDay failed: %v", err)
	}
	return day
}

func TestWorkoutRepository_UpsertIsIdempotent(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	seedUser(t, storage, "user-1", "alice")

	first := seedWorkout(t, storage, "user-1", march(10))

	second, err := storage.UpsertWorkoutDay(ctx, persistence.WorkoutDay{
		ID:     "workout-other",
		UserID: "user-1",
		Date:   march(10),
	})
	if err != nil {
		t.Fatalf("second UpsertWorkoutDay failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected the original entry back, got %s", second.ID)
	}

	days, err := storage.ListWorkoutDays(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListWorkoutDays failed: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(days))
	}
}

func TestWorkoutRepository_EntriesAreScopedPerUser(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	seedUser(t, storage, "user-1", "alice")
	seedUser(t, storage, "user-2", "bob")

	seedWorkout(t, storage, "user-1", march(10))
	seedWorkout(t, storage, "user-2", march(10))

	days, err := storage.ListWorkoutDays(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListWorkoutDays failed: %v", err)
	}
	if len(days) != 1 || days[0].UserID != "user-1" {
		t.Fatalf("expected only alice's entry, got %#v", days)
	}
}

func TestWorkoutRepository_ListAndCountInRange(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	seedUser(t, storage, "user-1", "alice")
	seedWorkout(t, storage, "user-1", march(8))
	seedWorkout(t, storage, "user-1", march(9))
	seedWorkout(t, storage, "user-1", march(15))

	days, err := storage.ListWorkoutDaysInRange(ctx, "user-1", march(9), march(15))
	if err != nil {
		t.Fatalf("ListWorkoutDaysInRange failed: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(days))
	}
	if !days[0].Date.Equal(march(9)) || !days[1].Date.Equal(march(15)) {
		t.Fatalf("expected ascending order, got %#v", days)
	}

	count, err := storage.CountWorkoutDaysInRange(ctx, "user-1", march(1), march(31))
	if err != nil {
		t.Fatalf("CountWorkoutDaysInRange failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 entries in March, got %d", count)
	}
}

func TestWorkoutRepository_Delete(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	seedUser(t, storage, "user-1", "alice")
	seedWorkout(t, storage, "user-1", march(10))

	if err := storage.DeleteWorkoutDay(ctx, "user-1", march(10)); err != nil {
		t.Fatalf("DeleteWorkoutDay failed: %v", err)
	}

	if _, err := storage.GetWorkoutDay(ctx, "user-1", march(10)); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected entry removed, got %v", err)
	}

	if err := storage.DeleteWorkoutDay(ctx, "user-1", march(10)); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestWorkoutRepository_RejectsIncompleteEntries(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	_, err := storage.UpsertWorkoutDay(ctx, persistence.WorkoutDay{UserID: "user-1", Date: march(10)})
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation for missing ID, got %v", err)
	}

	_, err = storage.UpsertWorkoutDay(ctx, persistence.WorkoutDay{ID: "workout-1", UserID: "user-1"})
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation for missing date, got %v", err)
	}
}
