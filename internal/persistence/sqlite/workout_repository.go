package sqlite

import (
	"context"
	"time"

	"github.com/example/workout-tracker/internal/persistence"
)

// UpsertWorkoutDay stores a workout entry for (user, date). When an entry for
// the same date already exists it is returned unchanged, keeping the at most
// one entry per day invariant without surfacing a conflict to callers.
func (s *Storage) UpsertWorkoutDay(ctx context.Context, day persistence.WorkoutDay) (persistence.WorkoutDay, error) {
	if day.ID == "" || day.UserID == "" {
		return persistence.WorkoutDay{}, persistence.ErrConstraintViolation
	}
	if day.Date.IsZero() {
		return persistence.WorkoutDay{}, persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	if day.CreatedAt.IsZero() {
		day.CreatedAt = now
	}
	day.UpdatedAt = now

	query := `
		INSERT INTO workout_days (id, user_id, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO NOTHING
	`

	_, err := s.db.ExecContext(ctx, query,
		day.ID,
		day.UserID,
		day.Date.Format(time.DateOnly),
		day.CreatedAt.Format(time.RFC3339),
		day.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return persistence.WorkoutDay{}, mapError(err)
	}

	// Read back so a no-op conflict returns the original row.
	return s.GetWorkoutDay(ctx, day.UserID, day.Date)
}

// GetWorkoutDay retrieves the entry for a single (user, date).
func (s *Storage) GetWorkoutDay(ctx context.Context, userID string, date time.Time) (persistence.WorkoutDay, error) {
	if userID == "" || date.IsZero() {
		return persistence.WorkoutDay{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, user_id, date, created_at, updated_at
		FROM workout_days
		WHERE user_id = ? AND date = ?
	`

	var day persistence.WorkoutDay
	var dateStr, createdAtStr, updatedAtStr string

	err := s.db.QueryRowContext(ctx, query, userID, date.Format(time.DateOnly)).Scan(
		&day.ID,
		&day.UserID,
		&dateStr,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return persistence.WorkoutDay{}, mapError(err)
	}

	return hydrateWorkoutDay(day, dateStr, createdAtStr, updatedAtStr)
}

// ListWorkoutDays returns every ledger entry for a user ordered by date ascending.
func (s *Storage) ListWorkoutDays(ctx context.Context, userID string) ([]persistence.WorkoutDay, error) {
	query := `
		SELECT id, user_id, date, created_at, updated_at
		FROM workout_days
		WHERE user_id = ?
		ORDER BY date ASC
	`
	return s.queryWorkoutDays(ctx, query, userID)
}

// ListWorkoutDaysInRange returns entries with start <= date <= end ordered by
// date ascending.
func (s *Storage) ListWorkoutDaysInRange(ctx context.Context, userID string, start, end time.Time) ([]persistence.WorkoutDay, error) {
	query := `
		SELECT id, user_id, date, created_at, updated_at
		FROM workout_days
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC
	`
	return s.queryWorkoutDays(ctx, query, userID, start.Format(time.DateOnly), end.Format(time.DateOnly))
}

// CountWorkoutDaysInRange counts entries with start <= date <= end.
func (s *Storage) CountWorkoutDaysInRange(ctx context.Context, userID string, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM workout_days
		WHERE user_id = ? AND date >= ? AND date <= ?
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, start.Format(time.DateOnly), end.Format(time.DateOnly)).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// DeleteWorkoutDay removes the entry for (user, date).
func (s *Storage) DeleteWorkoutDay(ctx context.Context, userID string, date time.Time) error {
	if userID == "" || date.IsZero() {
		return persistence.ErrNotFound
	}

	query := `DELETE FROM workout_days WHERE user_id = ? AND date = ?`

	result, err := s.db.ExecContext(ctx, query, userID, date.Format(time.DateOnly))
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

func (s *Storage) queryWorkoutDays(ctx context.Context, query string, args ...any) ([]persistence.WorkoutDay, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var days []persistence.WorkoutDay
	for rows.Next() {
		var day persistence.WorkoutDay
		var dateStr, createdAtStr, updatedAtStr string
		if err := rows.Scan(&day.ID, &day.UserID, &dateStr, &createdAtStr, &updatedAtStr); err != nil {
			return nil, mapError(err)
		}
		hydrated, err := hydrateWorkoutDay(day, dateStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		days = append(days, hydrated)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return days, nil
}

func hydrateWorkoutDay(day persistence.WorkoutDay, dateStr, createdAtStr, updatedAtStr string) (persistence.WorkoutDay, error) {
	var err error
	if day.Date, err = parseDate(dateStr); err != nil {
		return persistence.WorkoutDay{}, err
	}
	if day.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return persistence.WorkoutDay{}, err
	}
	if day.UpdatedAt, err = parseTime(updatedAtStr, "updated_at"); err != nil {
		return persistence.WorkoutDay{}, err
	}
	return day, nil
}
