package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/workout-tracker/internal/persistence"
)

// WorkoutService coordinates reads and writes against the workout ledger.
// All date handling is calendar-day precision in UTC; the week starts on
// Monday.
type WorkoutService struct {
	workouts    persistence.WorkoutRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewWorkoutService constructs a WorkoutService with the provided dependencies.
func NewWorkoutService(workouts persistence.WorkoutRepository, idGenerator func() string, now func() time.Time) *WorkoutService {
	return NewWorkoutServiceWithLogger(workouts, idGenerator, now, nil)
}

// NewWorkoutServiceWithLogger constructs a WorkoutService with a specified logger.
func NewWorkoutServiceWithLogger(workouts persistence.WorkoutRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *WorkoutService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &WorkoutService{
		workouts:    workouts,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *WorkoutService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "WorkoutService", operation, attrs...)
}

// RecordWorkout stores a ledger entry for the given date. Recording a date
// that already holds an entry succeeds and returns the stored entry
// unchanged. A zero date defaults to today; future dates are rejected.
func (s *WorkoutService) RecordWorkout(ctx context.Context, principal Principal, date time.Time) (day WorkoutDay, err error) {
	if s == nil || s.workouts == nil {
		err = fmt.Errorf("workout repository not configured")
		return
	}
	if principal.UserID == "" {
		err = ErrUnauthorized
		return
	}

	today := DateOnly(s.now())
	if date.IsZero() {
		date = today
	}
	date = DateOnly(date)

	logger := s.loggerWith(ctx, "RecordWorkout",
		"user_id", principal.UserID,
		"date", date.Format(time.DateOnly),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to record workout", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "workout recorded")
	}()

	if date.After(today) {
		vErr := &ValidationError{}
		vErr.add("date", "date must not be in the future")
		err = vErr
		return
	}

	stored, err := s.workouts.UpsertWorkoutDay(ctx, persistence.WorkoutDay{
		ID:     s.idGenerator(),
		UserID: principal.UserID,
		Date:   date,
	})
	if err != nil {
		return
	}

	day = toWorkoutDay(stored)
	return
}

// ListWorkoutDays returns every ledger entry for the principal ordered by
// date ascending.
func (s *WorkoutService) ListWorkoutDays(ctx context.Context, principal Principal) ([]WorkoutDay, error) {
	if s == nil || s.workouts == nil {
		return nil, fmt.Errorf("workout repository not configured")
	}
	if principal.UserID == "" {
		return nil, ErrUnauthorized
	}

	stored, err := s.workouts.ListWorkoutDays(ctx, principal.UserID)
	if err != nil {
		s.loggerWith(ctx, "ListWorkoutDays", "user_id", principal.UserID).
			ErrorContext(ctx, "failed to list workouts", "error", err)
		return nil, err
	}

	days := make([]WorkoutDay, 0, len(stored))
	for _, model := range stored {
		days = append(days, toWorkoutDay(model))
	}
	return days, nil
}

// WeeklySummary counts ledger entries inside the Monday-start week containing
// the current day.
func (s *WorkoutService) WeeklySummary(ctx context.Context, principal Principal) (WeeklySummary, error) {
	if s == nil || s.workouts == nil {
		return WeeklySummary{}, fmt.Errorf("workout repository not configured")
	}
	if principal.UserID == "" {
		return WeeklySummary{}, ErrUnauthorized
	}

	weekStart := StartOfWeek(s.now())
	weekEnd := weekStart.AddDate(0, 0, 6)

	count, err := s.workouts.CountWorkoutDaysInRange(ctx, principal.UserID, weekStart, weekEnd)
	if err != nil {
		s.loggerWith(ctx, "WeeklySummary", "user_id", principal.UserID).
			ErrorContext(ctx, "failed to compute weekly summary", "error", err)
		return WeeklySummary{}, err
	}

	return WeeklySummary{WeekStart: weekStart, DaysWorkedOut: count}, nil
}

// MonthWorkouts lists ledger entries inside the given month. A zero
// year/month defaults to the month containing the current day.
func (s *WorkoutService) MonthWorkouts(ctx context.Context, principal Principal, year int, month time.Month) ([]WorkoutDay, error) {
	if s == nil || s.workouts == nil {
		return nil, fmt.Errorf("workout repository not configured")
	}
	if principal.UserID == "" {
		return nil, ErrUnauthorized
	}

	if year == 0 || month == 0 {
		today := DateOnly(s.now())
		year, month = today.Year(), today.Month()
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	stored, err := s.workouts.ListWorkoutDaysInRange(ctx, principal.UserID, start, end)
	if err != nil {
		s.loggerWith(ctx, "MonthWorkouts", "user_id", principal.UserID).
			ErrorContext(ctx, "failed to list month workouts", "error", err)
		return nil, err
	}

	days := make([]WorkoutDay, 0, len(stored))
	for _, model := range stored {
		days = append(days, toWorkoutDay(model))
	}
	return days, nil
}

// MonthStats aggregates the current month and the streak of consecutive
// recorded days ending at the current day.
func (s *WorkoutService) MonthStats(ctx context.Context, principal Principal) (MonthStats, error) {
	if s == nil || s.workouts == nil {
		return MonthStats{}, fmt.Errorf("workout repository not configured")
	}
	if principal.UserID == "" {
		return MonthStats{}, ErrUnauthorized
	}

	today := DateOnly(s.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	completed, err := s.workouts.CountWorkoutDaysInRange(ctx, principal.UserID, monthStart, monthEnd)
	if err != nil {
		s.loggerWith(ctx, "MonthStats", "user_id", principal.UserID).
			ErrorContext(ctx, "failed to compute month stats", "error", err)
		return MonthStats{}, err
	}

	streak := 0
	for check := today; ; check = check.AddDate(0, 0, -1) {
		if _, err := s.workouts.GetWorkoutDay(ctx, principal.UserID, check); err != nil {
			if errors.Is(err, persistence.ErrNotFound) {
				break
			}
			return MonthStats{}, err
		}
		streak++
	}

	total := monthEnd.Day()
	return MonthStats{
		TotalDaysInMonth:  total,
		CompletedWorkouts: completed,
		CompletionRate:    float64(completed) / float64(total),
		CurrentStreak:     streak,
	}, nil
}

// DeleteWorkout removes the ledger entry for the given date. This is the only
// path that removes entries; the daily prompt never deletes.
func (s *WorkoutService) DeleteWorkout(ctx context.Context, principal Principal, date time.Time) error {
	if s == nil || s.workouts == nil {
		return fmt.Errorf("workout repository not configured")
	}
	if principal.UserID == "" {
		return ErrUnauthorized
	}

	date = DateOnly(date)
	logger := s.loggerWith(ctx, "DeleteWorkout",
		"user_id", principal.UserID,
		"date", date.Format(time.DateOnly),
	)

	if err := s.workouts.DeleteWorkoutDay(ctx, principal.UserID, date); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			logger.ErrorContext(ctx, "workout entry not found", "error", err)
			return ErrNotFound
		}
		logger.ErrorContext(ctx, "failed to delete workout", "error", err)
		return err
	}

	logger.InfoContext(ctx, "workout deleted")
	return nil
}

// DateOnly truncates a timestamp to its calendar day at midnight UTC.
func DateOnly(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the Monday beginning the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := DateOnly(t)
	weekday := int(day.Weekday())
	// Adjust so Monday is start of week. In Go, Monday == 1, Sunday == 0.
	offset := (weekday + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func toWorkoutDay(model persistence.WorkoutDay) WorkoutDay {
	return WorkoutDay{ID: model.ID, UserID: model.UserID, Date: model.Date}
}
