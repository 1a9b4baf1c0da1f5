package persistence

import (
	"context"
	"time"
)

// UserRepository captures the persistence interactions for user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
}

// SessionRepository captures the persistence interactions for issued sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}

// WorkoutRepository captures the persistence interactions for the workout ledger.
type WorkoutRepository interface {
	// UpsertWorkoutDay stores the entry unless one already exists for the same
	// (user, date); in that case the stored entry is returned unchanged.
	UpsertWorkoutDay(ctx context.Context, day WorkoutDay) (WorkoutDay, error)
	GetWorkoutDay(ctx context.Context, userID string, date time.Time) (WorkoutDay, error)
	ListWorkoutDays(ctx context.Context, userID string) ([]WorkoutDay, error)
	ListWorkoutDaysInRange(ctx context.Context, userID string, start, end time.Time) ([]WorkoutDay, error)
	CountWorkoutDaysInRange(ctx context.Context, userID string, start, end time.Time) (int, error)
	DeleteWorkoutDay(ctx context.Context, userID string, date time.Time) error
}
