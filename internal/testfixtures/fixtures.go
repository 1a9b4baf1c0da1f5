package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/workout-tracker/internal/persistence"
)

var (
	userCounter    uint64
	sessionCounter uint64
	workoutCounter uint64
)

var referenceTime = time.Date(2026, time.March, 10, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// It falls on a Tuesday so week-window tests have days on both sides.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate returns ReferenceTime truncated to midnight UTC.
func ReferenceDate() time.Time {
	return time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
}

// UserOption configures a generated user fixture.
type UserOption func(*persistence.User)

// NewUserFixture returns a deterministic user record with optional overrides.
func NewUserFixture(opts ...UserOption) persistence.User {
	idx := atomic.AddUint64(&userCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	user := persistence.User{
		ID:           fmt.Sprintf("user-%03d", idx),
		Username:     fmt.Sprintf("user%03d", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(u *persistence.User) {
		u.ID = id
	}
}

// WithUsername overrides the generated username.
func WithUsername(username string) UserOption {
	return func(u *persistence.User) {
		u.Username = username
	}
}

// WithPasswordHash overrides the generated password hash.
func WithPasswordHash(hash string) UserOption {
	return func(u *persistence.User) {
		u.PasswordHash = hash
	}
}

// SessionOption configures a generated session fixture.
type SessionOption func(*persistence.Session)

// NewSessionFixture returns a deterministic session record bound to the given
// user, valid for a day from the reference time.
func NewSessionFixture(userID string, opts ...SessionOption) persistence.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	session := persistence.Session{
		ID:        fmt.Sprintf("session-%03d", idx),
		UserID:    userID,
		Token:     fmt.Sprintf("token-%03d", idx),
		ExpiresAt: created.Add(24 * time.Hour),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithSessionToken overrides the generated session token.
func WithSessionToken(token string) SessionOption {
	return func(s *persistence.Session) {
		s.Token = token
	}
}

// WithSessionExpiry overrides the session expiry instant.
func WithSessionExpiry(expiresAt time.Time) SessionOption {
	return func(s *persistence.Session) {
		s.ExpiresAt = expiresAt
	}
}

// WithSessionRevokedAt marks the session revoked at the given instant.
func WithSessionRevokedAt(revokedAt time.Time) SessionOption {
	return func(s *persistence.Session) {
		s.RevokedAt = &revokedAt
	}
}

// WorkoutOption configures a generated workout day fixture.
type WorkoutOption func(*persistence.WorkoutDay)

// NewWorkoutDayFixture returns a deterministic workout record for the given
// user and date. The date is normalised to midnight UTC.
func NewWorkoutDayFixture(userID string, date time.Time, opts ...WorkoutOption) persistence.WorkoutDay {
	idx := atomic.AddUint64(&workoutCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	date = date.UTC()
	workout := persistence.WorkoutDay{
		ID:        fmt.Sprintf("workout-%03d", idx),
		UserID:    userID,
		Date:      time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&workout)
	}
	return workout
}

// WithWorkoutID overrides the generated workout ID.
func WithWorkoutID(id string) WorkoutOption {
	return func(w *persistence.WorkoutDay) {
		w.ID = id
	}
}
