package persistence

import "time"

// User represents a registered account in the tracker domain.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents an authentication session persisted for a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// WorkoutDay represents a single recorded workout date. Date carries only the
// calendar day; the time component is always midnight UTC.
type WorkoutDay struct {
	ID        string
	UserID    string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
