package application

import "time"

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID   string
	Username string
}

// User represents a registered account exposed by the application services.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session represents an authenticated session issued to a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// WorkoutDay represents a single recorded workout date.
type WorkoutDay struct {
	ID     string
	UserID string
	Date   time.Time
}

// WeeklySummary aggregates the ledger over a single Monday-start week.
type WeeklySummary struct {
	WeekStart     time.Time
	DaysWorkedOut int
}

// MonthStats aggregates the ledger over the month containing the reference day.
type MonthStats struct {
	TotalDaysInMonth  int
	CompletedWorkouts int
	CompletionRate    float64
	CurrentStreak     int
}

// RegisterParams captures the data required to create an account.
type RegisterParams struct {
	Username string
	Password string
}

// AuthenticateParams captures the data required to authenticate a user.
type AuthenticateParams struct {
	Username string
	Password string
}

// AuthResult captures the outcome of a successful register or login.
type AuthResult struct {
	User    User
	Session Session
}
