package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/example/workout-tracker/internal/persistence"
)

// CreateUser inserts a new user account.
func (s *Storage) CreateUser(ctx context.Context, user persistence.User) error {
	if user.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if strings.TrimSpace(user.Username) == "" {
		return persistence.ErrConstraintViolation
	}
	if user.PasswordHash == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		strings.TrimSpace(user.Username),
		user.PasswordHash,
		user.CreatedAt.Format(time.RFC3339),
		user.UpdatedAt.Format(time.RFC3339),
	)
	return mapError(err)
}

// GetUser retrieves a user by ID.
func (s *Storage) GetUser(ctx context.Context, id string) (persistence.User, error) {
	if id == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

// GetUserByUsername retrieves a user by username. The lookup is case
// insensitive, matching the NOCASE collation on the column.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (persistence.User, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
		WHERE username = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, trimmed))
}

func (s *Storage) scanUser(row *sql.Row) (persistence.User, error) {
	var user persistence.User
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return persistence.User{}, mapError(err)
	}

	if user.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return persistence.User{}, err
	}
	if user.UpdatedAt, err = parseTime(updatedAtStr, "updated_at"); err != nil {
		return persistence.User{}, err
	}

	return user, nil
}
