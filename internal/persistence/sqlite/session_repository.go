package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/example/workout-tracker/internal/persistence"
)

// CreateSession stores a new session token for a user.
func (s *Storage) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	if session.ID == "" || session.UserID == "" {
		return persistence.Session{}, persistence.ErrConstraintViolation
	}
	if strings.TrimSpace(session.Token) == "" {
		return persistence.Session{}, persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	query := `
		INSERT INTO sessions (id, user_id, token, expires_at, revoked_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var revokedAt sql.NullString
	if session.RevokedAt != nil {
		revokedAt.String = session.RevokedAt.UTC().Format(time.RFC3339)
		revokedAt.Valid = true
	}

	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		strings.TrimSpace(session.Token),
		session.ExpiresAt.UTC().Format(time.RFC3339),
		revokedAt,
		session.CreatedAt.Format(time.RFC3339),
		session.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}

	return session, nil
}

// GetSession retrieves a session by its token value.
func (s *Storage) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return persistence.Session{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, user_id, token, expires_at, revoked_at, created_at, updated_at
		FROM sessions
		WHERE token = ?
	`

	var session persistence.Session
	var expiresAtStr, createdAtStr, updatedAtStr string
	var revokedAt sql.NullString

	err := s.db.QueryRowContext(ctx, query, trimmed).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&expiresAtStr,
		&revokedAt,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}

	if revokedAt.Valid {
		if session.RevokedAt, err = parseTimePtr(revokedAt.String, "revoked_at"); err != nil {
			return persistence.Session{}, err
		}
	}
	if session.ExpiresAt, err = parseTime(expiresAtStr, "expires_at"); err != nil {
		return persistence.Session{}, err
	}
	if session.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return persistence.Session{}, err
	}
	if session.UpdatedAt, err = parseTime(updatedAtStr, "updated_at"); err != nil {
		return persistence.Session{}, err
	}

	return session, nil
}

// RevokeSession marks a session as revoked without deleting the row.
func (s *Storage) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return persistence.Session{}, persistence.ErrNotFound
	}

	query := `
		UPDATE sessions
		SET revoked_at = ?, updated_at = ?
		WHERE token = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		revokedAt.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		trimmed,
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.Session{}, err
	}
	if affected == 0 {
		return persistence.Session{}, persistence.ErrNotFound
	}

	return s.GetSession(ctx, trimmed)
}

// DeleteExpiredSessions removes sessions whose expiry precedes the reference time.
func (s *Storage) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	query := `DELETE FROM sessions WHERE expires_at < ?`
	_, err := s.db.ExecContext(ctx, query, reference.UTC().Format(time.RFC3339))
	return mapError(err)
}
