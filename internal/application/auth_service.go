package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/workout-tracker/internal/persistence"
)

// PasswordVerifier compares a stored hash with a candidate password.
type PasswordVerifier func(hashedPassword, password string) error

// PasswordHasher derives a storable hash from a plaintext password.
type PasswordHasher func(password string) (string, error)

// AuthService coordinates account registration, login and session lifecycle.
type AuthService struct {
	users          persistence.UserRepository
	sessions       persistence.SessionRepository
	verifyPassword PasswordVerifier
	hashPassword   PasswordHasher
	idGenerator    func() string
	tokenGenerator func() string
	now            func() time.Time
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(users persistence.UserRepository, sessions persistence.SessionRepository, verify PasswordVerifier, hash PasswordHasher, idGenerator, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration) *AuthService {
	return NewAuthServiceWithLogger(users, sessions, verify, hash, idGenerator, tokenGenerator, now, sessionTTL, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with a specified logger.
func NewAuthServiceWithLogger(users persistence.UserRepository, sessions persistence.SessionRepository, verify PasswordVerifier, hash PasswordHasher, idGenerator, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	if verify == nil {
		verify = VerifyPassword
	}
	if hash == nil {
		hash = func(password string) (string, error) {
			return CreatePasswordHash(password, DefaultArgon2idParams)
		}
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if tokenGenerator == nil {
		tokenGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:          users,
		sessions:       sessions,
		verifyPassword: verify,
		hashPassword:   hash,
		idGenerator:    idGenerator,
		tokenGenerator: tokenGenerator,
		now:            now,
		sessionTTL:     sessionTTL,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Register creates a new account and immediately issues a session for it.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (result AuthResult, err error) {
	if s == nil || s.users == nil {
		err = fmt.Errorf("user repository not configured")
		return
	}

	username := strings.TrimSpace(params.Username)
	logger := s.loggerWith(ctx, "Register", "username", username)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", result.User.ID).InfoContext(ctx, "user registered")
	}()

	vErr := &ValidationError{}
	if username == "" {
		vErr.add("username", "username is required")
	}
	if params.Password == "" {
		vErr.add("password", "password is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if _, lookupErr := s.users.GetUserByUsername(ctx, username); lookupErr == nil {
		err = ErrUsernameTaken
		return
	} else if !errors.Is(lookupErr, persistence.ErrNotFound) {
		err = lookupErr
		return
	}

	hash, err := s.hashPassword(params.Password)
	if err != nil {
		return
	}

	now := s.now()
	user := persistence.User{
		ID:           s.idGenerator(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, persistence.ErrAlreadyExists) {
			err = ErrUsernameTaken
		}
		return
	}

	session, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return
	}

	result = AuthResult{User: toUser(user), Session: session}
	return
}

// Authenticate validates credentials and issues a new session token.
func (s *AuthService) Authenticate(ctx context.Context, params AuthenticateParams) (result AuthResult, err error) {
	if s == nil || s.users == nil {
		err = fmt.Errorf("user repository not configured")
		return
	}

	username := strings.TrimSpace(params.Username)
	logger := s.loggerWith(ctx, "Authenticate", "username", username)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "authentication failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"user_id", result.User.ID,
			"session_id", result.Session.ID,
		).InfoContext(ctx, "authentication succeeded")
	}()

	if username == "" || params.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrInvalidCredentials
		}
		return
	}

	if err = s.verifyPassword(user.PasswordHash, params.Password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	session, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return
	}

	result = AuthResult{User: toUser(user), Session: session}
	return
}

// ValidateSession verifies that the provided token corresponds to an active
// session and returns its principal.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (principal Principal, err error) {
	if s == nil || s.sessions == nil || s.users == nil {
		err = fmt.Errorf("auth service not fully configured")
		return
	}

	trimmed := strings.TrimSpace(token)
	logger := s.loggerWith(ctx, "ValidateSession", "token_provided", trimmed != "")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "session validation failed", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if trimmed == "" {
		err = ErrUnauthorized
		return
	}

	session, err := s.sessions.GetSession(ctx, trimmed)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrUnauthorized
		}
		return
	}

	now := s.now()
	if session.RevokedAt != nil && !session.RevokedAt.IsZero() {
		err = ErrSessionRevoked
		return
	}
	if !session.ExpiresAt.IsZero() && !session.ExpiresAt.After(now) {
		err = ErrSessionExpired
		return
	}

	user, err := s.users.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrUnauthorized
		}
		return
	}

	principal = Principal{UserID: user.ID, Username: user.Username}
	return
}

// RevokeSession invalidates an existing session token.
func (s *AuthService) RevokeSession(ctx context.Context, token string) error {
	if s == nil || s.sessions == nil {
		return fmt.Errorf("session repository not configured")
	}

	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "RevokeSession", "token_provided", true)

	if _, err := s.sessions.RevokeSession(ctx, trimmed, s.now()); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			logger.ErrorContext(ctx, "failed to revoke session", "error", ErrUnauthorized, "error_kind", ErrorKind(ErrUnauthorized))
			return ErrUnauthorized
		}
		logger.ErrorContext(ctx, "failed to revoke session", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if err := s.sessions.DeleteExpiredSessions(ctx, s.now()); err != nil {
		logger.ErrorContext(ctx, "failed to prune expired sessions", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "session revoked")
	return nil
}

func (s *AuthService) issueSession(ctx context.Context, userID string) (Session, error) {
	now := s.now()
	session := persistence.Session{
		ID:        s.idGenerator(),
		UserID:    userID,
		Token:     s.tokenGenerator(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if session.Token == "" {
		session.Token = session.ID
	}

	if s.sessions == nil {
		return toSession(session), nil
	}

	if err := s.sessions.DeleteExpiredSessions(ctx, now); err != nil {
		return Session{}, err
	}

	persisted, err := s.sessions.CreateSession(ctx, session)
	if err != nil {
		return Session{}, err
	}
	return toSession(persisted), nil
}

func toUser(model persistence.User) User {
	return User{
		ID:        model.ID,
		Username:  model.Username,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toSession(model persistence.Session) Session {
	return Session{
		ID:        model.ID,
		UserID:    model.UserID,
		Token:     model.Token,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		RevokedAt: model.RevokedAt,
	}
}
