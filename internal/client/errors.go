package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when login is rejected by the server.
	ErrInvalidCredentials = errors.New("client: invalid username or password")
	// ErrUsernameTaken is returned when registration collides with an existing account.
	ErrUsernameTaken = errors.New("client: username already exists")
	// ErrNetwork is returned when the server is unreachable or the request timed out.
	ErrNetwork = errors.New("client: unable to connect to the server")
	// ErrUnauthorized is returned when the server rejected the session token or
	// no session is held. The session store has already been cleared when an
	// operation returns it.
	ErrUnauthorized = errors.New("client: not authenticated")
)

// ValidationError reports client-side input problems detected before any
// network call is made. It is surfaced inline and never logged as a fault.
type ValidationError struct {
	FieldErrors map[string]string
}

func (v *ValidationError) Error() string {
	return "validation failed"
}

func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

func (v *ValidationError) hasErrors() bool {
	return len(v.FieldErrors) > 0
}

// LedgerError reports a server-side failure on a workout endpoint that is not
// covered by a sentinel. Message prefers the server-supplied text.
type LedgerError struct {
	StatusCode int
	Message    string
}

func (e *LedgerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d; please try again later", e.StatusCode)
}
