package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrAlreadyExists is returned when a uniqueness constraint is violated.
	ErrAlreadyExists = errors.New("persistence: already exists")
	// ErrConstraintViolation is returned when required fields are missing or malformed.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
)
