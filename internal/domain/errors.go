package domain

import "errors"

var (
	// ErrNotFound is returned when no freelancer has the requested id, username or email.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write would duplicate a unique username or email.
	ErrConflict = errors.New("username or email already exists")

	// ErrInvalidCredentials is returned when a login cannot be completed.
	// Unknown usernames and wrong passwords are not distinguished.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTooManyAttempts is returned when a username has exceeded its failed login budget.
	ErrTooManyAttempts = errors.New("too many login attempts")
)
