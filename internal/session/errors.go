package session

import "errors"

var (
	// ErrSessionClosed is returned when an answer is added to a completed
	// session. It usually means the caller holds a stale reference.
	ErrSessionClosed = errors.New("session closed")

	// ErrAlreadyCompleted is returned when a session is completed twice.
	// Callers may treat it as a no-op.
	ErrAlreadyCompleted = errors.New("session already completed")

	ErrNoOperations      = errors.New("session needs at least one operation")
	ErrInvalidDifficulty = errors.New("difficulty must be between 1 and 10")
	ErrInvalidType       = errors.New("invalid session type")
	ErrInvalidSettings   = errors.New("invalid session settings")
)
