package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/progression"
	"github.com/abhisek/mathdrill/internal/session"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists is returned when creating a record whose key is taken.
	ErrAlreadyExists = errors.New("store: already exists")
)

// SessionRepo persists practice sessions, including their answered
// questions and derived performance.
type SessionRepo interface {
	// Create inserts a new session. Fails with ErrAlreadyExists if the id
	// is taken.
	Create(ctx context.Context, s *session.Session) error

	// Get loads a session by id, or returns ErrNotFound.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Update overwrites a stored session, or returns ErrNotFound.
	Update(ctx context.Context, s *session.Session) error

	// ListByUser returns the user's sessions, newest first. A limit of 0
	// returns all of them.
	ListByUser(ctx context.Context, userID string, limit int) ([]*session.Session, error)

	// DeleteByUser removes every session owned by the user and returns how
	// many were removed.
	DeleteByUser(ctx context.Context, userID string) (int, error)
}

// StatsRepo persists per-user progression state.
type StatsRepo interface {
	// Get returns the user's state, or ErrNotFound before their first
	// completed session.
	Get(ctx context.Context, userID string) (progression.UserState, error)

	// Save inserts or replaces the user's state.
	Save(ctx context.Context, userID string, state progression.UserState) error

	// Delete removes the user's state. Deleting a missing user is not an
	// error.
	Delete(ctx context.Context, userID string) error
}

// SessionEventData captures a session lifecycle transition.
type SessionEventData struct {
	SessionID       string
	UserID          string
	Action          string // "start", "complete", "end"
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// AnswerEventData captures a single answered question.
type AnswerEventData struct {
	SessionID     string
	UserID        string
	Operation     problemgen.Operation
	Difficulty    float64
	QuestionText  string
	CorrectAnswer float64
	LearnerAnswer float64
	Correct       bool
	TimeMs        int64
	HintUsed      bool
}

// SessionEvent is a stored SessionEventData with its ordering metadata.
type SessionEvent struct {
	SessionEventData
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to domain events. Every event
// gets a sequence number from the shared global counter.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// SessionEvents returns the lifecycle events of one session in
	// sequence order.
	SessionEvents(ctx context.Context, sessionID string) ([]SessionEvent, error)

	// OperationAccuracy returns the fraction (0-1) of the user's answers to
	// op that were correct, across all sessions. Returns 0 with no answers.
	OperationAccuracy(ctx context.Context, userID string, op problemgen.Operation) (float64, error)

	// DeleteByUser removes every event recorded for the user.
	DeleteByUser(ctx context.Context, userID string) error
}
