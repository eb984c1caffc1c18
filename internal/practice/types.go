package practice

import (
	"errors"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/progression"
	"github.com/abhisek/mathdrill/internal/session"
)

// ErrNoPendingQuestion is returned when an answer arrives for a session
// that has no question outstanding.
var ErrNoPendingQuestion = errors.New("practice: no pending question")

// Session event actions.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionEnd      = "end"
)

// StartInput describes a new practice session.
type StartInput struct {
	UserID     string
	Type       session.Type
	Operations []problemgen.Operation
	Settings   session.Settings
}

// AnswerInput is the learner's response to the session's pending question.
type AnswerInput struct {
	SessionID      string
	UserAnswer     float64
	ResponseTimeMs int64
	HintUsed       bool
}

// AnswerResult reports the outcome of one answer. Exactly one of Next and
// Completion is set.
type AnswerResult struct {
	Correct  bool
	Answered session.AnsweredQuestion
	Session  *session.Session

	// Next is the following question while the session continues.
	Next *problemgen.Question

	// Completion is set when this answer ended the session.
	Completion *Completion
}

// Completion is produced exactly once per session, when it completes.
type Completion struct {
	Summary *session.SessionSummary
	Award   progression.Award
	State   progression.UserState
}

// StatsReport is a learner's cumulative progress.
type StatsReport struct {
	State progression.UserState

	// OperationAccuracy is the all-time fraction (0-1) correct per
	// operation, from the answer event log.
	OperationAccuracy map[problemgen.Operation]float64

	// ExperienceToNext is the experience still needed for the next level.
	ExperienceToNext int
}
