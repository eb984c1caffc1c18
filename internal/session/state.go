package session

import (
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// Type selects how a session decides when it is over.
type Type string

const (
	// Timed sessions run until a wall-clock limit expires.
	Timed Type = "timed"
	// QuestionBased sessions run for a fixed number of questions.
	QuestionBased Type = "question_based"
	// Endless sessions only stop when the learner ends them.
	Endless Type = "endless"
)

// ParseType converts a wire name to a Type.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case Timed, QuestionBased, Endless:
		return t, nil
	}
	return "", ErrInvalidType
}

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseActive    Phase = iota // Accepting answers
	PhaseCompleted              // Terminal; no further mutation
)

func (p Phase) String() string {
	if p == PhaseCompleted {
		return "completed"
	}
	return "active"
}

// Settings are fixed for the lifetime of a session.
type Settings struct {
	// InitialDifficulty is the starting difficulty in [1, 10].
	InitialDifficulty float64 `json:"initial_difficulty"`

	// AdaptiveDifficulty feeds recent performance back into the next
	// question's difficulty.
	AdaptiveDifficulty bool `json:"adaptive_difficulty"`

	// TimeLimitSeconds is an optional per-session time budget, used for
	// timed sessions when SessionLimit is unset.
	TimeLimitSeconds *int `json:"time_limit_seconds,omitempty"`

	// SessionLimit is the number of questions (question_based) or the
	// number of seconds (timed). Nil selects the type's default.
	SessionLimit *int `json:"session_limit,omitempty"`

	HintsEnabled bool `json:"hints_enabled"`
	SoundEnabled bool `json:"sound_enabled"`
}

// AnsweredQuestion is a generated question together with the learner's
// response. Immutable once appended to a session.
type AnsweredQuestion struct {
	problemgen.Question

	UserAnswer     float64   `json:"user_answer"`
	IsCorrect      bool      `json:"is_correct"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	HintUsed       bool      `json:"hint_used"`
	Timestamp      time.Time `json:"timestamp"`
}

// OperationStats counts attempts for one operation.
type OperationStats struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
}

// Performance holds the aggregate metrics of a session. It is always
// derived from the full question list by RecomputePerformance.
type Performance struct {
	TotalQuestions        int                                     `json:"total_questions"`
	CorrectAnswers        int                                     `json:"correct_answers"`
	Accuracy              float64                                 `json:"accuracy"` // percent, 0-100
	AverageResponseTimeMs float64                                 `json:"average_response_time_ms"`
	FastestResponseTimeMs int64                                   `json:"fastest_response_time_ms"`
	SlowestResponseTimeMs int64                                   `json:"slowest_response_time_ms"`
	OperationBreakdown    map[problemgen.Operation]OperationStats `json:"operation_breakdown"`
	DifficultyProgression []float64                               `json:"difficulty_progression"`
	ExperienceEarned      int                                     `json:"experience_earned"`
	StreakAchieved        int                                     `json:"streak_achieved"` // longest correct run
}

// Session is one bounded sequence of practice questions.
type Session struct {
	ID         string                 `json:"id"`
	UserID     string                 `json:"user_id"`
	Type       Type                   `json:"type"`
	Operations []problemgen.Operation `json:"operations"`

	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
	IsCompleted     bool       `json:"is_completed"`

	// Questions is append-only; order is chronological and significant.
	Questions   []AnsweredQuestion `json:"questions"`
	Performance Performance        `json:"performance"`
	Settings    Settings           `json:"settings"`
}

// Phase returns the session's lifecycle state.
func (s *Session) Phase() Phase {
	if s.IsCompleted {
		return PhaseCompleted
	}
	return PhaseActive
}

// LastQuestion returns the most recently answered question, or nil.
func (s *Session) LastQuestion() *AnsweredQuestion {
	if len(s.Questions) == 0 {
		return nil
	}
	return &s.Questions[len(s.Questions)-1]
}
