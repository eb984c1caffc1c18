package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

const (
	// DefaultQuestionLimit is the question count for question_based
	// sessions, and the fallback for unknown session types.
	DefaultQuestionLimit = 10

	// DefaultTimeLimitSeconds is the wall-clock budget for timed sessions.
	DefaultTimeLimitSeconds = 300

	// RecentWindow is the number of latest answers used to pick the next
	// difficulty.
	RecentWindow = 5

	// MinAnswersForAdaptation is the number of answers needed before
	// adaptive difficulty moves away from the initial difficulty.
	MinAnswersForAdaptation = 3
)

// New creates an active session with an empty question list. Duplicate
// operations are collapsed, keeping first-seen order.
func New(id, userID string, typ Type, ops []problemgen.Operation, settings Settings, now time.Time) (*Session, error) {
	if _, err := ParseType(string(typ)); err != nil {
		return nil, fmt.Errorf("%w: %q", err, string(typ))
	}
	if settings.InitialDifficulty < problemgen.MinDifficulty || settings.InitialDifficulty > problemgen.MaxDifficulty {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDifficulty, settings.InitialDifficulty)
	}

	seen := make(map[problemgen.Operation]bool, len(ops))
	var unique []problemgen.Operation
	for _, op := range ops {
		if !op.Valid() {
			return nil, fmt.Errorf("%w: %q", problemgen.ErrInvalidOperation, string(op))
		}
		if !seen[op] {
			seen[op] = true
			unique = append(unique, op)
		}
	}
	if len(unique) == 0 {
		return nil, ErrNoOperations
	}

	return &Session{
		ID:          id,
		UserID:      userID,
		Type:        typ,
		Operations:  unique,
		StartTime:   now,
		Settings:    settings,
		Performance: RecomputePerformance(nil),
	}, nil
}

// ShouldContinue reports whether the session should serve another
// question. Timed sessions are evaluated lazily against now; there is no
// background timer.
func ShouldContinue(s *Session, now time.Time) bool {
	if s.IsCompleted {
		return false
	}
	switch s.Type {
	case Endless:
		return true
	case Timed:
		limit := DefaultTimeLimitSeconds
		if s.Settings.SessionLimit != nil {
			limit = *s.Settings.SessionLimit
		} else if s.Settings.TimeLimitSeconds != nil {
			limit = *s.Settings.TimeLimitSeconds
		}
		return now.Sub(s.StartTime) < time.Duration(limit)*time.Second
	case QuestionBased:
		limit := DefaultQuestionLimit
		if s.Settings.SessionLimit != nil {
			limit = *s.Settings.SessionLimit
		}
		return len(s.Questions) < limit
	default:
		// Unknown types ignore SessionLimit.
		return len(s.Questions) < DefaultQuestionLimit
	}
}

// Complete moves the session to its terminal state. Early termination and
// natural expiry both end here. A second call fails with
// ErrAlreadyCompleted.
func Complete(s *Session, now time.Time) (*Session, error) {
	if s.IsCompleted {
		return nil, ErrAlreadyCompleted
	}
	end := now
	s.EndTime = &end
	s.DurationSeconds = int(end.Sub(s.StartTime).Milliseconds() / 1000)
	s.IsCompleted = true
	s.Performance = RecomputePerformance(s.Questions)
	return s, nil
}

// NextDifficulty returns the difficulty for the session's next question.
// With adaptive difficulty on and enough answers, it adapts from the last
// question's difficulty using the recent window; otherwise it is the
// initial difficulty.
func NextDifficulty(s *Session) float64 {
	if !s.Settings.AdaptiveDifficulty || len(s.Questions) < MinAnswersForAdaptation {
		return s.Settings.InitialDifficulty
	}
	window := recentWindow(s.Questions, RecentWindow)
	last := s.Questions[len(s.Questions)-1]
	acc, avg := windowStats(window)
	return problemgen.NextDifficulty(last.Difficulty, problemgen.Stats{
		Accuracy:      acc,
		AverageTimeMs: avg,
		SessionCount:  len(window),
	})
}

// NextOperation picks the operation for the next question uniformly from
// the session's target operations.
func NextOperation(s *Session, r *rand.Rand) problemgen.Operation {
	if len(s.Operations) == 1 {
		return s.Operations[0]
	}
	return s.Operations[r.IntN(len(s.Operations))]
}

func recentWindow(questions []AnsweredQuestion, n int) []AnsweredQuestion {
	if n <= 0 || len(questions) <= n {
		return questions
	}
	return questions[len(questions)-n:]
}

// windowStats returns accuracy (percent) and mean response time.
func windowStats(window []AnsweredQuestion) (accuracy, avgTimeMs float64) {
	if len(window) == 0 {
		return 0, 0
	}
	var correct int
	var total int64
	for _, q := range window {
		if q.IsCorrect {
			correct++
		}
		total += q.ResponseTimeMs
	}
	n := float64(len(window))
	return 100 * float64(correct) / n, float64(total) / n
}
