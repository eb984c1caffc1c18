package session

import (
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// SessionSummary holds the data shown when a session completes.
type SessionSummary struct {
	SessionID          string
	Type               Type
	Duration           time.Duration
	TotalQuestions     int
	CorrectAnswers     int
	Accuracy           float64 // percent, 0-100
	AverageTimeMs      float64
	ExperienceEarned   int
	StreakAchieved     int
	FinalDifficulty    float64
	OperationBreakdown map[problemgen.Operation]OperationStats
}

// BuildSummary creates a SessionSummary from the session's stored metrics.
func BuildSummary(s *Session) *SessionSummary {
	final := s.Settings.InitialDifficulty
	if n := len(s.Performance.DifficultyProgression); n > 0 {
		final = s.Performance.DifficultyProgression[n-1]
	}

	return &SessionSummary{
		SessionID:          s.ID,
		Type:               s.Type,
		Duration:           time.Duration(s.DurationSeconds) * time.Second,
		TotalQuestions:     s.Performance.TotalQuestions,
		CorrectAnswers:     s.Performance.CorrectAnswers,
		Accuracy:           s.Performance.Accuracy,
		AverageTimeMs:      s.Performance.AverageResponseTimeMs,
		ExperienceEarned:   s.Performance.ExperienceEarned,
		StreakAchieved:     s.Performance.StreakAchieved,
		FinalDifficulty:    final,
		OperationBreakdown: s.Performance.OperationBreakdown,
	}
}
