package session

import (
	"math"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// RecomputePerformance derives session metrics from the full ordered
// question list. It is a pure function: the same questions always yield
// the same metrics, and an empty list yields all-zero metrics.
func RecomputePerformance(questions []AnsweredQuestion) Performance {
	perf := Performance{
		OperationBreakdown: make(map[problemgen.Operation]OperationStats, len(problemgen.Operations)),
	}
	for _, op := range problemgen.Operations {
		perf.OperationBreakdown[op] = OperationStats{}
	}

	total := len(questions)
	if total == 0 {
		return perf
	}

	var totalTime int64
	fastest, slowest := questions[0].ResponseTimeMs, questions[0].ResponseTimeMs
	streak, longest := 0, 0
	perf.DifficultyProgression = make([]float64, 0, total)

	for _, q := range questions {
		if q.IsCorrect {
			perf.CorrectAnswers++
			streak++
			longest = max(longest, streak)
		} else {
			streak = 0
		}

		totalTime += q.ResponseTimeMs
		fastest = min(fastest, q.ResponseTimeMs)
		slowest = max(slowest, q.ResponseTimeMs)

		perf.DifficultyProgression = append(perf.DifficultyProgression, q.Difficulty)

		stats := perf.OperationBreakdown[q.Operation]
		stats.Attempted++
		if q.IsCorrect {
			stats.Correct++
		}
		perf.OperationBreakdown[q.Operation] = stats
	}

	perf.TotalQuestions = total
	perf.Accuracy = 100 * float64(perf.CorrectAnswers) / float64(total)
	perf.AverageResponseTimeMs = float64(totalTime) / float64(total)
	perf.FastestResponseTimeMs = fastest
	perf.SlowestResponseTimeMs = slowest
	perf.StreakAchieved = longest
	perf.ExperienceEarned = sessionExperience(total, perf.Accuracy, perf.AverageResponseTimeMs)
	return perf
}

// sessionExperience is 10 per question, plus an accuracy bonus, plus a
// speed bonus that grows as the average response time shrinks.
func sessionExperience(total int, accuracy, avgTimeMs float64) int {
	exp := 10*total + int(math.Floor(accuracy*float64(total)*0.1))
	if avgTimeMs > 0 {
		exp += int(math.Floor(float64(total) / avgTimeMs * 1000))
	}
	return exp
}

// AddQuestion appends an answered question and recomputes the session's
// performance from scratch. Completed sessions reject new answers with
// ErrSessionClosed.
func AddQuestion(s *Session, q AnsweredQuestion) (*Session, error) {
	if s.IsCompleted {
		return nil, ErrSessionClosed
	}
	s.Questions = append(s.Questions, q)
	s.Performance = RecomputePerformance(s.Questions)
	return s, nil
}
