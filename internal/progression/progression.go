package progression

import (
	"math"
	"time"
)

const (
	// StreakAccuracyThreshold is the session accuracy (percent) needed to
	// keep the day streak alive.
	StreakAccuracyThreshold = 70.0

	// StreakBonusThreshold is the streak length that must be exceeded
	// before a streak bonus is paid.
	StreakBonusThreshold = 5

	expPerQuestion  = 10
	expPerStreakDay = 5
	expPerLevelUnit = 100
)

// UserState is a learner's cumulative progression record.
type UserState struct {
	TotalSessions            int       `json:"total_sessions"`
	TotalQuestions           int       `json:"total_questions"`
	CorrectAnswers           int       `json:"correct_answers"`
	AverageAccuracy          float64   `json:"average_accuracy"` // percent, cumulative
	CurrentStreak            int       `json:"current_streak"`
	LongestStreak            int       `json:"longest_streak"`
	TotalPracticeTimeSeconds int       `json:"total_practice_time_seconds"`
	Level                    int       `json:"level"`
	Experience               int       `json:"experience"`
	LastActive               time.Time `json:"last_active"`
}

// NewUserState returns the state of a learner with no sessions.
func NewUserState() UserState {
	return UserState{Level: 1}
}

// SessionResult is the slice of a completed session that progression
// consumes.
type SessionResult struct {
	QuestionsAnswered  int
	CorrectAnswers     int
	SessionTimeSeconds int
	Accuracy           float64 // percent, 0-100
	IsStreakContinued  bool
}

// Award is the experience breakdown paid for one session.
type Award struct {
	BaseExp       int
	AccuracyBonus int
	SpeedBonus    int
	StreakBonus   int
	Total         int
	LevelBefore   int
	LevelAfter    int
}

// LeveledUp reports whether the award crossed a level boundary.
func (a Award) LeveledUp() bool {
	return a.LevelAfter > a.LevelBefore
}

// Apply folds one completed session into the user's state. It must be
// called exactly once per completed session.
//
// A session with IsStreakContinued false and accuracy at or above the
// threshold leaves CurrentStreak untouched.
func Apply(state UserState, result SessionResult, now time.Time) (UserState, Award) {
	levelBefore := state.Level
	if levelBefore < 1 {
		levelBefore = Level(state.Experience)
	}

	state.TotalSessions++
	state.TotalQuestions += result.QuestionsAnswered
	state.CorrectAnswers += result.CorrectAnswers
	state.TotalPracticeTimeSeconds += result.SessionTimeSeconds
	if state.TotalQuestions > 0 {
		state.AverageAccuracy = 100 * float64(state.CorrectAnswers) / float64(state.TotalQuestions)
	}

	if result.IsStreakContinued && result.Accuracy >= StreakAccuracyThreshold {
		state.CurrentStreak++
		state.LongestStreak = max(state.LongestStreak, state.CurrentStreak)
	} else if result.Accuracy < StreakAccuracyThreshold {
		state.CurrentStreak = 0
	}

	award := Award{
		BaseExp:       result.QuestionsAnswered * expPerQuestion,
		AccuracyBonus: int(math.Floor(result.Accuracy * float64(result.QuestionsAnswered) * 0.1)),
	}
	if result.SessionTimeSeconds > 0 {
		award.SpeedBonus = int(math.Floor(float64(result.QuestionsAnswered) / float64(result.SessionTimeSeconds) * 100))
	}
	if state.CurrentStreak > StreakBonusThreshold {
		award.StreakBonus = state.CurrentStreak * expPerStreakDay
	}
	award.Total = award.BaseExp + award.AccuracyBonus + award.SpeedBonus + award.StreakBonus

	state.Experience += award.Total
	state.Level = Level(state.Experience)
	state.LastActive = now

	award.LevelBefore = levelBefore
	award.LevelAfter = state.Level
	return state, award
}

// Level returns the level reached with exp experience points.
func Level(exp int) int {
	if exp <= 0 {
		return 1
	}
	return int(math.Floor(math.Sqrt(float64(exp)/expPerLevelUnit))) + 1
}

// ExperienceForLevel returns the minimum experience at which level is
// reached.
func ExperienceForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return n * n * expPerLevelUnit
}

// IsStreakContinued reports whether a session at now extends a streak whose
// last session was at lastActive. Sessions on the same calendar day or the
// following one continue it. A zero lastActive starts a new streak.
func IsStreakContinued(lastActive, now time.Time) bool {
	if lastActive.IsZero() {
		return true
	}
	last := calendarDay(lastActive.In(now.Location()))
	today := calendarDay(now)
	return !today.Before(last) && !today.After(last.AddDate(0, 0, 1))
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
