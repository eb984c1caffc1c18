package progression

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

func TestApply_FirstSession(t *testing.T) {
	state, award := Apply(NewUserState(), SessionResult{
		QuestionsAnswered:  10,
		CorrectAnswers:     8,
		SessionTimeSeconds: 60,
		Accuracy:           80,
		IsStreakContinued:  true,
	}, testNow)

	if award.BaseExp != 100 {
		t.Errorf("BaseExp = %d, want 100", award.BaseExp)
	}
	if award.AccuracyBonus != 80 {
		t.Errorf("AccuracyBonus = %d, want 80", award.AccuracyBonus)
	}
	if award.SpeedBonus != 16 {
		t.Errorf("SpeedBonus = %d, want 16", award.SpeedBonus)
	}
	if award.StreakBonus != 0 {
		t.Errorf("StreakBonus = %d, want 0", award.StreakBonus)
	}
	if award.Total != 196 || state.Experience != 196 {
		t.Errorf("Total = %d, Experience = %d, want 196", award.Total, state.Experience)
	}
	if state.Level != 2 {
		t.Errorf("Level = %d, want 2", state.Level)
	}
	if !award.LeveledUp() {
		t.Error("expected level up from 1 to 2")
	}
	if state.TotalSessions != 1 || state.TotalQuestions != 10 || state.CorrectAnswers != 8 {
		t.Errorf("totals = %d/%d/%d, want 1/10/8", state.TotalSessions, state.TotalQuestions, state.CorrectAnswers)
	}
	if state.TotalPracticeTimeSeconds != 60 {
		t.Errorf("TotalPracticeTimeSeconds = %d, want 60", state.TotalPracticeTimeSeconds)
	}
	if state.CurrentStreak != 1 || state.LongestStreak != 1 {
		t.Errorf("streak = %d/%d, want 1/1", state.CurrentStreak, state.LongestStreak)
	}
	if !state.LastActive.Equal(testNow) {
		t.Errorf("LastActive = %v, want %v", state.LastActive, testNow)
	}
}

func TestApply_CumulativeAccuracy(t *testing.T) {
	state := NewUserState()
	state, _ = Apply(state, SessionResult{QuestionsAnswered: 10, CorrectAnswers: 10, SessionTimeSeconds: 30, Accuracy: 100}, testNow)
	state, _ = Apply(state, SessionResult{QuestionsAnswered: 30, CorrectAnswers: 15, SessionTimeSeconds: 90, Accuracy: 50}, testNow)

	// 25 of 40 overall, not the mean of the two session accuracies.
	if state.AverageAccuracy != 62.5 {
		t.Errorf("AverageAccuracy = %v, want 62.5", state.AverageAccuracy)
	}
}

func TestApply_Streak(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		longest   int
		continued bool
		accuracy  float64
		want      int
		wantLong  int
	}{
		{"continued and accurate", 2, 4, true, 85, 3, 4},
		{"new longest", 4, 4, true, 70, 5, 5},
		{"continued but inaccurate", 3, 3, true, 69.9, 0, 3},
		{"broken and inaccurate", 3, 3, false, 40, 0, 3},
		{"broken but accurate keeps streak", 3, 6, false, 95, 3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := UserState{Level: 1, CurrentStreak: tt.current, LongestStreak: tt.longest}
			got, _ := Apply(state, SessionResult{
				QuestionsAnswered:  10,
				CorrectAnswers:     int(tt.accuracy / 10),
				SessionTimeSeconds: 100,
				Accuracy:           tt.accuracy,
				IsStreakContinued:  tt.continued,
			}, testNow)
			if got.CurrentStreak != tt.want {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.want)
			}
			if got.LongestStreak != tt.wantLong {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.wantLong)
			}
		})
	}
}

func TestApply_StreakBonus(t *testing.T) {
	tests := []struct {
		streakBefore int
		want         int
	}{
		{3, 0},  // becomes 4
		{4, 0},  // becomes 5, not above the threshold
		{5, 30}, // becomes 6
		{9, 50}, // becomes 10
	}

	for _, tt := range tests {
		state := UserState{Level: 1, CurrentStreak: tt.streakBefore, LongestStreak: tt.streakBefore}
		_, award := Apply(state, SessionResult{QuestionsAnswered: 5, CorrectAnswers: 5, Accuracy: 100, IsStreakContinued: true}, testNow)
		if award.StreakBonus != tt.want {
			t.Errorf("streak %d: StreakBonus = %d, want %d", tt.streakBefore, award.StreakBonus, tt.want)
		}
	}
}

func TestApply_ZeroSessionTime(t *testing.T) {
	_, award := Apply(NewUserState(), SessionResult{QuestionsAnswered: 3, CorrectAnswers: 3, Accuracy: 100}, testNow)
	if award.SpeedBonus != 0 {
		t.Errorf("SpeedBonus = %d, want 0", award.SpeedBonus)
	}
	if award.Total != 60 {
		t.Errorf("Total = %d, want 60", award.Total)
	}
}

func TestApply_EmptySession(t *testing.T) {
	state := UserState{Level: 1, TotalQuestions: 4, CorrectAnswers: 2, AverageAccuracy: 50}
	got, award := Apply(state, SessionResult{}, testNow)
	if got.AverageAccuracy != 50 {
		t.Errorf("AverageAccuracy = %v, want 50", got.AverageAccuracy)
	}
	if award.Total != 0 {
		t.Errorf("Total = %d, want 0", award.Total)
	}
	if got.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1", got.TotalSessions)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		exp  int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{196, 2},
		{399, 2},
		{400, 3},
		{900, 4},
		{10000, 11},
	}

	for _, tt := range tests {
		if got := Level(tt.exp); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.exp, got, tt.want)
		}
	}
}

func TestExperienceForLevel(t *testing.T) {
	for level := 1; level <= 20; level++ {
		exp := ExperienceForLevel(level)
		if got := Level(exp); got != level {
			t.Errorf("Level(ExperienceForLevel(%d)) = %d", level, got)
		}
		if exp > 0 && Level(exp-1) != level-1 {
			t.Errorf("Level(%d) = %d, want %d", exp-1, Level(exp-1), level-1)
		}
	}
}

func TestLevelMonotonic(t *testing.T) {
	prev := Level(0)
	for exp := 1; exp <= 5000; exp++ {
		l := Level(exp)
		if l < prev {
			t.Fatalf("Level(%d) = %d < Level(%d) = %d", exp, l, exp-1, prev)
		}
		prev = l
	}
}

func TestIsStreakContinued(t *testing.T) {
	tests := []struct {
		name       string
		lastActive time.Time
		want       bool
	}{
		{"first session", time.Time{}, true},
		{"same day", time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC), true},
		{"yesterday late", time.Date(2026, 3, 13, 23, 59, 0, 0, time.UTC), true},
		{"yesterday early", time.Date(2026, 3, 13, 0, 1, 0, 0, time.UTC), true},
		{"two days ago", time.Date(2026, 3, 12, 23, 59, 0, 0, time.UTC), false},
		{"in the future", time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStreakContinued(tt.lastActive, testNow); got != tt.want {
				t.Errorf("IsStreakContinued(%v) = %v, want %v", tt.lastActive, got, tt.want)
			}
		})
	}
}
