// Package views renders drill output as styled terminal text.
package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/abhisek/mathdrill/internal/practice"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/progression"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

const barWidth = 40

// FormatDuration renders d as m:ss.
func FormatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Question renders the n-th question of a session.
func Question(n int, q *problemgen.Question) string {
	header := theme.Label.Render(fmt.Sprintf("── Question %d · %s · difficulty %.1f ──",
		n, q.Operation, q.Difficulty))
	return header + "\n" + theme.Prompt.Render(q.Text)
}

// Hints renders the question's hints, one per line.
func Hints(q *problemgen.Question) string {
	lines := make([]string, 0, len(q.Hints))
	for _, h := range q.Hints {
		lines = append(lines, theme.Hint.Render("hint: "+h))
	}
	return strings.Join(lines, "\n")
}

// Feedback renders the verdict for an answered question.
func Feedback(a session.AnsweredQuestion) string {
	if a.IsCorrect {
		return theme.Correct.Render("✓ Correct!") + " " +
			theme.Label.Render(fmt.Sprintf("(%.1fs)", float64(a.ResponseTimeMs)/1000))
	}
	return theme.Incorrect.Render("✗ Not quite.") + " " +
		theme.Hint.Render(a.Explanation)
}

// Summary renders a completed session.
func Summary(sum *session.SessionSummary) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Session complete!"))
	b.WriteString("\n\n")
	writeRow(&b, "Duration", FormatDuration(sum.Duration))
	writeRow(&b, "Questions", fmt.Sprintf("%d", sum.TotalQuestions))
	writeRow(&b, "Correct", fmt.Sprintf("%d", sum.CorrectAnswers))
	writeRow(&b, "Accuracy", fmt.Sprintf("%.0f%%", sum.Accuracy))
	writeRow(&b, "Avg time", fmt.Sprintf("%.1fs", sum.AverageTimeMs/1000))
	writeRow(&b, "Best streak", fmt.Sprintf("%d", sum.StreakAchieved))
	writeRow(&b, "Difficulty", fmt.Sprintf("%.1f", sum.FinalDifficulty))

	if len(sum.OperationBreakdown) > 0 {
		b.WriteString("\n")
		for _, op := range problemgen.Operations {
			st, ok := sum.OperationBreakdown[op]
			if !ok || st.Attempted == 0 {
				continue
			}
			writeRow(&b, string(op), fmt.Sprintf("%d/%d correct", st.Correct, st.Attempted))
		}
	}
	return theme.Card.Render(strings.TrimRight(b.String(), "\n"))
}

// Award renders the experience earned by a session and any level change.
func Award(a progression.Award) string {
	var b strings.Builder
	b.WriteString(theme.Highlight.Render(fmt.Sprintf("+%d XP", a.Total)))
	b.WriteString(theme.Label.Render(fmt.Sprintf("  (base %d, accuracy %d, speed %d, streak %d)",
		a.BaseExp, a.AccuracyBonus, a.SpeedBonus, a.StreakBonus)))
	if a.LeveledUp() {
		b.WriteString("\n")
		b.WriteString(theme.Correct.Render(fmt.Sprintf("Level up! %d → %d", a.LevelBefore, a.LevelAfter)))
	}
	return b.String()
}

// Stats renders a learner's cumulative progress.
func Stats(r *practice.StatsReport) string {
	st := r.State
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Level %d", st.Level)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("XP", LevelProgress(st), false, barWidth).View())
	b.WriteString(theme.Label.Render(fmt.Sprintf("  %d XP, %d to next level", st.Experience, r.ExperienceToNext)))
	b.WriteString("\n\n")

	writeRow(&b, "Sessions", fmt.Sprintf("%d", st.TotalSessions))
	writeRow(&b, "Questions", humanize.Comma(int64(st.TotalQuestions)))
	writeRow(&b, "Correct", humanize.Comma(int64(st.CorrectAnswers)))
	writeRow(&b, "Accuracy", fmt.Sprintf("%.1f%%", st.AverageAccuracy))
	writeRow(&b, "Streak", fmt.Sprintf("%d days (best %d)", st.CurrentStreak, st.LongestStreak))
	writeRow(&b, "Practice", FormatDuration(time.Duration(st.TotalPracticeTimeSeconds)*time.Second))
	if !st.LastActive.IsZero() {
		writeRow(&b, "Last active", humanize.Time(st.LastActive))
	}

	b.WriteString("\n")
	for _, op := range problemgen.Operations {
		b.WriteString(components.NewProgressBar(fmt.Sprintf("%-14s", op), r.OperationAccuracy[op], true, barWidth).View())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// LevelProgress returns how far st is through its current level, in [0, 1].
func LevelProgress(st progression.UserState) float64 {
	lo := progression.ExperienceForLevel(st.Level)
	hi := progression.ExperienceForLevel(st.Level + 1)
	if hi <= lo {
		return 0
	}
	return max(0, min(float64(st.Experience-lo)/float64(hi-lo), 1))
}

// History renders one line per session summary.
func History(sums []*session.SessionSummary) string {
	if len(sums) == 0 {
		return theme.Hint.Render("No sessions yet. Run `mathdrill play` to start one.")
	}
	var b strings.Builder
	b.WriteString(theme.Label.Render(fmt.Sprintf("%-36s  %-14s  %8s  %9s  %8s  %4s",
		"SESSION", "TYPE", "DURATION", "QUESTIONS", "ACCURACY", "XP")))
	for _, s := range sums {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-36s  %-14s  %8s  %9d  %7.0f%%  %4d",
			s.SessionID, s.Type, FormatDuration(s.Duration), s.TotalQuestions, s.Accuracy, s.ExperienceEarned))
	}
	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(theme.Label.Render(fmt.Sprintf("%-14s", label)))
	b.WriteString(theme.Value.Render(value))
	b.WriteString("\n")
}
