package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathdrill/internal/progression"
)

var userStatsColumns = []string{
	"user_id",
	"total_sessions",
	"total_questions",
	"correct_answers",
	"average_accuracy",
	"current_streak",
	"longest_streak",
	"total_practice_time_seconds",
	"level",
	"experience",
	"last_active",
}

type statsRepo struct {
	q querier
}

func (r *statsRepo) Get(ctx context.Context, userID string) (progression.UserState, error) {
	query, args := builder.Select(userStatsColumns...).
		From(builder.Table(userStatsTableName)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var (
		st         progression.UserState
		id         string
		lastActive sql.NullInt64
	)
	err := r.q.QueryRowContext(ctx, query, args...).Scan(
		&id,
		&st.TotalSessions,
		&st.TotalQuestions,
		&st.CorrectAnswers,
		&st.AverageAccuracy,
		&st.CurrentStreak,
		&st.LongestStreak,
		&st.TotalPracticeTimeSeconds,
		&st.Level,
		&st.Experience,
		&lastActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return progression.UserState{}, fmt.Errorf("%w: stats for %s", ErrNotFound, userID)
		}
		return progression.UserState{}, fmt.Errorf("query user stats: %w", err)
	}
	if lastActive.Valid {
		st.LastActive = fromMillis(lastActive.Int64)
	}
	return st, nil
}

func (r *statsRepo) Save(ctx context.Context, userID string, st progression.UserState) error {
	var lastActive sql.NullInt64
	if !st.LastActive.IsZero() {
		lastActive = sql.NullInt64{Int64: toMillis(st.LastActive), Valid: true}
	}

	query, args := builder.Insert(userStatsTableName).
		Columns(userStatsColumns...).
		Values(
			userID,
			st.TotalSessions,
			st.TotalQuestions,
			st.CorrectAnswers,
			st.AverageAccuracy,
			st.CurrentStreak,
			st.LongestStreak,
			st.TotalPracticeTimeSeconds,
			st.Level,
			st.Experience,
			lastActive,
		).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save user stats: %w", err)
	}
	return nil
}

func (r *statsRepo) Delete(ctx context.Context, userID string) error {
	query, args := builder.Delete(userStatsTableName).
		Where(entsql.EQ("user_id", userID)).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete user stats: %w", err)
	}
	return nil
}
