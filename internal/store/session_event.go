package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

type eventRepo struct {
	q   querier
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx, r.q)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert(sessionEventsTableName).
		Columns("sequence", "timestamp", "session_id", "user_id", "action", "questions_served", "correct_answers", "duration_secs").
		Values(seqNum, toMillis(time.Now()), data.SessionID, data.UserID, data.Action, data.QuestionsServed, data.CorrectAnswers, data.DurationSecs).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx, r.q)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert(answerEventsTableName).
		Columns(
			"sequence", "timestamp", "session_id", "user_id", "operation", "difficulty",
			"question_text", "correct_answer", "learner_answer", "correct", "time_ms", "hint_used",
		).
		Values(
			seqNum, toMillis(time.Now()), data.SessionID, data.UserID, string(data.Operation), data.Difficulty,
			data.QuestionText, data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.TimeMs, data.HintUsed,
		).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionEvents(ctx context.Context, sessionID string) ([]SessionEvent, error) {
	query, args := builder.Select("sequence", "timestamp", "session_id", "user_id", "action", "questions_served", "correct_answers", "duration_secs").
		From(builder.Table(sessionEventsTableName)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var (
			e  SessionEvent
			ts int64
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.UserID, &e.Action, &e.QuestionsServed, &e.CorrectAnswers, &e.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) OperationAccuracy(ctx context.Context, userID string, op problemgen.Operation) (float64, error) {
	query, args := builder.Select("correct").
		From(builder.Table(answerEventsTableName)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("operation", string(op)),
		)).
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("query operation accuracy: %w", err)
	}
	defer rows.Close()

	total, correct := 0, 0
	for rows.Next() {
		var ok bool
		if err := rows.Scan(&ok); err != nil {
			return 0, fmt.Errorf("scan answer event: %w", err)
		}
		total++
		if ok {
			correct++
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("query operation accuracy: %w", err)
	}
	if total == 0 {
		return 0, nil
	}
	return float64(correct) / float64(total), nil
}

func (r *eventRepo) DeleteByUser(ctx context.Context, userID string) error {
	for _, table := range []string{sessionEventsTableName, answerEventsTableName} {
		query, args := builder.Delete(table).
			Where(entsql.EQ("user_id", userID)).
			Query()
		if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}
