package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathdrill/internal/session"
)

var sessionColumns = []string{
	"id",
	"user_id",
	"type",
	"operations",
	"settings",
	"questions",
	"performance",
	"start_time",
	"end_time",
	"duration_seconds",
	"is_completed",
}

type sessionRepo struct {
	q querier
}

func (r *sessionRepo) Create(ctx context.Context, s *session.Session) error {
	values, err := sessionValues(s)
	if err != nil {
		return err
	}

	query, args := builder.Insert(sessionsTableName).
		Columns(sessionColumns...).
		Values(values...).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: session %s", ErrAlreadyExists, s.ID)
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*session.Session, error) {
	query, args := builder.Select(sessionColumns...).
		From(builder.Table(sessionsTableName)).
		Where(entsql.EQ("id", id)).
		Query()

	s, err := scanSession(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("query session: %w", err)
	}
	return s, nil
}

func (r *sessionRepo) Update(ctx context.Context, s *session.Session) error {
	values, err := sessionValues(s)
	if err != nil {
		return err
	}

	update := builder.Update(sessionsTableName)
	for i, col := range sessionColumns {
		if col == "id" {
			continue
		}
		update.Set(col, values[i])
	}
	query, args := update.Where(entsql.EQ("id", s.ID)).Query()

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: session %s", ErrNotFound, s.ID)
	}
	return nil
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*session.Session, error) {
	selector := builder.Select(sessionColumns...).
		From(builder.Table(sessionsTableName)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("start_time"), entsql.Desc("id"))
	if limit > 0 {
		selector.Limit(limit)
	}
	query, args := selector.Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*session.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	query, args := builder.Delete(sessionsTableName).
		Where(entsql.EQ("user_id", userID)).
		Query()
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return int(n), nil
}

// sessionValues encodes s in sessionColumns order.
func sessionValues(s *session.Session) ([]any, error) {
	ops, err := json.Marshal(s.Operations)
	if err != nil {
		return nil, fmt.Errorf("marshal operations: %w", err)
	}
	settings, err := json.Marshal(s.Settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	questions := s.Questions
	if questions == nil {
		questions = []session.AnsweredQuestion{}
	}
	qs, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("marshal questions: %w", err)
	}
	perf, err := json.Marshal(s.Performance)
	if err != nil {
		return nil, fmt.Errorf("marshal performance: %w", err)
	}

	var endTime sql.NullInt64
	if s.EndTime != nil {
		endTime = sql.NullInt64{Int64: toMillis(*s.EndTime), Valid: true}
	}

	return []any{
		s.ID,
		s.UserID,
		string(s.Type),
		string(ops),
		string(settings),
		string(qs),
		string(perf),
		toMillis(s.StartTime),
		endTime,
		s.DurationSeconds,
		s.IsCompleted,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*session.Session, error) {
	var (
		s                              session.Session
		typ                            string
		ops, settings, questions, perf string
		startTime                      int64
		endTime                        sql.NullInt64
	)
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&typ,
		&ops,
		&settings,
		&questions,
		&perf,
		&startTime,
		&endTime,
		&s.DurationSeconds,
		&s.IsCompleted,
	)
	if err != nil {
		return nil, err
	}

	s.Type = session.Type(typ)
	s.StartTime = fromMillis(startTime)
	if endTime.Valid {
		t := fromMillis(endTime.Int64)
		s.EndTime = &t
	}

	if err := json.Unmarshal([]byte(ops), &s.Operations); err != nil {
		return nil, fmt.Errorf("decode operations: %w", err)
	}
	if err := json.Unmarshal([]byte(settings), &s.Settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := json.Unmarshal([]byte(questions), &s.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if err := json.Unmarshal([]byte(perf), &s.Performance); err != nil {
		return nil, fmt.Errorf("decode performance: %w", err)
	}
	return &s, nil
}
