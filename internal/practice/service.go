package practice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathdrill/internal/logger"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/progression"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
)

// Service drives practice sessions against the store: it issues questions,
// records answers, completes sessions and applies progression exactly once
// per completed session. Operations on the same session id never
// interleave.
type Service struct {
	store *store.Store
	log   *logger.Logger
	now   func() time.Time
	newID func() string

	genMu sync.Mutex
	gen   *problemgen.Generator

	locks *keyedMutex

	pendingMu sync.Mutex
	pending   map[string]*problemgen.Question
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. The default discards logs.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDFunc overrides session id generation.
func WithIDFunc(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService creates a practice service.
func NewService(st *store.Store, gen *problemgen.Generator, opts ...Option) *Service {
	s := &Service{
		store:   st,
		gen:     gen,
		log:     logger.NewNop(),
		now:     time.Now,
		newID:   uuid.NewString,
		locks:   newKeyedMutex(),
		pending: make(map[string]*problemgen.Question),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates and persists a new session and returns it with its first
// question, generated at the initial difficulty.
func (s *Service) Start(ctx context.Context, in StartInput) (*session.Session, *problemgen.Question, error) {
	if in.UserID == "" {
		return nil, nil, fmt.Errorf("user id is required")
	}

	now := s.now()
	sess, err := session.New(s.newID(), in.UserID, in.Type, in.Operations, in.Settings, now)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.locks.Lock(sess.ID)
	defer unlock()

	err = s.store.InTx(ctx, func(tx *store.Store) error {
		if err := tx.SessionRepo().Create(ctx, sess); err != nil {
			return err
		}
		return tx.EventRepo().AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: sess.ID,
			UserID:    sess.UserID,
			Action:    ActionStart,
		})
	})
	if err != nil {
		return nil, nil, fmt.Errorf("start session: %w", err)
	}

	q, err := s.issue(sess)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("session started",
		"session_id", sess.ID,
		"user_id", sess.UserID,
		"type", string(sess.Type),
		"operations", sess.Operations,
	)
	return sess, q, nil
}

// Next returns the session's pending question, generating one if none is
// outstanding (for example after a restart).
func (s *Service) Next(ctx context.Context, sessionID string) (*problemgen.Question, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if q := s.pendingFor(sessionID); q != nil {
		return q, nil
	}

	sess, err := s.store.SessionRepo().Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.IsCompleted {
		return nil, session.ErrSessionClosed
	}
	return s.issue(sess)
}

// Answer records the learner's answer to the pending question. If the
// session should continue, the result carries the next question;
// otherwise the session is completed and progression applied.
func (s *Service) Answer(ctx context.Context, in AnswerInput) (*AnswerResult, error) {
	unlock := s.locks.Lock(in.SessionID)
	defer unlock()

	q := s.pendingFor(in.SessionID)
	if q == nil {
		return nil, ErrNoPendingQuestion
	}

	var result *AnswerResult
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		sess, err := tx.SessionRepo().Get(ctx, in.SessionID)
		if err != nil {
			return err
		}

		now := s.now()
		answered := session.AnsweredQuestion{
			Question:       *q,
			UserAnswer:     in.UserAnswer,
			IsCorrect:      problemgen.ValidateAnswer(q, in.UserAnswer, problemgen.DefaultTolerance),
			ResponseTimeMs: max(in.ResponseTimeMs, 0),
			HintUsed:       in.HintUsed,
			Timestamp:      now,
		}
		if _, err := session.AddQuestion(sess, answered); err != nil {
			return err
		}

		if err := tx.EventRepo().AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:     sess.ID,
			UserID:        sess.UserID,
			Operation:     q.Operation,
			Difficulty:    q.Difficulty,
			QuestionText:  q.Text,
			CorrectAnswer: q.Answer,
			LearnerAnswer: in.UserAnswer,
			Correct:       answered.IsCorrect,
			TimeMs:        answered.ResponseTimeMs,
			HintUsed:      in.HintUsed,
		}); err != nil {
			return err
		}

		result = &AnswerResult{
			Correct:  answered.IsCorrect,
			Answered: answered,
			Session:  sess,
		}

		if session.ShouldContinue(sess, now) {
			return tx.SessionRepo().Update(ctx, sess)
		}

		completion, err := s.complete(ctx, tx, sess, ActionComplete, now)
		if err != nil {
			return err
		}
		result.Completion = completion
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}

	s.clearPending(in.SessionID)
	s.log.Debug("answer recorded",
		"session_id", in.SessionID,
		"correct", result.Correct,
		"response_time_ms", result.Answered.ResponseTimeMs,
	)

	if result.Completion == nil {
		next, err := s.issue(result.Session)
		if err != nil {
			return nil, err
		}
		result.Next = next
	}
	return result, nil
}

// End terminates an active session early through the same completion path
// as natural expiry. Ending a completed session fails with
// session.ErrAlreadyCompleted.
func (s *Service) End(ctx context.Context, sessionID string) (*Completion, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	var completion *Completion
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		sess, err := tx.SessionRepo().Get(ctx, sessionID)
		if err != nil {
			return err
		}
		completion, err = s.complete(ctx, tx, sess, ActionEnd, s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}

	s.clearPending(sessionID)
	return completion, nil
}

// complete moves sess to Completed, persists it and folds it into the
// user's progression. Runs inside the caller's transaction.
func (s *Service) complete(ctx context.Context, tx *store.Store, sess *session.Session, action string, now time.Time) (*Completion, error) {
	if _, err := session.Complete(sess, now); err != nil {
		return nil, err
	}
	if err := tx.SessionRepo().Update(ctx, sess); err != nil {
		return nil, err
	}
	if err := tx.EventRepo().AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       sess.ID,
		UserID:          sess.UserID,
		Action:          action,
		QuestionsServed: sess.Performance.TotalQuestions,
		CorrectAnswers:  sess.Performance.CorrectAnswers,
		DurationSecs:    sess.DurationSeconds,
	}); err != nil {
		return nil, err
	}

	state, err := tx.StatsRepo().Get(ctx, sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		state = progression.NewUserState()
	} else if err != nil {
		return nil, err
	}

	state, award := progression.Apply(state, progression.SessionResult{
		QuestionsAnswered:  sess.Performance.TotalQuestions,
		CorrectAnswers:     sess.Performance.CorrectAnswers,
		SessionTimeSeconds: sess.DurationSeconds,
		Accuracy:           sess.Performance.Accuracy,
		IsStreakContinued:  progression.IsStreakContinued(state.LastActive, now),
	}, now)
	if err := tx.StatsRepo().Save(ctx, sess.UserID, state); err != nil {
		return nil, err
	}

	s.log.Info("session completed",
		"session_id", sess.ID,
		"user_id", sess.UserID,
		"action", action,
		"questions", sess.Performance.TotalQuestions,
		"accuracy", sess.Performance.Accuracy,
		"experience", award.Total,
		"level", state.Level,
	)

	return &Completion{
		Summary: session.BuildSummary(sess),
		Award:   award,
		State:   state,
	}, nil
}

// Stats returns the user's cumulative progress. A user with no completed
// sessions gets the zero-progress state.
func (s *Service) Stats(ctx context.Context, userID string) (*StatsReport, error) {
	state, err := s.store.StatsRepo().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		state = progression.NewUserState()
	} else if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	events := s.store.EventRepo()
	accuracy := make([]float64, len(problemgen.Operations))
	g, gctx := errgroup.WithContext(ctx)
	for i, op := range problemgen.Operations {
		g.Go(func() error {
			acc, err := events.OperationAccuracy(gctx, userID, op)
			if err != nil {
				return fmt.Errorf("load %s accuracy: %w", op, err)
			}
			accuracy[i] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &StatsReport{
		State:             state,
		OperationAccuracy: make(map[problemgen.Operation]float64, len(problemgen.Operations)),
		ExperienceToNext:  progression.ExperienceForLevel(state.Level+1) - state.Experience,
	}
	for i, op := range problemgen.Operations {
		report.OperationAccuracy[op] = accuracy[i]
	}
	return report, nil
}

// History returns summaries of the user's sessions, newest first. A limit
// of 0 returns all of them.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]*session.SessionSummary, error) {
	sessions, err := s.store.SessionRepo().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	summaries := make([]*session.SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		summaries = append(summaries, session.BuildSummary(sess))
	}
	return summaries, nil
}

// Reset deletes every session, event and progression record of the user.
func (s *Service) Reset(ctx context.Context, userID string) error {
	var removed int
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		n, err := tx.SessionRepo().DeleteByUser(ctx, userID)
		if err != nil {
			return err
		}
		removed = n
		if err := tx.EventRepo().DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return tx.StatsRepo().Delete(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("reset user: %w", err)
	}

	s.log.Info("user reset", "user_id", userID, "sessions_removed", removed)
	return nil
}

// issue generates the next question for sess and records it as pending.
func (s *Service) issue(sess *session.Session) (*problemgen.Question, error) {
	s.genMu.Lock()
	op := session.NextOperation(sess, s.gen.Rand())
	q, err := s.gen.Generate(op, session.NextDifficulty(sess), nil)
	s.genMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}

	s.pendingMu.Lock()
	s.pending[sess.ID] = q
	s.pendingMu.Unlock()
	return q, nil
}

func (s *Service) pendingFor(sessionID string) *problemgen.Question {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	return s.pending[sessionID]
}

func (s *Service) clearPending(sessionID string) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	delete(s.pending, sessionID)
}
