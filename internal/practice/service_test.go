package practice

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
)

var testStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// stepClock advances one second on every reading.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "practice.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func newTestService(t *testing.T, st *store.Store) *Service {
	t.Helper()
	clock := &stepClock{t: testStart}
	var n int
	var mu sync.Mutex
	return NewService(st, problemgen.NewFromSeed(7, problemgen.DefaultConfig()),
		WithClock(clock.Now),
		WithIDFunc(func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("session-%d", n)
		}),
	)
}

func questionBased(limit int) StartInput {
	settings := session.DefaultSettings()
	settings.SessionLimit = &limit
	return StartInput{
		UserID:     "u1",
		Type:       session.QuestionBased,
		Operations: []problemgen.Operation{problemgen.Addition, problemgen.Multiplication},
		Settings:   settings,
	}
}

func TestStart(t *testing.T) {
	st := openTestStore(t)
	svc := newTestService(t, st)
	ctx := context.Background()

	sess, q, err := svc.Start(ctx, questionBased(3))
	require.NoError(t, err)
	require.NotNil(t, q)

	assert.Equal(t, "session-1", sess.ID)
	assert.Contains(t, []problemgen.Operation{problemgen.Addition, problemgen.Multiplication}, q.Operation)
	assert.Equal(t, 1.0, q.Difficulty, "first question uses the initial difficulty")

	stored, err := st.SessionRepo().Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseActive, stored.Phase())

	events, err := st.EventRepo().SessionEvents(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionStart, events[0].Action)
}

func TestStart_Invalid(t *testing.T) {
	svc := newTestService(t, openTestStore(t))
	ctx := context.Background()

	in := questionBased(3)
	in.Operations = nil
	_, _, err := svc.Start(ctx, in)
	assert.ErrorIs(t, err, session.ErrNoOperations)

	in = questionBased(3)
	in.UserID = ""
	_, _, err = svc.Start(ctx, in)
	assert.Error(t, err)
}

func TestAnswer_QuestionBasedSession(t *testing.T) {
	st := openTestStore(t)
	svc := newTestService(t, st)
	ctx := context.Background()

	sess, q, err := svc.Start(ctx, questionBased(3))
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		res, err := svc.Answer(ctx, AnswerInput{SessionID: sess.ID, UserAnswer: q.Answer, ResponseTimeMs: 2000})
		require.NoError(t, err, "answer %d", i)
		assert.True(t, res.Correct)
		assert.Len(t, res.Session.Questions, i)

		if i < 3 {
			require.NotNil(t, res.Next, "answer %d should yield a next question", i)
			assert.Nil(t, res.Completion)
			q = res.Next
			continue
		}

		assert.Nil(t, res.Next)
		require.NotNil(t, res.Completion)
		c := res.Completion
		assert.Equal(t, 3, c.Summary.TotalQuestions)
		assert.Equal(t, 100.0, c.Summary.Accuracy)
		assert.Equal(t, 3*time.Second, c.Summary.Duration)
		// 30 base + 30 accuracy + floor(3/3*100) speed.
		assert.Equal(t, 160, c.Award.Total)
		assert.Equal(t, 2, c.State.Level)
		assert.Equal(t, 1, c.State.CurrentStreak)
	}

	stored, err := st.SessionRepo().Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCompleted)
	assert.Len(t, stored.Questions, 3)

	stats, err := st.StatsRepo().Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 3, stats.TotalQuestions)
	assert.Equal(t, 160, stats.Experience)

	events, err := st.EventRepo().SessionEvents(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionComplete, events[1].Action)
	assert.Equal(t, 3, events[1].QuestionsServed)

	_, err = svc.Answer(ctx, AnswerInput{SessionID: sess.ID, UserAnswer: 1})
	assert.ErrorIs(t, err, ErrNoPendingQuestion)

	_, err = svc.End(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrAlreadyCompleted)

	_, err = svc.Next(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrSessionClosed)

	// Completion applied progression exactly once.
	stats, err = st.StatsRepo().Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSessions)
}

func TestAnswer_Wrong(t *testing.T) {
	svc := newTestService(t, openTestStore(t))
	ctx := context.Background()

	sess, q, err := svc.Start(ctx, questionBased(5))
	require.NoError(t, err)

	res, err := svc.Answer(ctx, AnswerInput{SessionID: sess.ID, UserAnswer: q.Answer + 1, ResponseTimeMs: 4000})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, q.Answer+1, res.Answered.UserAnswer)
	assert.Equal(t, 0.0, res.Session.Performance.Accuracy)
}

func adaptiveStart(adaptive bool) StartInput {
	settings := session.DefaultSettings()
	settings.InitialDifficulty = 5
	settings.AdaptiveDifficulty = adaptive
	return StartInput{
		UserID:     "u1",
		Type:       session.Endless,
		Operations: []problemgen.Operation{problemgen.Addition},
		Settings:   settings,
	}
}

// answerCorrectly answers n questions correctly and fast, returning the
// difficulty of every question served including the one left pending.
func answerCorrectly(t *testing.T, svc *Service, sessionID string, q *problemgen.Question, n int) []float64 {
	t.Helper()
	served := []float64{q.Difficulty}
	for i := 0; i < n; i++ {
		res, err := svc.Answer(context.Background(), AnswerInput{SessionID: sessionID, UserAnswer: q.Answer, ResponseTimeMs: 1000})
		require.NoError(t, err)
		require.True(t, res.Correct)
		require.NotNil(t, res.Next)
		q = res.Next
		served = append(served, q.Difficulty)
	}
	return served
}

func TestAnswer_AdaptiveDifficultyFollowsRecentAnswers(t *testing.T) {
	svc := newTestService(t, openTestStore(t))
	sess, q, err := svc.Start(context.Background(), adaptiveStart(true))
	require.NoError(t, err)

	served := answerCorrectly(t, svc, sess.ID, q, 4)

	// Too few answers to adapt for the first three questions.
	assert.Equal(t, []float64{5, 5, 5}, served[:3])

	// Three fast correct answers: +0.5 accuracy, +0.2 speed, applied once.
	want4 := problemgen.NextDifficulty(5, problemgen.Stats{Accuracy: 100, AverageTimeMs: 1000, SessionCount: 3})
	assert.Equal(t, 5.7, want4)
	assert.Equal(t, want4, served[3])

	want5 := problemgen.NextDifficulty(want4, problemgen.Stats{Accuracy: 100, AverageTimeMs: 1000, SessionCount: 4})
	assert.Equal(t, want5, served[4])
}

func TestAnswer_NonAdaptiveKeepsInitialDifficulty(t *testing.T) {
	svc := newTestService(t, openTestStore(t))
	sess, q, err := svc.Start(context.Background(), adaptiveStart(false))
	require.NoError(t, err)

	for i, d := range answerCorrectly(t, svc, sess.ID, q, 6) {
		assert.Equal(t, 5.0, d, "question %d", i+1)
	}
}

func TestAnswer_UnknownSession(t *testing.T) {
	svc := newTestService(t, openTestStore(t))
	_, err := svc.Answer(context.Background(), AnswerInput{SessionID: "nope"})
	assert.ErrorIs(t, err, ErrNoPendingQuestion)

	_, err = svc.Next(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEnd(t *testing.T) {
	st := openTestStore(t)
	svc := newTestService(t, st)
	ctx := context.Background()

	in := questionBased(0)
	in.Type = session.Endless
	sess, q, err := svc.Start(ctx, in)
	require.NoError(t, err)

	_, err = svc.Answer(ctx, AnswerInput{SessionID: sess.ID, UserAnswer: q.Answer, ResponseTimeMs: 1500})
	require.NoError(t, err)

	c, err := svc.End(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Summary.TotalQuestions)
	assert.Equal(t, 1, c.State.TotalSessions)

	_, err = svc.Answer(ctx, AnswerInput{SessionID: sess.ID, UserAnswer: 1})
	assert.ErrorIs(t, err, ErrNoPendingQuestion, "pending question is dropped on end")

	events, err := st.EventRepo().SessionEvents(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionEnd, events[1].Action)
}

func TestNext(t *testing.T) {
	st := openTestStore(t)
	svc := newTestService(t, st)
	ctx := context.Background()

	sess, q, err := svc.Start(ctx, questionBased(3))
	require.NoError(t, err)

	again, err := svc.Next(ctx, sess.ID)
	require.NoError(t, err)
	assert.Same(t, q, again, "pending question is reused")

	// A fresh service has no pending state and generates a new question.
	restarted := newTestService(t, st)
	fresh, err := restarted.Next(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh)

	res, err := restarted.Answer(ctx, AnswerInput{SessionID: sess.ID, UserAnswer: fresh.Answer})
	require.NoError(t, err)
	assert.True(t, res.Correct)
}

func TestAnswer_ConcurrentSameSession(t *testing.T) {
	st := openTestStore(t)
	svc := newTestService(t, st)
	ctx := context.Background()

	in := questionBased(0)
	in.Type = session.Endless
	sess, _, err := svc.Start(ctx, in)
	require.NoError(t, err)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Answer(ctx, AnswerInput{SessionID: sess.ID, UserAnswer: 0, ResponseTimeMs: 1000})
			if err != nil && !errors.Is(err, ErrNoPendingQuestion) {
				t.Errorf("answer: %v", err)
				return
			}
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	stored, err := st.SessionRepo().Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, successes, len(stored.Questions))
	assert.Equal(t, successes, stored.Performance.TotalQuestions)
	assert.Equal(t, 0, svc.locks.size())
}

func TestStats(t *testing.T) {
	svc := newTestService(t, openTestStore(t))
	ctx := context.Background()

	report, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.State.Level)
	assert.Equal(t, 100, report.ExperienceToNext)

	sess, q, err := svc.Start(ctx, questionBased(2))
	require.NoError(t, err)
	res, err := svc.Answer(ctx, AnswerInput{SessionID: sess.ID, UserAnswer: q.Answer, ResponseTimeMs: 1000})
	require.NoError(t, err)
	first := res.Answered.Operation
	res, err = svc.Answer(ctx, AnswerInput{SessionID: sess.ID, UserAnswer: res.Next.Answer + 1, ResponseTimeMs: 1000})
	require.NoError(t, err)
	require.NotNil(t, res.Completion)
	second := res.Answered.Operation

	report, err = svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.State.TotalSessions)
	assert.Equal(t, 50.0, report.State.AverageAccuracy)
	assert.Equal(t, 0.0, report.OperationAccuracy[problemgen.Division])
	if first != second {
		assert.Equal(t, 1.0, report.OperationAccuracy[first])
		assert.Equal(t, 0.0, report.OperationAccuracy[second])
	} else {
		assert.Equal(t, 0.5, report.OperationAccuracy[first])
	}
	assert.Equal(t, 400-report.State.Experience, report.ExperienceToNext)
}

func TestHistoryAndReset(t *testing.T) {
	svc := newTestService(t, openTestStore(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		sess, q, err := svc.Start(ctx, questionBased(1))
		require.NoError(t, err)
		_, err = svc.Answer(ctx, AnswerInput{SessionID: sess.ID, UserAnswer: q.Answer, ResponseTimeMs: 1000})
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "session-3", history[0].SessionID)
	assert.Equal(t, "session-2", history[1].SessionID)

	require.NoError(t, svc.Reset(ctx, "u1"))

	history, err = svc.History(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, history)

	report, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, report.State.TotalSessions)
	assert.Equal(t, 0.0, report.OperationAccuracy[problemgen.Addition])
}

func TestKeyedMutex(t *testing.T) {
	k := newKeyedMutex()
	unlockA := k.Lock("a")
	unlockB := k.Lock("b")
	assert.Equal(t, 2, k.size())

	done := make(chan struct{})
	go func() {
		unlock := k.Lock("a")
		unlock()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second Lock on a held key should block")
	case <-time.After(20 * time.Millisecond):
	}

	unlockA()
	<-done
	unlockB()
	assert.Equal(t, 0, k.size())
}
