package cmd

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/practice"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
)

func testConfig() config.Config {
	return config.Config{
		UserID:      "local",
		SessionType: string(session.QuestionBased),
		Operations:  []string{"addition", "subtraction", "multiplication", "division"},
		Difficulty:  1,
	}
}

func playCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "play"}
	addPlayFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestStartInput_Defaults(t *testing.T) {
	in, err := startInput(playCommand(t), testConfig(), "kid")
	require.NoError(t, err)

	assert.Equal(t, "kid", in.UserID)
	assert.Equal(t, session.QuestionBased, in.Type)
	assert.Equal(t, problemgen.Operations, in.Operations)
	assert.Equal(t, session.DefaultSettings(), in.Settings)
}

func TestStartInput_FlagsOverrideConfig(t *testing.T) {
	cfg := testConfig()
	cfg.SessionType = string(session.Timed)
	cfg.Difficulty = 2

	cmd := playCommand(t,
		"--type", "endless",
		"--ops", "Addition,division",
		"--difficulty", "4.5",
		"--limit", "15",
		"--no-adaptive",
		"--no-hints",
	)
	in, err := startInput(cmd, cfg, "kid")
	require.NoError(t, err)

	assert.Equal(t, session.Endless, in.Type)
	assert.Equal(t, []problemgen.Operation{problemgen.Addition, problemgen.Division}, in.Operations)
	assert.Equal(t, 4.5, in.Settings.InitialDifficulty)
	require.NotNil(t, in.Settings.SessionLimit)
	assert.Equal(t, 15, *in.Settings.SessionLimit)
	assert.Nil(t, in.Settings.TimeLimitSeconds)
	assert.False(t, in.Settings.AdaptiveDifficulty)
	assert.False(t, in.Settings.HintsEnabled)
}

func TestStartInput_SettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"initial_difficulty": 3, "time_limit_seconds": 120}`), 0o600))

	in, err := startInput(playCommand(t, "--settings", path), testConfig(), "kid")
	require.NoError(t, err)
	assert.Equal(t, 3.0, in.Settings.InitialDifficulty)
	require.NotNil(t, in.Settings.TimeLimitSeconds)
	assert.Equal(t, 120, *in.Settings.TimeLimitSeconds)
	assert.True(t, in.Settings.AdaptiveDifficulty)

	in, err = startInput(playCommand(t, "--settings", path, "--difficulty", "6"), testConfig(), "kid")
	require.NoError(t, err)
	assert.Equal(t, 6.0, in.Settings.InitialDifficulty)

	yamlPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("initial_difficulty: 2.5\nhints_enabled: false\n"), 0o600))
	in, err = startInput(playCommand(t, "--settings", yamlPath), testConfig(), "kid")
	require.NoError(t, err)
	assert.Equal(t, 2.5, in.Settings.InitialDifficulty)
	assert.False(t, in.Settings.HintsEnabled)
}

func TestStartInput_Errors(t *testing.T) {
	_, err := startInput(playCommand(t, "--type", "marathon"), testConfig(), "kid")
	assert.ErrorIs(t, err, session.ErrInvalidType)

	_, err = startInput(playCommand(t, "--ops", "modulo"), testConfig(), "kid")
	assert.ErrorIs(t, err, problemgen.ErrInvalidOperation)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"initial_difficulty": 42}`), 0o600))
	_, err = startInput(playCommand(t, "--settings", bad), testConfig(), "kid")
	assert.ErrorIs(t, err, session.ErrInvalidSettings)

	_, err = startInput(playCommand(t, "--settings", filepath.Join(t.TempDir(), "missing.json")), testConfig(), "kid")
	assert.ErrorContains(t, err, "read settings")
}

func newTestDrill(t *testing.T, input string) (*drill, *practice.Service, *bytes.Buffer) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "cmd.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := practice.NewService(st, problemgen.NewFromSeed(11, problemgen.DefaultConfig()))
	out := &bytes.Buffer{}
	return &drill{
		service: svc,
		in:      bufio.NewScanner(strings.NewReader(input)),
		out:     out,
		now:     time.Now,
	}, svc, out
}

func additionDrill(limit int) practice.StartInput {
	settings := session.DefaultSettings()
	settings.SessionLimit = &limit
	return practice.StartInput{
		UserID:     "kid",
		Type:       session.QuestionBased,
		Operations: []problemgen.Operation{problemgen.Addition},
		Settings:   settings,
	}
}

func TestDrill_RunsToCompletion(t *testing.T) {
	// Addition answers are at least 2, so 0 is always wrong.
	d, svc, out := newTestDrill(t, "\nabc\nh\n0\n0\n")
	require.NoError(t, d.run(context.Background(), additionDrill(2)))

	text := out.String()
	assert.Contains(t, text, "Let's practice!")
	assert.Contains(t, text, "Question 1")
	assert.Contains(t, text, "Question 2")
	assert.NotContains(t, text, "Question 3")
	assert.Contains(t, text, "Please enter a number.")
	assert.Contains(t, text, "hint: ")
	assert.Equal(t, 2, strings.Count(text, "Not quite."))
	assert.Contains(t, text, "Session complete!")

	history, err := svc.History(context.Background(), "kid", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 2, history[0].TotalQuestions)
	assert.Equal(t, 0, history[0].CorrectAnswers)
}

func TestDrill_QuitEndsSession(t *testing.T) {
	d, svc, out := newTestDrill(t, "0\nq\n")
	require.NoError(t, d.run(context.Background(), additionDrill(10)))

	assert.Contains(t, out.String(), "Session complete!")

	report, err := svc.Stats(context.Background(), "kid")
	require.NoError(t, err)
	assert.Equal(t, 1, report.State.TotalSessions)
	assert.Equal(t, 1, report.State.TotalQuestions)
}

func TestDrill_EOFEndsSession(t *testing.T) {
	d, svc, out := newTestDrill(t, "")
	require.NoError(t, d.run(context.Background(), additionDrill(10)))

	assert.Contains(t, out.String(), "Session complete!")
	history, err := svc.History(context.Background(), "kid", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 0, history[0].TotalQuestions)
}

func TestDrill_HintsDisabled(t *testing.T) {
	start := additionDrill(1)
	start.Settings.HintsEnabled = false

	d, _, out := newTestDrill(t, "h\n0\n")
	require.NoError(t, d.run(context.Background(), start))
	assert.Contains(t, out.String(), "Hints are off for this session.")
	assert.NotContains(t, out.String(), "hint: ")
}

func TestDrill_InvalidStart(t *testing.T) {
	start := additionDrill(1)
	start.Operations = nil

	d, _, _ := newTestDrill(t, "")
	assert.ErrorIs(t, d.run(context.Background(), start), session.ErrNoOperations)
}

func TestConfirmed(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{" YES \n", true},
		{"y\n", false},
		{"no\n", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := confirmed(bufio.NewScanner(strings.NewReader(tt.input))); got != tt.want {
			t.Errorf("confirmed(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
