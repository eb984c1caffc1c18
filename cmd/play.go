package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/practice"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/theme"
	"github.com/abhisek/mathdrill/internal/ui/views"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	Long: `Start an interactive drill on the terminal.

Type a number to answer, "h" for a hint and "q" to end the session early.
Closing input (Ctrl-D) also ends the session.`,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
	addPlayFlags(rootCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("type", "", "Session type: timed, question_based or endless (overrides MATHDRILL_SESSION_TYPE)")
	f.StringSlice("ops", nil, "Operations to practice: "+strings.Join(problemgen.OperationNames(), ", "))
	f.Float64("difficulty", 0, "Initial difficulty, 1-10 (overrides MATHDRILL_DIFFICULTY)")
	f.Int("limit", 0, "Questions (question_based) or seconds (timed) per session")
	f.Int("time-limit", 0, "Seconds per timed session when --limit is not set")
	f.String("settings", "", "JSON or YAML session settings file (overrides MATHDRILL_SETTINGS)")
	f.Bool("no-adaptive", false, "Keep the initial difficulty for the whole session")
	f.Bool("no-hints", false, "Disable hints")
}

func runPlay(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	in, err := startInput(cmd, e.cfg, e.userID)
	if err != nil {
		return err
	}

	d := &drill{
		service: e.service,
		in:      bufio.NewScanner(cmd.InOrStdin()),
		out:     cmd.OutOrStdout(),
		now:     time.Now,
	}
	return d.run(cmd.Context(), in)
}

// startInput builds the session request from config, an optional settings
// file and flags, in increasing precedence.
func startInput(cmd *cobra.Command, cfg config.Config, userID string) (practice.StartInput, error) {
	f := cmd.Flags()

	typeName := cfg.SessionType
	if v, _ := f.GetString("type"); v != "" {
		typeName = v
	}
	typ, err := session.ParseType(typeName)
	if err != nil {
		return practice.StartInput{}, fmt.Errorf("%w: %q", err, typeName)
	}

	opNames := cfg.Operations
	if v, _ := f.GetStringSlice("ops"); len(v) > 0 {
		opNames = v
	}
	ops := make([]problemgen.Operation, 0, len(opNames))
	for _, name := range opNames {
		op, err := problemgen.ParseOperation(name)
		if err != nil {
			return practice.StartInput{}, err
		}
		ops = append(ops, op)
	}

	settings := session.DefaultSettings()
	settings.InitialDifficulty = cfg.Difficulty
	path := cfg.SettingsFile
	if v, _ := f.GetString("settings"); v != "" {
		path = v
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return practice.StartInput{}, fmt.Errorf("read settings: %w", err)
		}
		parse := session.ParseSettings
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parse = session.ParseSettingsYAML
		}
		if settings, err = parse(raw); err != nil {
			return practice.StartInput{}, err
		}
	}

	if f.Changed("difficulty") {
		settings.InitialDifficulty, _ = f.GetFloat64("difficulty")
	}
	if f.Changed("limit") {
		limit, _ := f.GetInt("limit")
		settings.SessionLimit = &limit
	}
	if f.Changed("time-limit") {
		secs, _ := f.GetInt("time-limit")
		settings.TimeLimitSeconds = &secs
	}
	if v, _ := f.GetBool("no-adaptive"); v {
		settings.AdaptiveDifficulty = false
	}
	if v, _ := f.GetBool("no-hints"); v {
		settings.HintsEnabled = false
	}

	return practice.StartInput{
		UserID:     userID,
		Type:       typ,
		Operations: ops,
		Settings:   settings,
	}, nil
}

// drill runs one session as a prompt/answer loop over line input.
type drill struct {
	service *practice.Service
	in      *bufio.Scanner
	out     io.Writer
	now     func() time.Time
}

func (d *drill) run(ctx context.Context, start practice.StartInput) error {
	sess, q, err := d.service.Start(ctx, start)
	if err != nil {
		return err
	}

	fmt.Fprintln(d.out, theme.Title.Render("Let's practice!"))
	fmt.Fprintln(d.out, theme.Label.Render(fmt.Sprintf("%s session · %s",
		sess.Type, joinOps(sess.Operations))))
	fmt.Fprintln(d.out, theme.Hint.Render(`Type "h" for a hint, "q" to finish.`))

	for n := 1; ; n++ {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, views.Question(n, q))
		shown := d.now()
		hintUsed := false

		for {
			fmt.Fprint(d.out, "> ")
			if !d.in.Scan() {
				fmt.Fprintln(d.out)
				return d.end(ctx, sess.ID)
			}

			line := strings.ToLower(strings.TrimSpace(d.in.Text()))
			switch line {
			case "":
				continue
			case "q", "quit", "exit":
				return d.end(ctx, sess.ID)
			case "h", "hint", "?":
				if !sess.Settings.HintsEnabled {
					fmt.Fprintln(d.out, theme.Hint.Render("Hints are off for this session."))
					continue
				}
				fmt.Fprintln(d.out, views.Hints(q))
				hintUsed = true
				continue
			}

			answer, err := problemgen.ParseAnswer(line)
			if err != nil {
				fmt.Fprintln(d.out, theme.Incorrect.Render("Please enter a number."))
				continue
			}

			res, err := d.service.Answer(ctx, practice.AnswerInput{
				SessionID:      sess.ID,
				UserAnswer:     answer,
				ResponseTimeMs: d.now().Sub(shown).Milliseconds(),
				HintUsed:       hintUsed,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(d.out, views.Feedback(res.Answered))

			if res.Completion != nil {
				d.printCompletion(res.Completion)
				return nil
			}
			q = res.Next
			break
		}
	}
}

func (d *drill) end(ctx context.Context, sessionID string) error {
	c, err := d.service.End(ctx, sessionID)
	if errors.Is(err, session.ErrAlreadyCompleted) {
		return nil
	}
	if err != nil {
		return err
	}
	d.printCompletion(c)
	return nil
}

func (d *drill) printCompletion(c *practice.Completion) {
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, views.Summary(c.Summary))
	fmt.Fprintln(d.out, views.Award(c.Award))
	if c.State.CurrentStreak > 0 {
		fmt.Fprintln(d.out, theme.Label.Render(fmt.Sprintf("Daily streak: %d", c.State.CurrentStreak)))
	}
}

func joinOps(ops []problemgen.Operation) string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return strings.Join(names, ", ")
}
