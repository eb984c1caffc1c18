package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/ui/theme"
	"github.com/abhisek/mathdrill/internal/ui/views"
)

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "Print generated questions for an operation (no database)",
	Long: `Generate questions for one operation and difficulty without starting a
session. Pass --seed to reproduce the same questions.`,
	RunE: runQuestion,
}

func init() {
	f := questionCmd.Flags()
	f.String("op", string(problemgen.Addition), "Operation: "+fmt.Sprint(problemgen.OperationNames()))
	f.Float64("difficulty", 1, "Difficulty, 1-10")
	f.Uint64("seed", 0, "Random seed (0 picks one from the clock)")
	f.Int("count", 1, "Number of questions")
	f.Bool("answers", false, "Print the answer, explanation and hints")
}

func runQuestion(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	opName, _ := f.GetString("op")
	difficulty, _ := f.GetFloat64("difficulty")
	seed, _ := f.GetUint64("seed")
	count, _ := f.GetInt("count")
	showAnswers, _ := f.GetBool("answers")

	op, err := problemgen.ParseOperation(opName)
	if err != nil {
		return err
	}
	if difficulty < 1 || difficulty > 10 {
		return fmt.Errorf("invalid --difficulty %v: must be between 1 and 10", difficulty)
	}

	gen := problemgen.NewRandom(problemgen.DefaultConfig())
	if f.Changed("seed") && seed != 0 {
		gen = problemgen.NewFromSeed(seed, problemgen.DefaultConfig())
	}

	out := cmd.OutOrStdout()
	for i := 1; i <= count; i++ {
		q, err := gen.Generate(op, difficulty, nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, views.Question(i, q))
		if showAnswers {
			fmt.Fprintln(out, theme.Correct.Render("= "+problemgen.FormatNumber(q.Answer)), theme.Label.Render(q.Explanation))
			if h := views.Hints(q); h != "" {
				fmt.Fprintln(out, h)
			}
		}
	}
	return nil
}
