package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all sessions and progress of the learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Fprintf(out, "Delete all practice data for %q? Type \"yes\" to confirm: ", e.userID)
			if !confirmed(bufio.NewScanner(cmd.InOrStdin())) {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		if err := e.service.Reset(cmd.Context(), e.userID); err != nil {
			return err
		}
		fmt.Fprintln(out, theme.Correct.Render("Progress reset."))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func confirmed(in *bufio.Scanner) bool {
	if !in.Scan() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(in.Text()), "yes")
}
