package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/ui/views"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show level, experience, streaks and accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		report, err := e.service.Stats(cmd.Context(), e.userID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), views.Stats(report))
		return nil
	},
}
