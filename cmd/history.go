package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/ui/views"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past practice sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit < 0 {
			return fmt.Errorf("invalid --limit %d: must be 0 or more", limit)
		}

		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		sums, err := e.service.History(cmd.Context(), e.userID, limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), views.History(sums))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Number of sessions to show (0 for all)")
}
