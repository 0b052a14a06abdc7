package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func StreaksCmd() *cobra.Command {
	streaksCmd := &cobra.Command{
		Use:   "streaks",
		Short: "Inspect and rebuild cached streaks",
	}

	var email string
	recalcCmd := &cobra.Command{
		Use:   "recalc",
		Short: "Recalculate every streak of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := userByEmail(a, email)
			if err != nil {
				return err
			}

			results, err := a.StreakService.RecalculateAll(cmd.Context(), user.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range results {
				fmt.Fprintf(out, "%s\tcurrent=%d\tlongest=%d\n", s.DomainID, s.CurrentStreak, s.LongestStreak)
			}
			return nil
		},
	}
	recalcCmd.Flags().StringVar(&email, "email", "", "user email")
	_ = recalcCmd.MarkFlagRequired("email")

	streaksCmd.AddCommand(recalcCmd)
	return streaksCmd
}
