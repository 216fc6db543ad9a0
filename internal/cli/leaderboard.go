package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	boardui "github.com/adibhanna/focusup/internal/ui/leaderboard"
)

func newLeaderboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"board"},
		Short:   "Print the weekly leaderboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, progress, err := a.currentUser()
			if err != nil {
				return err
			}
			board := a.board.Board(user, progress)
			fmt.Fprintln(cmd.OutOrStdout(), "Weekly leaderboard (last 7 days)")
			fmt.Fprintln(cmd.OutOrStdout(), boardui.Render(board))
			return nil
		},
	}
}
