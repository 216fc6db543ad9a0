package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adibhanna/focusup/internal/report"
)

func newStatsCmd(a *app) *cobra.Command {
	var exportDir string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print your statistics report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, progress, err := a.currentUser()
			if err != nil {
				return err
			}
			now := a.clock.Now()
			content := report.Build(user, progress, now)

			if exportDir == "" {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}
			path, err := report.Export(content, exportDir, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&exportDir, "export", "e", "", "write the report into this directory instead of printing it")
	return cmd
}
