package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adibhanna/focusup/internal/migrate"
)

func newMigrateCmd(a *app) *cobra.Command {
	var seedDemo bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring stored data to the current storage version",
		Long: `Bring stored data to the current storage version.

Data written by an older version is cleared. With --seed-demo the demo
profile is written as well, even when the store is already current.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipMigration: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := seedDemo || a.cfg.SeedDemo
			report, err := migrate.Run(a.kv, a.clock, migrate.Options{SeedDemo: seed})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)

			if seed && !report.Seeded {
				if err := migrate.SeedDemo(a.kv, a.clock.Now()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "demo profile written")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&seedDemo, "seed-demo", false, "write the demo profile")
	return cmd
}
