package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adibhanna/focusup/internal/models"
	"github.com/adibhanna/focusup/internal/report"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage local profiles",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add NAME",
			Short: "Register a profile and make it current",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := a.users.Register(strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", u.Name, u.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List profiles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				current, _ := a.users.Current()
				now := a.clock.Now()
				for _, u := range a.users.List() {
					marker := " "
					if u.ID == current.ID {
						marker = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %-20s %s  joined %s\n", marker, u.Name, u.ID, report.Joined(u.JoinDate, now))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "use ID|NAME",
			Short: "Switch the current profile",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := a.findUser(strings.Join(args, " "))
				if err != nil {
					return err
				}
				if err := a.users.SetCurrent(u.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Now tracking %s\n", u.Name)
				return nil
			},
		},
	)
	return cmd
}

// findUser matches an id first, then a name.
func (a *app) findUser(ref string) (models.User, error) {
	if u, err := a.users.Get(ref); err == nil {
		return u, nil
	}
	for _, u := range a.users.List() {
		if strings.EqualFold(u.Name, ref) {
			return u, nil
		}
	}
	return a.users.Get(ref)
}
