package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/adibhanna/focusup/internal/ui/dashboard"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}
}

func (a *app) runTUI() error {
	// The terminal belongs to Bubble Tea from here on.
	f, err := tea.LogToFile(filepath.Join(a.cfg.DataDir, "focusup.log"), "focusup")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	model := dashboard.New(dashboard.Deps{
		Config:   a.manager,
		DataDir:  a.cfg.DataDir,
		Users:    a.users,
		Progress: a.progress,
		Recorder: a.recorder,
		Board:    a.board,
		Clock:    a.clock,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if finalModel.(dashboard.Model).ShouldQuit() {
		fmt.Println(">>> See you next session!")
	}
	return nil
}
