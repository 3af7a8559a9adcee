package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/hpgo/internal/tui"
)

func tuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [scenario-file]",
		Short: "Browse a projection interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// engine logs would corrupt the alternate screen
			engine := a.projectionEngine()
			engine.SetLogger(nil)
			p := tea.NewProgram(tui.NewModel(args[0], engine).WithContext(cmd.Context()),
				tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}
}
