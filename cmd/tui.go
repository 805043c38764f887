package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/desafio200/internal/persist"
	"github.com/sadopc/desafio200/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive board (default)",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	app := tui.NewApp(e.tracker, tui.Options{
		Backend:    e.cfg.Storage.Backend,
		Location:   e.location,
		StorageKey: persist.StorageKey,
		ExportDir:  e.cfg.ExportDir(),
		Now:        now,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
