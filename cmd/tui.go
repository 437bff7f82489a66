package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytbak/internal/shared"
	"github.com/desertthunder/ytbak/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive playlist picker. Logs are redirected to a
// file so they don't tear the alternate screen.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: backup engine not initialized", shared.ErrServiceUnavailable)
	}

	fileLogger, err := shared.NewFileLogger("./tmp/ytbak-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.engine, r.config.Backup.OutputRoot)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run interactive session: %w", err)
	}

	return nil
}
