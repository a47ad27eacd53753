// Package tui is the interactive terminal board.
package tui

import (
	"context"

	"kanban-cli/internal/app"

	tea "github.com/charmbracelet/bubbletea"
)

// Run seeds the store if needed and runs the board until the user quits.
// dir holds the cursor state file.
func Run(ctx context.Context, ctrl *app.Controller, dir string) error {
	applyColorProfilePreference()

	s, err := ctrl.Init(ctx)
	if err != nil {
		return err
	}
	m := newAppModel(ctx, ctrl, dir, s)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err == tea.ErrProgramKilled && ctx.Err() != nil {
		return nil
	}
	return err
}
