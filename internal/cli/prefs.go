package cli

import (
	"context"

	"kanban-cli/internal/app"
	"kanban-cli/internal/format"

	"github.com/spf13/cobra"
)

func newPrefsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change UI preferences (sidebar, theme)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the persisted preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, a, func(ctx context.Context, c *app.Controller, s app.State) error {
				return writeOut(cmd, a, format.Envelope{Data: s.Preferences()})
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "sidebar show|hide",
		Short:     "Show or hide the board sidebar",
		ValidArgs: []string{"show", "hide"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, a, func(ctx context.Context, c *app.Controller, s app.State) error {
				next, err := c.ToggleSidebar(ctx, args[0] == "show")
				if err != nil {
					return err
				}
				return writeOut(cmd, a, format.Envelope{Data: next.Preferences()})
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "theme light|dark",
		Short:     "Switch between the light and dark theme",
		ValidArgs: []string{"light", "dark"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, a, func(ctx context.Context, c *app.Controller, s app.State) error {
				next, err := c.ToggleTheme(ctx, args[0] == "light")
				if err != nil {
					return err
				}
				return writeOut(cmd, a, format.Envelope{Data: next.Preferences()})
			})
		},
	})
	return cmd
}
