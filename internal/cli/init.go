package cli

import (
	"strings"

	"kanban-cli/internal/app"
	"kanban-cli/internal/format"
	"kanban-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize storage, seeding the sample boards when empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, closeStore, err := openController(ctx, a, cliLogger(cmd, a))
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeStore()

			seeded, err := c.Store.Seed(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := c.Refresh(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, format.Envelope{Data: initResult(a, s, seeded)})
		},
	}
	return cmd
}

func initResult(a *App, s app.State, seeded bool) map[string]any {
	dir, _ := a.dataDir()
	out := map[string]any{
		"dir":         dir,
		"seeded":      seeded,
		"tasks":       len(s.Tasks),
		"boards":      s.Boards,
		"activeBoard": s.ActiveBoard,
	}
	if u := strings.TrimSpace(a.config().Store.URL); u == "" || u == "sqlite://" || u == "sqlite" {
		out["backend"] = "sqlite"
		out["sqlitePath"] = store.SQLitePath(dir)
	} else {
		// Only the scheme: redis URLs may carry credentials.
		out["backend"], _, _ = strings.Cut(u, "://")
	}
	return out
}

