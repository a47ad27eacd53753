package cli

import (
	"context"
	"io"
	"strings"

	"kanban-cli/internal/app"
	"kanban-cli/internal/board"
	"kanban-cli/internal/format"
	"kanban-cli/internal/publish"

	"github.com/spf13/cobra"
)

type boardSummary struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Tasks  int    `json:"tasks"`
}

func newBoardsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "boards",
		Aliases: []string{"board"},
		Short:   "List boards, switch the active board, show a board's columns",
	}
	cmd.AddCommand(newBoardsListCmd(a))
	cmd.AddCommand(newBoardsUseCmd(a))
	cmd.AddCommand(newBoardsShowCmd(a))
	cmd.AddCommand(newBoardsPublishCmd(a))
	return cmd
}

func summarizeBoards(s app.State) []boardSummary {
	counts := map[string]int{}
	for _, t := range s.Tasks {
		counts[t.Board]++
	}
	out := make([]boardSummary, 0, len(s.Boards))
	for _, b := range s.Boards {
		out = append(out, boardSummary{Name: b, Active: b == s.ActiveBoard, Tasks: counts[b]})
	}
	return out
}

func newBoardsListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards in first-appearance order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, a, func(ctx context.Context, c *app.Controller, s app.State) error {
				return writeOut(cmd, a, format.Envelope{
					Data: summarizeBoards(s),
					Meta: map[string]any{"activeBoard": s.ActiveBoard},
				})
			})
		},
	}
}

func newBoardsUseCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Make a board the active board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, a, func(ctx context.Context, c *app.Controller, s app.State) error {
				next, err := c.SwitchBoard(ctx, args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, a, format.Envelope{Data: next.Preferences()})
			})
		},
	}
}

// viewFor projects the named board, or the active one when args is empty.
func viewFor(c *app.Controller, s app.State, args []string) (board.View, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == s.ActiveBoard {
		return s.View, nil
	}
	name := strings.TrimSpace(args[0])
	if !s.HasBoard(name) {
		return board.View{}, app.UnknownBoardError{Name: name}
	}
	return board.Project(s.Tasks, name, c.Columns, c.Log), nil
}

func newBoardsShowCmd(a *App) *cobra.Command {
	var asMarkdown bool
	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show the column projection of a board (default: active)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, a, func(ctx context.Context, c *app.Controller, s app.State) error {
				v, err := viewFor(c, s, args)
				if err != nil {
					return err
				}
				if asMarkdown {
					_, err := io.WriteString(cmd.OutOrStdout(), publish.RenderBoardMarkdown(v, false))
					return err
				}
				return writeOut(cmd, a, format.Envelope{Data: v})
			})
		},
	}
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Print the board as markdown instead of an envelope")
	return cmd
}

func newBoardsPublishCmd(a *App) *cobra.Command {
	var to string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "publish [name]",
		Short: "Export a board as markdown files (index.md + one page per task)",
		Example: strings.TrimSpace(`
kanban boards publish --to ./site
kanban boards publish Roadmap --to ./site --overwrite
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, a, func(ctx context.Context, c *app.Controller, s app.State) error {
				v, err := viewFor(c, s, args)
				if err != nil {
					return err
				}
				res, err := publish.WriteBoard(v, to, publish.WriteOptions{Overwrite: overwrite})
				if err != nil {
					return err
				}
				return writeOut(cmd, a, format.Envelope{Data: res, Meta: map[string]any{"board": v.Board}})
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
