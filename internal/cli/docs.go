package cli

import (
	"fmt"
	"io"
	"strings"

	"kanban-cli/internal/docs"
	"kanban-cli/internal/format"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newDocsCmd(a *App) *cobra.Command {
	var render bool
	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Example: strings.TrimSpace(`
kanban docs
kanban docs storage --render
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, a, format.Envelope{
					Data: docs.Topics(),
					Hint: "kanban docs <topic>",
				})
			}
			body, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %s", args[0]))
			}
			if render {
				out, err := glamour.Render(body, "auto")
				if err != nil {
					return writeErr(cmd, err)
				}
				body = out
			}
			_, err := io.WriteString(cmd.OutOrStdout(), body)
			return err
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "Render markdown for the terminal")
	return cmd
}
