package cli

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"kanban-cli/internal/format"
	"kanban-cli/internal/webtui"

	"github.com/spf13/cobra"
)

func newWebTUICmd(a *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "webtui",
		Short: "Run the terminal UI in your browser (PTY + WebSocket)",
		Long: strings.TrimSpace(`
Run the Bubble Tea TUI over the web via a server-side PTY and a browser
terminal emulator.

Each browser tab starts its own TUI subprocess against the same store.
There is no authentication; bind to localhost.
`),
		Example: strings.TrimSpace(`
kanban webtui --addr 127.0.0.1:3334
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.dataDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = a.config().WebTUI.Addr
			}

			srv, err := webtui.NewServer(webtui.ServerConfig{
				Addr:   listenAddr,
				Dir:    dir,
				Store:  strings.TrimSpace(a.StoreURL),
				Config: strings.TrimSpace(a.ConfigPath),
				Log:    cliLogger(cmd, a),
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			_ = writeOut(cmd, a, format.Envelope{
				Data: map[string]any{
					"addr":      srv.Addr(),
					"dir":       dir,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				Hint: "open http://" + srv.Addr(),
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "kanban webtui running at http://%s\n", srv.Addr())
			hs := &http.Server{Addr: srv.Addr(), Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
			return hs.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (host:port or :port; default from config, 127.0.0.1:3334)")
	return cmd
}
