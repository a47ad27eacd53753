package cli

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"kanban-cli/internal/format"
	"kanban-cli/internal/web"

	"github.com/spf13/cobra"
)

func newWebCmd(a *App) *cobra.Command {
	var addr, datastarURL string
	var open bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the board as a web UI",
		Long: strings.TrimSpace(`
Serve the board from a local HTTP server.

Pages are server-rendered HTML and work as plain forms. When the Datastar
client loads, changes are applied in place over SSE and every open tab
re-renders when another tab changes the board.
`),
		Example: strings.TrimSpace(`
kanban web
kanban web --addr :3335 --open=false
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := cliLogger(cmd, a)
			c, closeStore, err := openController(ctx, a, log)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeStore()
			if _, err := c.Init(ctx); err != nil {
				return writeErr(cmd, err)
			}

			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = a.config().Web.Addr
			}
			srv, err := web.NewServer(web.ServerConfig{
				Addr:        listenAddr,
				Controller:  c,
				Log:         log,
				DatastarURL: strings.TrimSpace(datastarURL),
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			opened := false
			openErr := ""
			if open {
				if err := openPath(url); err != nil {
					openErr = err.Error()
				} else {
					opened = true
				}
			}

			env := format.Envelope{Data: map[string]any{
				"addr":      actualAddr,
				"url":       url,
				"opened":    opened,
				"openError": openErr,
				"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
			}}
			if !opened {
				env.Hint = "open " + url
			}
			_ = writeOut(cmd, a, env)

			fmt.Fprintf(cmd.ErrOrStderr(), "kanban web running at %s\n", url)
			if openErr != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to open browser: %s\n", openErr)
			}

			hs := &http.Server{Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
			go func() {
				<-ctx.Done()
				_ = hs.Close()
			}()
			if err := hs.Serve(ln); err != nil && err != http.ErrServerClosed {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (host:port or :port; default from config, 127.0.0.1:3335)")
	cmd.Flags().BoolVar(&open, "open", true, "Open the UI in your default browser")
	cmd.Flags().StringVar(&datastarURL, "datastar-url", web.DefaultDatastarURL, "Datastar client bundle URL")
	return cmd
}
