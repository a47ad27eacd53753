package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"kanban-cli/internal/app"
	"kanban-cli/internal/config"
	"kanban-cli/internal/format"
	"kanban-cli/internal/logging"
	"kanban-cli/internal/store"
	"kanban-cli/internal/tui"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	StoreURL   string
	ConfigPath string
	LogLevel   string
	PrettyJSON bool
	Format     string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "kanban",
		Short:        "Kanban board (TUI, web and scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  kanban

  # Scriptable commands
  kanban tasks list --board "Launch Career"
  kanban tasks add --title "Write docs" --status doing

  # Serve the board in a browser
  kanban web
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.resolveConfig()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Data dir holding kanban.sqlite and kanban.log (env KANBAN_DIR)")
	cmd.PersistentFlags().StringVar(&app.StoreURL, "store", "", "Store URL: sqlite://[path] or redis://host:port/db (env KANBAN_STORE)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (default ~/.kanban/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level: debug|info|warn|error (env KANBAN_LOG_LEVEL)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("KANBAN_FORMAT", "json"), "Output format (json|edn)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newPrefsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newWebTUICmd(app))

	return cmd
}

// resolveConfig layers config file, environment and flags, in that order.
func (a *App) resolveConfig() error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg.ApplyEnv()
	if v := strings.TrimSpace(a.Dir); v != "" {
		cfg.Dir = v
	}
	if v := strings.TrimSpace(a.StoreURL); v != "" {
		cfg.Store.URL = v
	}
	if v := strings.TrimSpace(a.LogLevel); v != "" {
		cfg.Log.Level = v
	}
	a.cfg = cfg
	return nil
}

func (a *App) config() *config.Config {
	if a.cfg == nil {
		_ = a.resolveConfig()
	}
	if a.cfg == nil {
		a.cfg = &config.Config{}
	}
	return a.cfg
}

func (a *App) dataDir() (string, error) {
	return a.config().DataDir()
}

// openController opens the configured store and wraps it in a controller.
// The returned close func releases the backend.
func openController(ctx context.Context, a *App, log logrus.FieldLogger) (*app.Controller, func() error, error) {
	cfg := a.config()
	dir, err := a.dataDir()
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(cfg.Store.URL) == "" || strings.HasPrefix(cfg.Store.URL, "sqlite") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	kv, err := store.Open(ctx, cfg.Store.URL, dir, cfg.Store.Prefix)
	if err != nil {
		return nil, nil, err
	}
	st := store.New(kv, log)
	return app.NewController(st, log), st.Close, nil
}

// cliLogger logs to the command's stderr.
func cliLogger(cmd *cobra.Command, a *App) *logrus.Logger {
	return logging.New(a.config().Log.Level, cmd.ErrOrStderr())
}

// withController runs fn against an initialised controller and closes the
// store afterwards.
func withController(cmd *cobra.Command, a *App, fn func(ctx context.Context, c *app.Controller, s app.State) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, closeStore, err := openController(ctx, a, cliLogger(cmd, a))
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeStore()
	s, err := c.Init(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := fn(ctx, c, s); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func runTUI(cmd *cobra.Command, a *App) error {
	dir, err := a.dataDir()
	if err != nil {
		return err
	}
	log, closeLog, err := logging.OpenFile(dir, a.config().Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, closeStore, err := openController(ctx, a, log)
	if err != nil {
		return err
	}
	defer closeStore()
	return tui.Run(ctx, c, dir)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

