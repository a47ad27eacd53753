package cli

import (
	"errors"
	"os"
	"strings"

	"kanban-cli/internal/config"
	"kanban-cli/internal/format"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective config (file, then env, then flags)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config()
			dir, err := cfg.DataDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, format.Envelope{Data: map[string]any{
				"path":        configPath(a),
				"dir":         dir,
				"storeURL":    redactURL(cfg.Store.URL),
				"storePrefix": cfg.Store.Prefix,
				"logLevel":    cfg.Log.Level,
				"webAddr":     cfg.Web.Addr,
				"webtuiAddr":  cfg.WebTUI.Addr,
			}})
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective config to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(a)
			if _, err := os.Stat(path); err == nil && !force {
				return writeErr(cmd, errors.New("config exists: "+path+" (use --force to overwrite)"))
			}
			if err := config.Save(path, a.config()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, a, format.Envelope{Data: map[string]any{"path": path, "written": true}})
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.AddCommand(initCmd)
	return cmd
}

func configPath(a *App) string {
	if p := strings.TrimSpace(a.ConfigPath); p != "" {
		return p
	}
	p, _ := config.Path()
	return p
}

// redactURL drops userinfo (redis://:secret@host) from a store URL.
func redactURL(u string) string {
	scheme, rest, ok := strings.Cut(u, "://")
	if !ok {
		return u
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***@" + rest[at+1:]
	}
	return scheme + "://" + rest
}
