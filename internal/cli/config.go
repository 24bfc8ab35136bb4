package cli

import (
	"path/filepath"
	"strconv"
	"strings"

	"dropboard/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change global preferences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the global config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, cfg)
		},
	})
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one preference (currentWorkspace, tui.profile, tui.doubleClickMs, tui.maxDepth)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := setConfigValue(cfg, args[0], strings.TrimSpace(args[1])); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, cfg)
		},
	}
}

func setConfigValue(cfg *store.GlobalConfig, key, value string) error {
	tui := func() *store.TUIConfig {
		if cfg.TUI == nil {
			cfg.TUI = &store.TUIConfig{}
		}
		return cfg.TUI
	}
	atoi := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return 0, errUsage("%s: want a non-negative integer, got %q", key, value)
		}
		return n, nil
	}

	switch key {
	case "currentWorkspace":
		if value != "" {
			abs, err := filepath.Abs(value)
			if err != nil {
				return err
			}
			value = abs
		}
		cfg.CurrentWorkspace = value
	case "tui.profile":
		switch value {
		case "", "default", "contrast":
		default:
			return errUsage("tui.profile: want default or contrast, got %q", value)
		}
		tui().Profile = value
	case "tui.doubleClickMs":
		n, err := atoi()
		if err != nil {
			return err
		}
		tui().DoubleClickMs = n
	case "tui.maxDepth":
		n, err := atoi()
		if err != nil {
			return err
		}
		tui().MaxDepth = n
	default:
		return errNotFound("config key", key)
	}
	return nil
}
