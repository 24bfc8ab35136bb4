package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"dropboard/internal/format"
	"dropboard/internal/store"
	"dropboard/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "dropboard",
		Short:        "Terminal board with mouse drag and drop",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  dropboard

  # Scriptable commands
  dropboard show --format text
  dropboard items add 0 "write release notes"
  dropboard items mv 0/item/0 1/list
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DROPBOARD_DIR", ""), "Path to board dir (default: nearest .dropboard, then config currentWorkspace)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DROPBOARD_FORMAT", "json"), "Output format (json|edn|text)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newZonesCmd(app))
	cmd.AddCommand(newLogCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(ctx context.Context, app *App) error {
	s, err := resolveStore(app)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return tui.Run(ctx, s)
}

// resolveStore picks the board directory:
//  1. --dir / DROPBOARD_DIR
//  2. the nearest .dropboard above the working directory
//  3. ~/.dropboard/config.json currentWorkspace
//  4. ./.dropboard
func resolveStore(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return store.Store{}, err
		}
		if found, ok := store.DiscoverDir(cwd); ok {
			dir = found
		} else if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
			dir = cfg.CurrentWorkspace
		} else {
			d, err := store.DefaultDir()
			if err != nil {
				return store.Store{}, err
			}
			dir = d
		}
		app.Dir = dir
	}
	return store.Store{Dir: dir}, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut writes v inside the {"data": ...} envelope. In the text format
// the envelope is skipped and v is written as a table.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	if app.Format == "text" {
		return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
	}
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
