package cli

import (
	"context"

	"dropboard/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var use bool

	cmd := &cobra.Command{
		Use:   "init [titles...]",
		Short: "Create a board (default lists: Todo, Doing, Done)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			b, err := s.Init(ctx, args)
			if err != nil {
				return writeErr(cmd, err)
			}
			if use {
				cfg, err := store.LoadConfig()
				if err != nil {
					return writeErr(cmd, err)
				}
				cfg.CurrentWorkspace = s.Dir
				if err := store.SaveConfig(cfg); err != nil {
					return writeErr(cmd, err)
				}
			}
			if app.Format == "text" {
				return writeOut(cmd, app, boardTable(b.Snapshot()))
			}
			return writeOut(cmd, app, map[string]any{
				"dir":   s.Dir,
				"board": b.Snapshot(),
			})
		},
	}

	cmd.Flags().BoolVar(&use, "use", false, "Remember this board as the current workspace")
	return cmd
}
