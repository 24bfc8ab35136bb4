package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			v := s.board.Snapshot()
			if app.Format == "text" {
				return writeOut(cmd, app, boardTable(v))
			}
			return writeOut(cmd, app, v)
		},
	}
}
