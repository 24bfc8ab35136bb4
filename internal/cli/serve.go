package cli

import (
	"context"
	"fmt"
	"time"

	"dropboard/internal/web"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		addr string
		poll time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board in a browser (live view, terminal, docs)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			srv, err := web.NewServer(web.ServerConfig{Addr: addr, Dir: s.Dir, Poll: poll})
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "serving %s on http://%s\n", s.Dir, srv.Addr())
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("DROPBOARD_ADDR", "127.0.0.1:8765"), "Listen address")
	cmd.Flags().DurationVar(&poll, "poll", time.Second, "How often to check the board for changes")
	return cmd
}
