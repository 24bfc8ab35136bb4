package cli

import (
	"fmt"
	"time"

	"dropboard/internal/store"

	"github.com/spf13/cobra"
)

type eventsResult []store.Event

func (r eventsResult) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(r))
	for _, ev := range r {
		rows = append(rows, []string{fmt.Sprint(ev.ID), ev.At.Local().Format(time.DateTime), ev.Type, ev.Summary})
	}
	return []string{"ID", "AT", "TYPE", "SUMMARY"}, rows
}

func newLogCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the board history, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			evs, err := s.store.ReadEvents(s.ctx, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if evs == nil {
				evs = []store.Event{}
			}
			return writeOut(cmd, app, eventsResult(evs))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries (0 = all)")
	return cmd
}
