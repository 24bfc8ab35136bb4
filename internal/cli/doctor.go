package cli

import (
	"context"
	"fmt"

	"dropboard/internal/store"

	"github.com/spf13/cobra"
)

type doctorResult store.DoctorReport

func (r doctorResult) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(r.Issues))
	for _, it := range r.Issues {
		slot := ""
		if it.Slot != nil {
			slot = fmt.Sprint(*it.Slot)
		}
		rows = append(rows, []string{string(it.Level), it.Code, slot, it.Message})
	}
	return []string{"LEVEL", "CODE", "SLOT", "MESSAGE"}, rows
}

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the board file for damage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			report, err := s.Doctor(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := writeOut(cmd, app, doctorResult(report)); err != nil {
				return err
			}
			if fail && report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}
