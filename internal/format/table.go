package format

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// WriteTable writes rows as aligned columns with a bold header. The header
// is plain when color.NoColor is set.
func WriteTable(w io.Writer, header []string, rows [][]string) error {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true

	bold := color.New(color.Bold)
	if len(header) > 0 {
		tbl.AddRow(cells(bold.Sprint, header)...)
	}
	for _, r := range rows {
		tbl.AddRow(cells(fmt.Sprint, r)...)
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}

func cells(sprint func(...any) string, xs []string) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = sprint(x)
	}
	return out
}
