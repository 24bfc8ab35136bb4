// Package format writes CLI results as JSON, EDN or a plain text table.
package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Tabular values can be written in the text format.
type Tabular interface {
	Table() (header []string, rows [][]string)
}

// Write writes v in the requested format: json (default), edn or text.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "text":
		t, ok := v.(Tabular)
		if !ok {
			return fmt.Errorf("format text is not available for %T", v)
		}
		header, rows := t.Table()
		return WriteTable(w, header, rows)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON, one document per line unless pretty.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
