package listing

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Column is one entry of an export manifest.
// Value receives a row returned by Resource.MapRow and renders the cell.
type Column struct {
	Header string
	Value  func(row interface{}) string
}

func headers(cols []Column) []string {
	hdrs := make([]string, 0, len(cols))
	for _, col := range cols {
		hdrs = append(hdrs, col.Header)
	}
	return hdrs
}

// WriteCSV writes the header row then one record per row, in the declared column order.
// Only the manifest's accessors are used to read rows.
func WriteCSV(w io.Writer, cols []Column, rows []interface{}) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers(cols)); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	record := make([]string, len(cols))
	for _, row := range rows {
		for i, col := range cols {
			record[i] = col.Value(row)
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "writing csv record")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

func ToCSV(cols []Column, rows []interface{}) (string, error) {
	var sb strings.Builder
	if err := WriteCSV(&sb, cols, rows); err != nil {
		return "", err
	}
	return sb.String(), nil
}
