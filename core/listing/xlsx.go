package listing

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders the manifest to a single-sheet workbook. Cells are the same strings as the CSV export.
func WriteXLSX(w io.Writer, sheet string, cols []Column, rows []interface{}) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cErr := f.Close(); err == nil && cErr != nil {
			err = errors.Wrap(cErr, "closing workbook")
		}
	}()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err = f.SetSheetName("Sheet1", sheet); err != nil {
			return errors.Wrap(err, "naming sheet")
		}
	}

	hdrs := headers(cols)
	hdrRow := make([]interface{}, 0, len(hdrs))
	for _, h := range hdrs {
		hdrRow = append(hdrRow, h)
	}
	if err = f.SetSheetRow(sheet, "A1", &hdrRow); err != nil {
		return errors.Wrap(err, "writing header row")
	}

	for i, row := range rows {
		cells := make([]interface{}, 0, len(cols))
		for _, col := range cols {
			cells = append(cells, col.Value(row))
		}
		cell, cErr := excelize.CoordinatesToCellName(1, i+2)
		if cErr != nil {
			return errors.Wrap(cErr, "locating row")
		}
		if err = f.SetSheetRow(sheet, cell, &cells); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}

	return errors.Wrap(f.Write(w), "writing workbook")
}
