package snapshot

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/servicediff/internal/core"
)

// decodeWorkbook reads one worksheet of an .xlsx file. The first row is the
// header. Cell values are taken as displayed text, so numbers and dates keep
// the formatting of the export.
func decodeWorkbook(r io.Reader, opts Options) (core.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return core.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return core.NewTable(nil, nil), nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return core.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return core.NewTable(nil, nil), nil
	}

	data := make([][]core.Cell, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		data = append(data, textCells(row))
	}

	return core.NewTable(cleanHeaders(rows[0]), data), nil
}

// isBlankRow reports whether every cell is empty. Spreadsheets often carry
// formatted but empty rows below the data.
func isBlankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
