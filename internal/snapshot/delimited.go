package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/JonMunkholm/servicediff/internal/core"
)

func decodeCSV(r io.Reader, _ Options) (core.Table, error) {
	return decodeDelimited(r, ',')
}

func decodeTSV(r io.Reader, _ Options) (core.Table, error) {
	return decodeDelimited(r, '\t')
}

// decodeDelimited reads a header row followed by data rows.
//
// Empty cells become null cells, matching how spreadsheet tools treat them;
// whitespace-only cells stay text so the cleaner can trim and judge them.
// Fully empty lines are skipped by encoding/csv.
func decodeDelimited(r io.Reader, comma rune) (core.Table, error) {
	cr := csv.NewReader(newSanitizingReader(r))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return core.NewTable(nil, nil), nil
	}
	if err != nil {
		return core.Table{}, fmt.Errorf("parse csv header: %w", err)
	}

	var rows [][]core.Cell
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return core.Table{}, fmt.Errorf("parse csv: %w", err)
		}
		rows = append(rows, textCells(record))
	}

	return core.NewTable(cleanHeaders(header), rows), nil
}

// textCells converts raw strings to text cells, mapping "" to null.
func textCells(values []string) []core.Cell {
	cells := make([]core.Cell, len(values))
	for i, v := range values {
		if v == "" {
			cells[i] = core.Null()
			continue
		}
		cells[i] = core.Text(v)
	}
	return cells
}
