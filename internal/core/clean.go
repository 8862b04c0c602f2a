package core

import "strings"

// CleanStats counts what the cleaner kept and dropped.
type CleanStats struct {
	Input   int
	Kept    int
	Dropped int
}

// Clean returns a table containing only the rows whose Name and Status are
// present and non-empty after trimming. Every text cell of a surviving row is
// trimmed. Rows are dropped silently and the input table is not modified.
func Clean(t Table) Table {
	out, _ := CleanWithStats(t)
	return out
}

// CleanWithStats is Clean that also reports row counts.
func CleanWithStats(t Table) (Table, CleanStats) {
	stats := CleanStats{Input: t.Len()}
	if t.schema == nil {
		return t, stats
	}

	namePos, okName := t.schema.index.Lookup(ColumnName)
	statusPos, okStatus := t.schema.index.Lookup(ColumnStatus)
	if !okName || !okStatus {
		stats.Dropped = stats.Input
		return t.withRows(nil), stats
	}

	kept := make([]Record, 0, len(t.rows))
	for _, row := range t.rows {
		if !row.cells[namePos].Valid || !row.cells[statusPos].Valid {
			continue
		}

		cells := trimCells(row.cells)
		if cells[namePos].Value == "" || cells[statusPos].Value == "" {
			continue
		}

		kept = append(kept, Record{schema: row.schema, cells: cells})
	}

	stats.Kept = len(kept)
	stats.Dropped = stats.Input - stats.Kept
	return t.withRows(kept), stats
}

// trimCells returns a copy of cells with whitespace trimmed from text values.
func trimCells(cells []Cell) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		if c.Valid && c.Kind == KindText {
			c.Value = strings.TrimSpace(c.Value)
		}
		out[i] = c
	}
	return out
}
