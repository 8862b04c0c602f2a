package core

import "strings"

// Required column names. Lookups are case-insensitive on the cleaned header.
const (
	ColumnName   = "Name"
	ColumnStatus = "Status"
)

// CellKind distinguishes text cells, which the cleaner trims, from other values.
type CellKind int

const (
	KindText CellKind = iota
	KindOther
)

// Cell is a single value in a record.
// Valid is false for null or missing values (empty CSV cell, short row, SQL NULL).
type Cell struct {
	Value string
	Valid bool
	Kind  CellKind
}

// Text returns a valid text cell.
func Text(s string) Cell {
	return Cell{Value: s, Valid: true, Kind: KindText}
}

// Other returns a valid non-text cell holding the formatted value.
func Other(s string) Cell {
	return Cell{Value: s, Valid: true, Kind: KindOther}
}

// Null returns an invalid (missing) cell.
func Null() Cell {
	return Cell{}
}

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are lowercased for case-insensitive matching; the first of any
// duplicated headers wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := idx[key]; seen {
			continue
		}
		idx[key] = i
	}
	return idx
}

// Lookup returns the position of the named column.
func (h HeaderIndex) Lookup(name string) (int, bool) {
	pos, ok := h[strings.ToLower(strings.TrimSpace(name))]
	return pos, ok
}

// schema is shared by every record of a table and is never modified after creation.
type schema struct {
	columns []string
	index   HeaderIndex
}

// Record is one row of a snapshot. Cells are aligned with the table's columns.
type Record struct {
	schema *schema
	cells  []Cell
}

// Get returns the cell for the named column.
// The second result is false when the table has no such column.
func (r Record) Get(column string) (Cell, bool) {
	if r.schema == nil {
		return Cell{}, false
	}
	pos, ok := r.schema.index.Lookup(column)
	if !ok || pos >= len(r.cells) {
		return Cell{}, false
	}
	return r.cells[pos], true
}

// Value returns the string value of the named column, or "" when missing.
func (r Record) Value(column string) string {
	c, _ := r.Get(column)
	return c.Value
}

// Name returns the record's Name value.
func (r Record) Name() string { return r.Value(ColumnName) }

// Status returns the record's Status value.
func (r Record) Status() string { return r.Value(ColumnStatus) }

// Cells returns a copy of the record's cells in column order.
func (r Record) Cells() []Cell {
	out := make([]Cell, len(r.cells))
	copy(out, r.cells)
	return out
}

// Fields returns the valid cells keyed by column name, for serialization.
func (r Record) Fields() map[string]string {
	if r.schema == nil {
		return nil
	}
	out := make(map[string]string, len(r.cells))
	for i, c := range r.cells {
		if !c.Valid || i >= len(r.schema.columns) {
			continue
		}
		out[r.schema.columns[i]] = c.Value
	}
	return out
}

// Table is an ordered sequence of records sharing one set of columns.
type Table struct {
	schema *schema
	rows   []Record
}

// NewTable builds a table from a header row and raw rows.
// Rows shorter than the header are padded with null cells; extra cells are dropped.
// The input slices are copied.
func NewTable(columns []string, rows [][]Cell) Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	s := &schema{columns: cols, index: MakeHeaderIndex(cols)}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		cells := make([]Cell, len(cols))
		copy(cells, row)
		records = append(records, Record{schema: s, cells: cells})
	}
	return Table{schema: s, rows: records}
}

// withRows returns a table sharing t's columns with the given records.
func (t Table) withRows(rows []Record) Table {
	return Table{schema: t.schema, rows: rows}
}

// Columns returns a copy of the column names in order.
func (t Table) Columns() []string {
	if t.schema == nil {
		return nil
	}
	out := make([]string, len(t.schema.columns))
	copy(out, t.schema.columns)
	return out
}

// HasColumn reports whether the table has the named column.
func (t Table) HasColumn(name string) bool {
	if t.schema == nil {
		return false
	}
	_, ok := t.schema.index.Lookup(name)
	return ok
}

// Len returns the number of records.
func (t Table) Len() int { return len(t.rows) }

// Rows returns the records in order. The returned slice is a copy.
func (t Table) Rows() []Record {
	out := make([]Record, len(t.rows))
	copy(out, t.rows)
	return out
}
