package core

// inventory builds a Name/Status table with text cells.
func inventory(rows ...[2]string) Table {
	cells := make([][]Cell, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []Cell{Text(r[0]), Text(r[1])})
	}
	return NewTable([]string{ColumnName, ColumnStatus}, cells)
}

// keyed runs a table through clean, normalize and dedupe.
func keyed(t Table) *KeyedTable {
	return Deduplicate(Normalize(Clean(t)))
}

func keysOf(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

func changedKeys(changes []Change) []string {
	out := make([]string, 0, len(changes))
	for _, c := range changes {
		out = append(out, c.Key)
	}
	return out
}
