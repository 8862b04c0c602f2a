package core

import "regexp"

// generatedSuffix matches the generated identifier appended to service names,
// e.g. the "_36fdd424" in "billing_36fdd424".
var generatedSuffix = regexp.MustCompile(`_[a-zA-Z0-9]+$`)

// Keyed pairs a record with its normalized key.
type Keyed struct {
	Key    string
	Record Record
}

// NormalizeKey strips one trailing "_<alphanumeric>" suffix from name.
// Names without such a suffix are returned unchanged.
//
//	NormalizeKey("svc")          // "svc"
//	NormalizeKey("svc_36fdd424") // "svc"
//	NormalizeKey("svc_a1_b2")    // "svc_a1"
func NormalizeKey(name string) string {
	loc := generatedSuffix.FindStringIndex(name)
	if loc == nil {
		return name
	}
	return name[:loc[0]]
}

// Normalize computes the key of every row of a cleaned table, in row order.
func Normalize(t Table) []Keyed {
	out := make([]Keyed, 0, t.Len())
	for _, row := range t.rows {
		out = append(out, Keyed{Key: NormalizeKey(row.Name()), Record: row})
	}
	return out
}
