package core

// Entry is a service present in only one snapshot.
type Entry struct {
	Key    string
	Status string
	Record Record
}

// Change is a service present in both snapshots with differing status.
type Change struct {
	Key            string
	CurrentStatus  string
	PreviousStatus string
	Current        Record
	Previous       Record
}

// DiffResult holds the three disjoint result sets of a comparison.
type DiffResult struct {
	Added   []Entry  // keys only in current
	Removed []Entry  // keys only in previous
	Changed []Change // keys in both with a different status
}

// Empty reports whether the snapshots had no differences.
func (d DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff compares two keyed snapshots.
//
// Added and Changed follow the key order of current; Removed follows the key
// order of previous. Keys whose status is identical in both are not reported.
// Statuses are compared exactly, so cleaning must have trimmed them already.
func Diff(current, previous *KeyedTable) DiffResult {
	result := DiffResult{
		Added:   []Entry{},
		Removed: []Entry{},
		Changed: []Change{},
	}

	for _, key := range current.Keys() {
		cur, _ := current.Get(key)
		prev, inPrevious := previous.Get(key)
		if !inPrevious {
			result.Added = append(result.Added, Entry{Key: key, Status: cur.Status(), Record: cur})
			continue
		}
		if cur.Status() != prev.Status() {
			result.Changed = append(result.Changed, Change{
				Key:            key,
				CurrentStatus:  cur.Status(),
				PreviousStatus: prev.Status(),
				Current:        cur,
				Previous:       prev,
			})
		}
	}

	for _, key := range previous.Keys() {
		if _, inCurrent := current.Get(key); inCurrent {
			continue
		}
		prev, _ := previous.Get(key)
		result.Removed = append(result.Removed, Entry{Key: key, Status: prev.Status(), Record: prev})
	}

	return result
}
