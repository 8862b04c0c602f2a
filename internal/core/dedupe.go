package core

// KeyedTable is a deduplicated, key-indexed view of a snapshot.
// Iteration follows insertion order, which is the order keys first appeared.
// A nil *KeyedTable behaves as an empty table.
type KeyedTable struct {
	keys    []string
	records map[string]Record
}

// NewKeyedTable returns an empty KeyedTable.
func NewKeyedTable() *KeyedTable {
	return &KeyedTable{records: make(map[string]Record)}
}

// Len returns the number of keys.
func (k *KeyedTable) Len() int {
	if k == nil {
		return 0
	}
	return len(k.keys)
}

// Keys returns the keys in insertion order.
func (k *KeyedTable) Keys() []string {
	if k == nil {
		return nil
	}
	out := make([]string, len(k.keys))
	copy(out, k.keys)
	return out
}

// Get returns the record stored under key.
func (k *KeyedTable) Get(key string) (Record, bool) {
	if k == nil {
		return Record{}, false
	}
	rec, ok := k.records[key]
	return rec, ok
}

// add stores rec under key unless the key is already present.
// Returns false when the key was already taken.
func (k *KeyedTable) add(key string, rec Record) bool {
	if _, exists := k.records[key]; exists {
		return false
	}
	k.keys = append(k.keys, key)
	k.records[key] = rec
	return true
}

// Deduplicate keeps the first row (in input order) for each key and
// discards later rows that share it.
func Deduplicate(rows []Keyed) *KeyedTable {
	out := &KeyedTable{
		keys:    make([]string, 0, len(rows)),
		records: make(map[string]Record, len(rows)),
	}
	for _, r := range rows {
		out.add(r.Key, r.Record)
	}
	return out
}
