package core

// validation.go checks that a loaded snapshot can be compared at all.
//
// Row-level problems (missing or blank Name/Status) are not errors: the
// cleaner drops those rows. A snapshot that lacks the Name or Status column
// entirely is an error, because every row would be dropped and the report
// would silently claim the snapshot was empty.

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned when a snapshot's extension has no loader.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrMissingColumn is matched by every *MissingColumnError.
	ErrMissingColumn = errors.New("missing required column")
)

// RequiredColumns are the columns every snapshot must carry.
var RequiredColumns = []string{ColumnName, ColumnStatus}

// MissingColumnError reports the required columns absent from a snapshot.
type MissingColumnError struct {
	Snapshot string   // "current" or "previous"
	Columns  []string // missing column names
}

func (e *MissingColumnError) Error() string {
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	noun := "column"
	if len(e.Columns) > 1 {
		noun = "columns"
	}
	return fmt.Sprintf("%s snapshot: missing required %s %s", e.Snapshot, noun, strings.Join(quoted, ", "))
}

// Is lets errors.Is(err, ErrMissingColumn) match.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// ValidateColumns returns a *MissingColumnError naming every required column
// the table lacks, or nil.
func ValidateColumns(snapshot string, t Table) error {
	var missing []string
	for _, col := range RequiredColumns {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnError{Snapshot: snapshot, Columns: missing}
	}
	return nil
}
