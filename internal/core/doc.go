// Package core provides the normalization and diff logic for service inventory snapshots.
//
// The package holds the only part of the tool that makes decisions: it takes
// two already-loaded tables and reports which services appeared, disappeared
// or changed status. Loading files and rendering reports live elsewhere.
//
// # Pipeline
//
// Each snapshot goes through three pure stages, each returning a new value:
//
//  1. [Clean] drops rows without a Name or Status and trims text cells
//  2. [Normalize] derives a key per row with [NormalizeKey], which strips one
//     generated "_<alphanumeric>" suffix ("auth_9f3a1" becomes "auth")
//  3. [Deduplicate] keeps the first row for each key, in row order
//
// [Diff] then compares the two resulting [KeyedTable] values. [Service.Compare]
// runs all of it and validates the required columns first.
//
// # Ordering
//
// Results follow the row order of the input files: Added and Changed in the
// order keys first appear in the current snapshot, Removed in the order they
// first appear in the previous one. Reports are therefore reproducible for the
// same input files, and reordering a file reorders its report.
//
// # Error Handling
//
// A snapshot missing the Name or Status column fails with a
// [*MissingColumnError]. Rows with blank values are not errors. [MapError]
// converts errors to coded user messages for the HTTP layer.
package core
