package sql

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrTableNotFound is returned when the table is not available in the
	// catalog.
	ErrTableNotFound = errors.NewKind("table not found: %s")

	// ErrColumnNotFound is returned when the column does not exist in any
	// table in scope.
	ErrColumnNotFound = errors.NewKind("column %q could not be found in any table in scope")

	// ErrAmbiguousColumnName is returned when there is a column reference
	// that is present in more than one table.
	ErrAmbiguousColumnName = errors.NewKind("ambiguous column name %q, it's present in all these tables: %v")
)
