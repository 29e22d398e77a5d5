package materialize

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrUnsupportedJoinType is returned when a join in the lattice query is
	// not an inner join.
	ErrUnsupportedJoinType = errors.NewKind("only inner join allowed, but got %s")

	// ErrUnsupportedJoinCondition is returned when a join predicate is not a
	// conjunction of direct column-to-column equalities.
	ErrUnsupportedJoinCondition = errors.NewKind("only equi-join of columns allowed: %s")

	// ErrUnsupportedNodeShape is returned when the equi-join graph of the
	// lattice query does not collapse to a rooted tree.
	ErrUnsupportedNodeShape = errors.NewKind("lattice query must join tables in a tree: %s")

	// ErrInvalidLatticeQuery is returned when the relational tree contains a
	// node other than a projection, a join or a table scan.
	ErrInvalidLatticeQuery = errors.NewKind("invalid node type %T in lattice query")

	// ErrUnknownColumn is returned when an alias does not resolve to any
	// lattice column.
	ErrUnknownColumn = errors.NewKind("unknown lattice column %q%s")

	// ErrAmbiguousColumnAlias is returned when an alias resolves to more
	// than one lattice column.
	ErrAmbiguousColumnAlias = errors.NewKind("lattice column alias %q is not unique")

	// ErrUnknownAggregate is returned when an aggregate function name is not
	// in the recognized set.
	ErrUnknownAggregate = errors.NewKind("unknown lattice aggregate function %q%s")

	// ErrInvalidRowCountEstimate is returned when the configured row count
	// estimate is not strictly positive.
	ErrInvalidRowCountEstimate = errors.NewKind("row count estimate must be positive, got %v")

	// ErrTileNotCanonical is returned when the measures or dimensions of a
	// tile are not in strictly increasing canonical order.
	ErrTileNotCanonical = errors.NewKind("tile %s must be given in strictly increasing canonical order")
)
