package materialize

import (
	"fmt"

	"gopkg.in/src-d/go-lattice.v0/sql"
)

// FieldPair is one column equality of the equi-join linking a node to its
// parent. Both fields are local indexes into the respective table schemas.
type FieldPair struct {
	// Parent is the field index within the parent table.
	Parent int
	// Child is the field index within the child table.
	Child int
}

// Node is one table of the lattice tree.
//
// Nodes form a tree; every node except the root (the fact table) has
// precisely one parent and an equi-join condition on one or more pairs of
// columns linking to it.
type Node struct {
	// Table is the scanned table.
	Table sql.Table
	// Alias is the name the lattice query gave to the table.
	Alias string
	// Parent is the parent node, nil only for the root.
	Parent *Node
	// Link is the list of field pairs of the equi-join with the parent,
	// nil iff Parent is nil.
	Link []FieldPair
	// StartCol and EndCol delimit the half-open range of global column
	// ordinals owned by this node. EndCol is always greater than StartCol.
	StartCol int
	EndCol   int
}

// Lattice models a star/snowflake schema recognized in a join query: a
// rooted tree of tables linked by equi-joins, annotated with candidate
// measures and pre-declared tiles.
//
// A Lattice is immutable once built and safe for concurrent use.
type Lattice struct {
	// Nodes is the join tree in topological order: the root first, and
	// every other node after its parent.
	Nodes []*Node
	// Columns holds every column of every node; the index in the list is
	// the global ordinal of the column.
	Columns []*Column
	// UniqueColumnNames has one collision-free output name per column, used
	// only when naming synthesized output columns.
	UniqueColumnNames []string
	// DefaultMeasures are the measures every tile of the lattice includes.
	DefaultMeasures []*Measure
	// Tiles are the pre-declared tiles of the lattice.
	Tiles []*Tile

	// Auto indicates whether tiles should be recommended as queries are
	// seen.
	Auto bool
	// Algorithm indicates whether ComputeTiles delegates to a tile
	// suggestion algorithm instead of returning the declared tiles.
	Algorithm bool
	// AlgorithmMaxMillis is the soft wall-clock budget, in milliseconds,
	// granted to the tile suggestion algorithm.
	AlgorithmMaxMillis int64

	rowCountEstimate float64
	dialect          sql.Dialect
	stats            sql.ColumnStatistics
	suggester        TileSuggester
}

func newLattice(
	nodes []*Node,
	columns []*Column,
	uniqueNames []string,
	measures []*Measure,
	tiles []*Tile,
	auto, algorithm bool,
	algorithmMaxMillis int64,
	rowCountEstimate float64,
	dialect sql.Dialect,
	stats sql.ColumnStatistics,
	suggester TileSuggester,
) (*Lattice, error) {
	if err := validateTree(nodes, len(columns)); err != nil {
		return nil, err
	}
	if rowCountEstimate <= 0 {
		return nil, ErrInvalidRowCountEstimate.New(rowCountEstimate)
	}

	return &Lattice{
		Nodes:              nodes,
		Columns:            columns,
		UniqueColumnNames:  uniqueNames,
		DefaultMeasures:    measures,
		Tiles:              tiles,
		Auto:               auto,
		Algorithm:          algorithm,
		AlgorithmMaxMillis: algorithmMaxMillis,
		rowCountEstimate:   rowCountEstimate,
		dialect:            dialect,
		stats:              stats,
		suggester:          suggester,
	}, nil
}

// validateTree checks that the node list is a rooted tree in topological
// order and that the node column ranges exactly partition [0, columns).
func validateTree(nodes []*Node, columns int) error {
	if len(nodes) == 0 {
		return ErrUnsupportedNodeShape.New("no tables")
	}

	prev := 0
	for i, node := range nodes {
		if i == 0 {
			if node.Parent != nil || node.Link != nil {
				return ErrUnsupportedNodeShape.New(
					fmt.Sprintf("root node %s must not have a parent", node.Alias))
			}
		} else {
			if node.Parent == nil || len(node.Link) == 0 {
				return ErrUnsupportedNodeShape.New(
					fmt.Sprintf("node %s must have a parent and a link", node.Alias))
			}
			var found bool
			for _, p := range nodes[:i] {
				if p == node.Parent {
					found = true
					break
				}
			}
			if !found {
				return ErrUnsupportedNodeShape.New(
					fmt.Sprintf("parent of node %s does not precede it", node.Alias))
			}
		}

		if node.StartCol != prev || node.EndCol <= node.StartCol {
			return ErrUnsupportedNodeShape.New(
				fmt.Sprintf("node %s has an invalid column range [%d, %d)",
					node.Alias, node.StartCol, node.EndCol))
		}
		prev = node.EndCol
	}

	if prev != columns {
		return ErrUnsupportedNodeShape.New(
			fmt.Sprintf("node ranges cover %d of %d columns", prev, columns))
	}
	return nil
}

// Tables returns the tables underlying the lattice, root first, for handing
// to a materialization facility.
func (l *Lattice) Tables() []sql.Table {
	tables := make([]sql.Table, len(l.Nodes))
	for i, node := range l.Nodes {
		tables[i] = node.Table
	}
	return tables
}

// FactRowCount returns the estimate of the number of rows in the
// un-aggregated star.
func (l *Lattice) FactRowCount() float64 {
	return l.rowCountEstimate
}
