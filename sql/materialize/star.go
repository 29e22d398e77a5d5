package materialize

import (
	"fmt"
	"strings"

	uuid "github.com/satori/go.uuid"
	"gopkg.in/src-d/go-lattice.v0/sql"
)

// StarTable identifies the denormalized join of every table in the lattice,
// the input a materialization facility populates tiles from. Tables are in
// lattice order, root first.
type StarTable struct {
	// Name uniquely identifies the star within a materialization registry.
	Name string
	// Tables are the tables of the lattice, root first.
	Tables []sql.Table
}

// NewStarTable creates a StarTable for the lattice. The name is derived
// from the table names plus a unique suffix, so two lattices over the same
// tables do not collide.
func NewStarTable(l *Lattice) (*StarTable, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(l.Nodes))
	for i, node := range l.Nodes {
		names[i] = node.Table.Name()
	}

	return &StarTable{
		Name:   fmt.Sprintf("star_%s_%s", strings.Join(names, "_"), id),
		Tables: l.Tables(),
	}, nil
}
