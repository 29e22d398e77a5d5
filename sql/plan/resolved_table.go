package plan

import "gopkg.in/src-d/go-lattice.v0/sql"

// ResolvedTable represents a table scan whose name has been resolved against
// a catalog.
type ResolvedTable struct {
	Table sql.Table
}

// NewResolvedTable creates a new instance of ResolvedTable.
func NewResolvedTable(table sql.Table) *ResolvedTable {
	return &ResolvedTable{Table: table}
}

// Name implements the Nameable interface.
func (t *ResolvedTable) Name() string { return t.Table.Name() }

// Schema implements the Node interface. Every column reports the table as
// its source.
func (t *ResolvedTable) Schema() sql.Schema {
	schema := t.Table.Schema()
	result := make(sql.Schema, len(schema))
	for i, col := range schema {
		c := *col
		c.Source = t.Table.Name()
		result[i] = &c
	}
	return result
}

// Children implements the Node interface.
func (*ResolvedTable) Children() []sql.Node { return nil }

func (t *ResolvedTable) String() string {
	return "Table(" + t.Table.Name() + ")"
}
