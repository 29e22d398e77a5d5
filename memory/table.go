package memory

import "gopkg.in/src-d/go-lattice.v0/sql"

// Table is an in-memory table definition, used as a fixture by tests and by
// embedders that declare their schema programmatically.
type Table struct {
	name   string
	schema sql.Schema
}

var _ sql.Table = (*Table)(nil)

// NewTable creates a new Table with the given name and schema.
func NewTable(name string, schema sql.Schema) *Table {
	return &Table{
		name:   name,
		schema: schema,
	}
}

// Name implements the sql.Table interface.
func (t *Table) Name() string {
	return t.name
}

// Schema implements the sql.Table interface.
func (t *Table) Schema() sql.Schema {
	return t.schema
}
