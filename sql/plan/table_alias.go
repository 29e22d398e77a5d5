package plan

import "gopkg.in/src-d/go-lattice.v0/sql"

// TableAlias is a node that renames a table.
type TableAlias struct {
	UnaryNode
	name string
}

// NewTableAlias returns a new TableAlias node.
func NewTableAlias(name string, node sql.Node) *TableAlias {
	return &TableAlias{UnaryNode{Child: node}, name}
}

// Name implements the Nameable interface.
func (t *TableAlias) Name() string { return t.name }

// Schema implements the Node interface. The source of every column is
// replaced with the alias.
func (t *TableAlias) Schema() sql.Schema {
	childSchema := t.Child.Schema()
	schema := make(sql.Schema, len(childSchema))
	for i, col := range childSchema {
		c := *col
		c.Source = t.name
		schema[i] = &c
	}
	return schema
}

func (t *TableAlias) String() string {
	return "TableAlias(" + t.name + ")"
}
