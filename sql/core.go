package sql

import "fmt"

// Nameable is something that has a name.
type Nameable interface {
	// Name returns the name.
	Name() string
}

// Table represents a named table with a schema.
type Table interface {
	Nameable
	// Schema returns the columns of the table.
	Schema() Schema
}

// Catalog resolves table names to table handles.
type Catalog interface {
	// Table returns the table with the given name, or ErrTableNotFound.
	Table(name string) (Table, error)
}

// Expression is a SQL scalar expression.
type Expression interface {
	fmt.Stringer
	// Type returns the type of the expression.
	Type() Type
	// Children returns the immediate children of the expression.
	Children() []Expression
}

// Node is a node in a relational tree.
type Node interface {
	fmt.Stringer
	// Schema returns the row shape produced by the node.
	Schema() Schema
	// Children returns the child nodes.
	Children() []Node
}
