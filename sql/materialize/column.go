package materialize

// Column is a column of the lattice. Columns are identified by table alias
// and column name, and carry a display alias that need not be unique within
// the lattice. Identity and ordering are by ordinal alone.
type Column struct {
	// Ordinal is the global, dense, 0-based position of the column within
	// the lattice.
	Ordinal int
	// Table is the alias of the table owning the column.
	Table string
	// Name is the name of the column in its source table.
	Name string
	// Alias is the display alias of the column.
	Alias string
}

// Compare returns a negative, zero or positive number comparing the ordinals
// of both columns.
func (c *Column) Compare(o *Column) int {
	return c.Ordinal - o.Ordinal
}

// Equals reports whether both columns have the same ordinal.
func (c *Column) Equals(o *Column) bool {
	return c.Ordinal == o.Ordinal
}

func (c *Column) String() string {
	return c.Table + "." + c.Name
}

// identifiers returns the parts of the qualified name of the column.
func (c *Column) identifiers() []string {
	return []string{c.Table, c.Name}
}
