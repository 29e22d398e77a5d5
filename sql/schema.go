package sql

// Column is the definition of a table column.
type Column struct {
	// Name is the name of the column.
	Name string
	// Type is the data type of the column.
	Type Type
	// Nullable is true if the column can contain NULL values, or false
	// otherwise.
	Nullable bool
	// Source is the name of the table this column came from.
	Source string
}

// Equals checks whether two columns are equal.
func (c *Column) Equals(c2 *Column) bool {
	return c.Name == c2.Name &&
		c.Source == c2.Source &&
		c.Nullable == c2.Nullable &&
		c.Type == c2.Type
}

// Schema is the definition of a table.
type Schema []*Column

// IndexOf returns the index of the given column in the schema or -1 if it is
// not present.
func (s Schema) IndexOf(column, source string) int {
	for i, col := range s {
		if col.Name == column && col.Source == source {
			return i
		}
	}
	return -1
}

// IndexOfName returns the index of the column with the given name, ignoring
// the source, or -1 if it is not present.
func (s Schema) IndexOfName(column string) int {
	for i, col := range s {
		if col.Name == column {
			return i
		}
	}
	return -1
}

// Contains returns whether the schema contains a column with the given name.
func (s Schema) Contains(column, source string) bool {
	return s.IndexOf(column, source) >= 0
}
