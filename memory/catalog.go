package memory

import "gopkg.in/src-d/go-lattice.v0/sql"

// Catalog is an in-memory table catalog.
type Catalog struct {
	tables map[string]sql.Table
}

var _ sql.Catalog = (*Catalog)(nil)

// NewCatalog returns a new empty Catalog.
func NewCatalog(tables ...sql.Table) *Catalog {
	c := &Catalog{tables: make(map[string]sql.Table)}
	for _, t := range tables {
		c.AddTable(t)
	}
	return c
}

// AddTable adds a table to the catalog, replacing any table with the same
// name.
func (c *Catalog) AddTable(t sql.Table) {
	c.tables[t.Name()] = t
}

// Table implements the sql.Catalog interface.
func (c *Catalog) Table(name string) (sql.Table, error) {
	if t, ok := c.tables[name]; ok {
		return t, nil
	}
	return nil, sql.ErrTableNotFound.New(name)
}
