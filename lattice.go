// Package lattice recognizes a star/snowflake schema in a join query and
// models it as a lattice: a rooted tree of tables linked by equi-joins,
// annotated with measures and pre-computed aggregation tiles. The lattice is
// the structure a query-rewrite subsystem uses to decide which tile can
// answer a grouping query, and to synthesize the SQL that populates a tile.
package lattice

import (
	"gopkg.in/src-d/go-lattice.v0/model"
	"gopkg.in/src-d/go-lattice.v0/sql"
	"gopkg.in/src-d/go-lattice.v0/sql/materialize"
)

// Create builds a lattice from a join query. The query FROM clause must be
// a tree of inner joins over column equalities; tables are resolved against
// the given catalog.
func Create(ctx *sql.Context, catalog sql.Catalog, query string, auto bool) (*materialize.Lattice, error) {
	b, err := materialize.NewBuilder(ctx, catalog, query)
	if err != nil {
		return nil, err
	}
	return b.Auto(auto).Build()
}

// CreateFromModel builds a lattice from a declarative model, resolving its
// declared measures and tiles against the lattice columns.
func CreateFromModel(ctx *sql.Context, catalog sql.Catalog, m *model.Lattice) (*materialize.Lattice, error) {
	b, err := materialize.NewBuilder(ctx, catalog, m.SQL)
	if err != nil {
		return nil, err
	}

	if m.Auto != nil {
		b.Auto(*m.Auto)
	}
	b.Algorithm(m.Algorithm)
	if m.AlgorithmMaxMillis != 0 {
		b.AlgorithmMaxMillis(m.AlgorithmMaxMillis)
	}
	if m.RowCountEstimate != nil {
		b.RowCountEstimate(*m.RowCountEstimate)
	}

	for _, dm := range m.DefaultMeasures {
		measure, err := resolveMeasure(b, dm)
		if err != nil {
			return nil, err
		}
		b.AddMeasure(measure)
	}

	for _, dt := range m.Tiles {
		tile, err := resolveTile(b, dt)
		if err != nil {
			return nil, err
		}
		b.AddTile(tile)
	}

	return b.Build()
}

func resolveMeasure(b *materialize.Builder, m model.Measure) (*materialize.Measure, error) {
	args, err := m.Columns()
	if err != nil {
		return nil, err
	}
	return b.ResolveMeasure(m.Agg, args)
}

func resolveTile(b *materialize.Builder, t model.Tile) (*materialize.Tile, error) {
	var tb materialize.TileBuilder

	refs, err := t.DimensionRefs()
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		var column *materialize.Column
		if ref.Qualified() {
			column, err = b.ResolveQualifiedColumn(ref.Table, ref.Column)
		} else {
			column, err = b.ResolveColumnByAlias(ref.Alias)
		}
		if err != nil {
			return nil, err
		}
		tb.AddDimension(column)
	}

	for _, m := range t.Measures {
		measure, err := resolveMeasure(b, m)
		if err != nil {
			return nil, err
		}
		tb.AddMeasure(measure)
	}

	return tb.Build()
}
