package materialize

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/src-d/go-lattice.v0/memory"
	"gopkg.in/src-d/go-lattice.v0/sql"
)

func salesCatalog() *memory.Catalog {
	return memory.NewCatalog(
		memory.NewTable("orders", sql.Schema{
			{Name: "order_id", Type: sql.Int64},
			{Name: "cust_id", Type: sql.Int64},
			{Name: "amount", Type: sql.Float64},
		}),
		memory.NewTable("customers", sql.Schema{
			{Name: "id", Type: sql.Int64},
			{Name: "region", Type: sql.Text},
		}),
	)
}

func chainCatalog() *memory.Catalog {
	return memory.NewCatalog(
		memory.NewTable("sales", sql.Schema{
			{Name: "sale_id", Type: sql.Int64},
			{Name: "prod_id", Type: sql.Int64},
			{Name: "qty", Type: sql.Int64},
		}),
		memory.NewTable("product", sql.Schema{
			{Name: "id", Type: sql.Int64},
			{Name: "class_id", Type: sql.Int64},
			{Name: "name", Type: sql.Text},
		}),
		memory.NewTable("class", sql.Schema{
			{Name: "id", Type: sql.Int64},
			{Name: "family", Type: sql.Text},
		}),
	)
}

func build(t *testing.T, catalog sql.Catalog, query string) (*Lattice, *Builder) {
	t.Helper()
	b, err := NewBuilder(sql.NewEmptyContext(), catalog, query)
	require.NoError(t, err)
	l, err := b.Build()
	require.NoError(t, err)
	return l, b
}

func column(t *testing.T, l *Lattice, table, name string) *Column {
	t.Helper()
	for _, c := range l.Columns {
		if c.Table == table && c.Name == name {
			return c
		}
	}
	t.Fatalf("no column %s.%s in lattice", table, name)
	return nil
}

const salesQuery = `SELECT * FROM orders AS o JOIN customers AS c ON o.cust_id = c.id`

const chainQuery = `SELECT * FROM sales AS s
JOIN product AS p ON s.prod_id = p.id
JOIN class AS c ON p.class_id = c.id`

func TestLatticeTree(t *testing.T) {
	require := require.New(t)

	l, _ := build(t, chainCatalog(), chainQuery)

	require.Len(l.Nodes, 3)
	require.Nil(l.Nodes[0].Parent)
	require.Nil(l.Nodes[0].Link)
	for i, node := range l.Nodes[1:] {
		parentIdx := -1
		for j, p := range l.Nodes {
			if p == node.Parent {
				parentIdx = j
			}
		}
		require.True(parentIdx >= 0 && parentIdx <= i,
			"parent of node %d must appear earlier", i+1)
		require.NotEmpty(node.Link)
	}

	// Node ranges exactly partition the column list.
	prev := 0
	for _, node := range l.Nodes {
		require.Equal(prev, node.StartCol)
		require.True(node.EndCol > node.StartCol)
		prev = node.EndCol
	}
	require.Equal(len(l.Columns), prev)

	// Ordinals are dense and match list positions.
	for i, c := range l.Columns {
		require.Equal(i, c.Ordinal)
	}
}

func TestLatticeAliases(t *testing.T) {
	require := require.New(t)

	l, _ := build(t, chainCatalog(), chainQuery)
	var aliases []string
	for _, node := range l.Nodes {
		aliases = append(aliases, node.Alias)
	}
	require.Equal([]string{"s", "p", "c"}, aliases)
}

func TestUniqueColumnNames(t *testing.T) {
	require := require.New(t)

	l, _ := build(t, chainCatalog(), chainQuery)
	// product.id keeps its name, class.id is disambiguated.
	require.Equal(
		[]string{"sale_id", "prod_id", "qty", "id", "class_id", "name", "id0", "family"},
		l.UniqueColumnNames,
	)
}

func TestSQLGroupAndMeasure(t *testing.T) {
	require := require.New(t)

	l, _ := build(t, salesCatalog(), salesQuery)
	region := column(t, l, "c", "region")
	amount := column(t, l, "o", "amount")

	got := l.SQL(
		sql.NewFastIntSet(region.Ordinal),
		[]*Measure{NewMeasure("SUM", amount)},
	)
	require.Equal(
		"SELECT c.region, SUM(o.amount) AS m0\n"+
			"FROM orders AS o\n"+
			"JOIN customers AS c ON c.id = o.cust_id\n"+
			"GROUP BY c.region",
		got,
	)
}

func TestSQLDeterministic(t *testing.T) {
	require := require.New(t)

	l, _ := build(t, salesCatalog(), salesQuery)
	region := column(t, l, "c", "region")
	amount := column(t, l, "o", "amount")

	groupSet := sql.NewFastIntSet(region.Ordinal)
	measures := []*Measure{NewMeasure("SUM", amount)}
	first := l.SQL(groupSet, measures)
	for i := 0; i < 10; i++ {
		require.Equal(first, l.SQL(groupSet, measures))
	}
}

func TestSQLAncestorClosure(t *testing.T) {
	require := require.New(t)

	l, _ := build(t, chainCatalog(), chainQuery)
	family := column(t, l, "c", "family")

	// Selecting only a class column still joins sales and product, because
	// class is only reachable through them.
	got := l.SQL(sql.NewFastIntSet(family.Ordinal), nil)
	require.Equal(
		"SELECT c.family\n"+
			"FROM sales AS s\n"+
			"JOIN product AS p ON p.id = s.prod_id\n"+
			"JOIN class AS c ON c.id = p.class_id\n"+
			"GROUP BY c.family",
		got,
	)
}

func TestSQLEmptyGroup(t *testing.T) {
	require := require.New(t)

	l, _ := build(t, salesCatalog(), salesQuery)

	// A global count with no arguments uses only the root node.
	got := l.SQL(sql.FastIntSet{}, []*Measure{NewMeasure("COUNT")})
	require.Equal(
		"SELECT COUNT(*) AS m0\n"+
			"FROM orders AS o\n"+
			"GROUP BY ()",
		got,
	)
}

func TestSQLMeasureNameCollision(t *testing.T) {
	require := require.New(t)

	catalog := memory.NewCatalog(
		memory.NewTable("metrics", sql.Schema{
			{Name: "m0", Type: sql.Int64},
			{Name: "v", Type: sql.Int64},
		}),
	)
	l, _ := build(t, catalog, `SELECT * FROM metrics`)
	m0 := column(t, l, "metrics", "m0")

	got := l.SQL(sql.NewFastIntSet(m0.Ordinal), []*Measure{NewMeasure("COUNT")})
	require.Equal(
		"SELECT metrics.m0, COUNT(*) AS m1\n"+
			"FROM metrics AS metrics\n"+
			"GROUP BY metrics.m0",
		got,
	)
}

func TestSQLCompositeJoinKey(t *testing.T) {
	require := require.New(t)

	catalog := memory.NewCatalog(
		memory.NewTable("events", sql.Schema{
			{Name: "day", Type: sql.Int64},
			{Name: "site", Type: sql.Int64},
			{Name: "hits", Type: sql.Int64},
		}),
		memory.NewTable("calendar", sql.Schema{
			{Name: "day", Type: sql.Int64},
			{Name: "site", Type: sql.Int64},
			{Name: "holiday", Type: sql.Text},
		}),
	)
	l, _ := build(t, catalog,
		`SELECT * FROM events AS e JOIN calendar AS c ON e.day = c.day AND e.site = c.site`)
	holiday := column(t, l, "c", "holiday")

	got := l.SQL(sql.NewFastIntSet(holiday.Ordinal), nil)
	require.Equal(
		"SELECT c.holiday\n"+
			"FROM events AS e\n"+
			"JOIN calendar AS c ON c.day = e.day AND c.site = e.site\n"+
			"GROUP BY c.holiday",
		got,
	)
}

func TestBuilderRejectsLeftJoin(t *testing.T) {
	require := require.New(t)

	_, err := NewBuilder(sql.NewEmptyContext(), salesCatalog(),
		`SELECT * FROM orders AS o LEFT JOIN customers AS c ON o.cust_id = c.id`)
	require.Error(err)
	require.True(ErrUnsupportedJoinType.Is(err))
}

func TestBuilderRejectsCrossJoin(t *testing.T) {
	require := require.New(t)

	_, err := NewBuilder(sql.NewEmptyContext(), salesCatalog(),
		`SELECT * FROM orders, customers`)
	require.Error(err)
	require.True(ErrUnsupportedJoinType.Is(err))
}

func TestBuilderRejectsNonEquiCondition(t *testing.T) {
	require := require.New(t)

	for _, query := range []string{
		`SELECT * FROM orders AS o JOIN customers AS c ON o.cust_id + 1 = c.id`,
		`SELECT * FROM orders AS o JOIN customers AS c ON o.cust_id > c.id`,
		`SELECT * FROM orders AS o JOIN customers AS c ON o.cust_id = 1`,
	} {
		_, err := NewBuilder(sql.NewEmptyContext(), salesCatalog(), query)
		require.Error(err, "query %q must be rejected", query)
		require.True(ErrUnsupportedJoinCondition.Is(err), "query %q", query)
	}
}

func TestBuilderRejectsDiamond(t *testing.T) {
	require := require.New(t)

	catalog := memory.NewCatalog(
		memory.NewTable("f", sql.Schema{
			{Name: "a_id", Type: sql.Int64},
			{Name: "b_id", Type: sql.Int64},
		}),
		memory.NewTable("a", sql.Schema{
			{Name: "id", Type: sql.Int64},
			{Name: "d_id", Type: sql.Int64},
		}),
		memory.NewTable("b", sql.Schema{
			{Name: "id", Type: sql.Int64},
			{Name: "d_id", Type: sql.Int64},
		}),
		memory.NewTable("d", sql.Schema{
			{Name: "id", Type: sql.Int64},
		}),
	)

	// d is reachable through both a and b: expressible as pairwise
	// equi-joins, but not a tree.
	_, err := NewBuilder(sql.NewEmptyContext(), catalog, `SELECT * FROM f
JOIN a ON f.a_id = a.id
JOIN b ON f.b_id = b.id
JOIN d ON a.d_id = d.id AND b.d_id = d.id`)
	require.Error(err)
	require.True(ErrUnsupportedNodeShape.Is(err))
}

func TestBuilderRejectsJoinCycle(t *testing.T) {
	require := require.New(t)

	catalog := memory.NewCatalog(
		memory.NewTable("a", sql.Schema{
			{Name: "x", Type: sql.Int64},
			{Name: "y", Type: sql.Int64},
		}),
		memory.NewTable("b", sql.Schema{
			{Name: "x", Type: sql.Int64},
			{Name: "y", Type: sql.Int64},
		}),
	)

	_, err := NewBuilder(sql.NewEmptyContext(), catalog,
		`SELECT * FROM a JOIN b ON a.x = b.x AND b.y = a.y`)
	require.Error(err)
	require.True(ErrUnsupportedNodeShape.Is(err))
}

func TestBuilderRowCountEstimate(t *testing.T) {
	require := require.New(t)

	_, b := build(t, salesCatalog(), salesQuery)
	l, err := b.Build()
	require.NoError(err)
	require.Equal(1000.0, l.FactRowCount())

	l, err = b.RowCountEstimate(5000).Build()
	require.NoError(err)
	require.Equal(5000.0, l.FactRowCount())

	_, err = b.RowCountEstimate(0).Build()
	require.Error(err)
	require.True(ErrInvalidRowCountEstimate.Is(err))

	_, err = b.RowCountEstimate(-1).Build()
	require.Error(err)
	require.True(ErrInvalidRowCountEstimate.Is(err))
}

func TestBuilderResolveColumnByAlias(t *testing.T) {
	require := require.New(t)

	_, b := build(t, chainCatalog(), chainQuery)

	c, err := b.ResolveColumnByAlias("family")
	require.NoError(err)
	require.Equal("c", c.Table)
	require.Equal("family", c.Name)

	_, err = b.ResolveColumnByAlias("id")
	require.Error(err)
	require.True(ErrAmbiguousColumnAlias.Is(err))

	_, err = b.ResolveColumnByAlias("falily")
	require.Error(err)
	require.True(ErrUnknownColumn.Is(err))
	require.Contains(err.Error(), "maybe you mean family?")
}

func TestBuilderResolveQualifiedColumn(t *testing.T) {
	require := require.New(t)

	_, b := build(t, chainCatalog(), chainQuery)

	c, err := b.ResolveQualifiedColumn("c", "id")
	require.NoError(err)
	require.Equal(6, c.Ordinal)

	_, err = b.ResolveQualifiedColumn("c", "nope")
	require.Error(err)
	require.True(ErrUnknownColumn.Is(err))
}

func TestBuilderResolveMeasure(t *testing.T) {
	require := require.New(t)

	_, b := build(t, salesCatalog(), salesQuery)

	m, err := b.ResolveMeasure("sum", []string{"amount"})
	require.NoError(err)
	require.Equal("SUM", m.Agg)
	require.Len(m.Args, 1)
	require.Equal("amount", m.Args[0].Name)

	m, err = b.ResolveMeasure("count", nil)
	require.NoError(err)
	require.Equal("COUNT", m.Agg)
	require.Empty(m.Args)

	_, err = b.ResolveMeasure("median", nil)
	require.Error(err)
	require.True(ErrUnknownAggregate.Is(err))
}

func TestLatticeTables(t *testing.T) {
	require := require.New(t)

	l, _ := build(t, chainCatalog(), chainQuery)
	tables := l.Tables()
	require.Len(tables, 3)
	require.Equal("sales", tables[0].Name())
	require.Equal("product", tables[1].Name())
	require.Equal("class", tables[2].Name())
}

func TestNewStarTable(t *testing.T) {
	require := require.New(t)

	l, _ := build(t, salesCatalog(), salesQuery)
	star, err := NewStarTable(l)
	require.NoError(err)
	require.Contains(star.Name, "star_orders_customers_")
	require.Len(star.Tables, 2)

	other, err := NewStarTable(l)
	require.NoError(err)
	require.NotEqual(star.Name, other.Name)
}
