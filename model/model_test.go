package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const fullModel = `
name: star_sales
sql: SELECT * FROM orders AS o JOIN customers AS c ON o.cust_id = c.id
auto: false
algorithm: true
algorithmMaxMillis: 10000
rowCountEstimate: 86837
defaultMeasures:
  - agg: count
tiles:
  - dimensions: [region, [o, cust_id]]
    measures:
      - agg: sum
        args: amount
      - agg: sum
        args: [amount, cust_id]
`

func TestParse(t *testing.T) {
	require := require.New(t)

	l, err := Parse([]byte(fullModel))
	require.NoError(err)

	require.Equal("star_sales", l.Name)
	require.Equal(
		"SELECT * FROM orders AS o JOIN customers AS c ON o.cust_id = c.id",
		l.SQL,
	)
	require.NotNil(l.Auto)
	require.False(*l.Auto)
	require.True(l.Algorithm)
	require.Equal(int64(10000), l.AlgorithmMaxMillis)
	require.NotNil(l.RowCountEstimate)
	require.Equal(86837.0, *l.RowCountEstimate)

	require.Len(l.DefaultMeasures, 1)
	require.Equal("count", l.DefaultMeasures[0].Agg)
	require.Len(l.Tiles, 1)
	require.Len(l.Tiles[0].Measures, 2)
}

func TestParseDefaults(t *testing.T) {
	require := require.New(t)

	l, err := Parse([]byte(`sql: SELECT * FROM t`))
	require.NoError(err)
	require.Nil(l.Auto)
	require.False(l.Algorithm)
	require.Equal(int64(0), l.AlgorithmMaxMillis)
	require.Nil(l.RowCountEstimate)
	require.Empty(l.DefaultMeasures)
	require.Empty(l.Tiles)
}

func TestParseMissingSQL(t *testing.T) {
	require := require.New(t)

	_, err := Parse([]byte(`name: broken`))
	require.Error(err)
	require.True(ErrMissingSQL.Is(err))
}

func TestMeasureColumns(t *testing.T) {
	require := require.New(t)

	cols, err := Measure{Agg: "count"}.Columns()
	require.NoError(err)
	require.Nil(cols)

	cols, err = Measure{Agg: "sum", Args: "amount"}.Columns()
	require.NoError(err)
	require.Equal([]string{"amount"}, cols)

	cols, err = Measure{Agg: "sum", Args: []interface{}{"amount", "qty"}}.Columns()
	require.NoError(err)
	require.Equal([]string{"amount", "qty"}, cols)

	_, err = Measure{Agg: "sum", Args: map[string]int{"x": 1}}.Columns()
	require.Error(err)
	require.True(ErrInvalidMeasureArgs.Is(err))
}

func TestTileDimensionRefs(t *testing.T) {
	require := require.New(t)

	tile := Tile{Dimensions: []interface{}{
		"region",
		[]interface{}{"cust_id"},
		[]interface{}{"o", "cust_id"},
	}}

	refs, err := tile.DimensionRefs()
	require.NoError(err)
	require.Equal([]ColumnRef{
		{Alias: "region"},
		{Alias: "cust_id"},
		{Table: "o", Column: "cust_id"},
	}, refs)

	require.False(refs[0].Qualified())
	require.True(refs[2].Qualified())

	_, err = Tile{Dimensions: []interface{}{
		[]interface{}{"a", "b", "c"},
	}}.DimensionRefs()
	require.Error(err)
	require.True(ErrInvalidColumnRef.Is(err))
}
