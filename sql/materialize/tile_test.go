package materialize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTileCanonical(t *testing.T) {
	require := require.New(t)

	a, b, c := col(0, "a"), col(1, "b"), col(2, "c")

	tile, err := NewTile(
		[]*Measure{NewMeasure("COUNT"), NewMeasure("SUM", a)},
		[]*Column{b, c},
	)
	require.NoError(err)
	require.Equal([]int{1, 2}, tile.BitSet().Ordered())

	_, err = NewTile(nil, []*Column{c, b})
	require.Error(err)
	require.True(ErrTileNotCanonical.Is(err))

	_, err = NewTile(nil, []*Column{b, b})
	require.Error(err)
	require.True(ErrTileNotCanonical.Is(err))

	_, err = NewTile(
		[]*Measure{NewMeasure("SUM", a), NewMeasure("COUNT")},
		nil,
	)
	require.Error(err)
	require.True(ErrTileNotCanonical.Is(err))

	_, err = NewTile(
		[]*Measure{NewMeasure("COUNT"), NewMeasure("COUNT")},
		nil,
	)
	require.Error(err)
	require.True(ErrTileNotCanonical.Is(err))
}

func TestTileBuilderSorts(t *testing.T) {
	require := require.New(t)

	a, b, c := col(0, "a"), col(1, "b"), col(2, "c")

	var builder TileBuilder
	builder.AddDimension(c)
	builder.AddDimension(b)
	builder.AddMeasure(NewMeasure("SUM", a))
	builder.AddMeasure(NewMeasure("COUNT"))

	tile, err := builder.Build()
	require.NoError(err)
	require.Equal([]*Column{b, c}, tile.Dimensions)
	require.Equal("COUNT", tile.Measures[0].Agg)
	require.Equal("SUM", tile.Measures[1].Agg)
}

func TestTileEquals(t *testing.T) {
	require := require.New(t)

	a, b := col(0, "a"), col(1, "b")

	mk := func(measures []*Measure, dims []*Column) *Tile {
		tile, err := NewTile(measures, dims)
		require.NoError(err)
		return tile
	}

	t1 := mk([]*Measure{NewMeasure("SUM", a)}, []*Column{b})
	t2 := mk([]*Measure{NewMeasure("SUM", a)}, []*Column{b})
	t3 := mk([]*Measure{NewMeasure("COUNT")}, []*Column{b})
	t4 := mk([]*Measure{NewMeasure("SUM", a)}, []*Column{a, b})

	require.True(t1.Equals(t2))
	require.True(t2.Equals(t1))
	require.False(t1.Equals(t3))
	require.False(t1.Equals(t4))
}

func TestTileSetDeduplicates(t *testing.T) {
	require := require.New(t)

	a, b := col(0, "a"), col(1, "b")

	mk := func(measures []*Measure, dims []*Column) *Tile {
		tile, err := NewTile(measures, dims)
		require.NoError(err)
		return tile
	}

	t1 := mk([]*Measure{NewMeasure("SUM", a)}, []*Column{b})
	dup := mk([]*Measure{NewMeasure("SUM", a)}, []*Column{b})
	t2 := mk([]*Measure{NewMeasure("COUNT")}, []*Column{b})

	set := NewTileSet()
	added, err := set.Add(t1)
	require.NoError(err)
	require.True(added)

	added, err = set.Add(dup)
	require.NoError(err)
	require.False(added)

	added, err = set.Add(t2)
	require.NoError(err)
	require.True(added)

	require.Equal([]*Tile{t1, t2}, set.Tiles())
}
