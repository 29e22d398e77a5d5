package materialize

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/src-d/go-lattice.v0/sql"
)

type fixedSuggester struct {
	tiles       []*Tile
	err         error
	hadDeadline bool
}

func (s *fixedSuggester) SuggestTiles(ctx *sql.Context, l *Lattice) ([]*Tile, error) {
	_, s.hadDeadline = ctx.Deadline()
	return s.tiles, s.err
}

func declaredTile(t *testing.T, l *Lattice) *Tile {
	t.Helper()
	region := column(t, l, "c", "region")
	amount := column(t, l, "o", "amount")
	tile, err := NewTile(
		[]*Measure{NewMeasure("SUM", amount)},
		[]*Column{region},
	)
	require.NoError(t, err)
	return tile
}

func TestComputeTilesDeclaredOnly(t *testing.T) {
	require := require.New(t)

	_, b := build(t, salesCatalog(), salesQuery)
	l, err := b.Build()
	require.NoError(err)

	tile := declaredTile(t, l)
	b.AddTile(tile)
	l, err = b.Build()
	require.NoError(err)

	tiles, err := l.ComputeTiles(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal([]*Tile{tile}, tiles)
}

func TestComputeTilesNilSuggester(t *testing.T) {
	require := require.New(t)

	_, b := build(t, salesCatalog(), salesQuery)
	l, err := b.Algorithm(true).Build()
	require.NoError(err)

	tile := declaredTile(t, l)
	b.AddTile(tile)
	l, err = b.Build()
	require.NoError(err)

	tiles, err := l.ComputeTiles(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal([]*Tile{tile}, tiles)
}

func TestComputeTilesMergesSuggestions(t *testing.T) {
	require := require.New(t)

	_, b := build(t, salesCatalog(), salesQuery)
	l, err := b.Build()
	require.NoError(err)

	declared := declaredTile(t, l)
	duplicate := declaredTile(t, l)

	id := column(t, l, "c", "id")
	extra, err := NewTile([]*Measure{NewMeasure("COUNT")}, []*Column{id})
	require.NoError(err)

	suggester := &fixedSuggester{tiles: []*Tile{duplicate, extra}}
	b.AddTile(declared)
	l, err = b.Algorithm(true).Suggester(suggester).Build()
	require.NoError(err)

	tiles, err := l.ComputeTiles(sql.NewEmptyContext())
	require.NoError(err)
	require.Equal([]*Tile{declared, extra}, tiles)
	require.False(suggester.hadDeadline)
}

func TestComputeTilesAppliesTimeBudget(t *testing.T) {
	require := require.New(t)

	_, b := build(t, salesCatalog(), salesQuery)
	suggester := &fixedSuggester{}
	l, err := b.
		Algorithm(true).
		AlgorithmMaxMillis(60000).
		Suggester(suggester).
		Build()
	require.NoError(err)

	_, err = l.ComputeTiles(sql.NewEmptyContext())
	require.NoError(err)
	require.True(suggester.hadDeadline)
}

func TestComputeTilesSuggesterError(t *testing.T) {
	require := require.New(t)

	_, b := build(t, salesCatalog(), salesQuery)
	suggester := &fixedSuggester{err: ErrUnknownColumn.New("boom", "")}
	l, err := b.Algorithm(true).Suggester(suggester).Build()
	require.NoError(err)

	_, err = l.ComputeTiles(sql.NewEmptyContext())
	require.Error(err)
	require.True(ErrUnknownColumn.Is(err))
}
