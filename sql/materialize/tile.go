package materialize

import (
	"sort"

	"github.com/mitchellh/hashstructure"
	"gopkg.in/src-d/go-lattice.v0/sql"
)

// Tile is a materialized aggregate within a lattice: a set of measures
// grouped by a set of dimension columns. Measures and dimensions are kept in
// strictly increasing canonical order, so tiles produced independently can
// be compared by structure alone.
type Tile struct {
	Measures   []*Measure
	Dimensions []*Column

	bitSet sql.FastIntSet
}

// NewTile creates a new Tile. The measure list and the dimension list must
// each be in strictly increasing canonical order or ErrTileNotCanonical is
// returned.
func NewTile(measures []*Measure, dimensions []*Column) (*Tile, error) {
	for i := 1; i < len(measures); i++ {
		if measures[i-1].Compare(measures[i]) >= 0 {
			return nil, ErrTileNotCanonical.New("measures")
		}
	}
	var bitSet sql.FastIntSet
	for i, d := range dimensions {
		if i > 0 && dimensions[i-1].Compare(d) >= 0 {
			return nil, ErrTileNotCanonical.New("dimensions")
		}
		bitSet.Add(d.Ordinal)
	}

	return &Tile{
		Measures:   measures,
		Dimensions: dimensions,
		bitSet:     bitSet,
	}, nil
}

// BitSet returns the set of dimension ordinals of the tile.
func (t *Tile) BitSet() sql.FastIntSet {
	return t.bitSet
}

// Equals reports whether both tiles have the same dimensions and measures.
func (t *Tile) Equals(o *Tile) bool {
	if len(t.Measures) != len(o.Measures) ||
		len(t.Dimensions) != len(o.Dimensions) {
		return false
	}
	for i, m := range t.Measures {
		if !m.Equals(o.Measures[i]) {
			return false
		}
	}
	for i, d := range t.Dimensions {
		if !d.Equals(o.Dimensions[i]) {
			return false
		}
	}
	return true
}

// TileBuilder accumulates measures and dimensions and sorts them into
// canonical order when the tile is built. It is single use.
type TileBuilder struct {
	measures   []*Measure
	dimensions []*Column
}

// AddMeasure adds a measure to the tile.
func (b *TileBuilder) AddMeasure(m *Measure) {
	b.measures = append(b.measures, m)
}

// AddDimension adds a dimension column to the tile.
func (b *TileBuilder) AddDimension(c *Column) {
	b.dimensions = append(b.dimensions, c)
}

// Build sorts the accumulated measures and dimensions and builds the tile.
func (b *TileBuilder) Build() (*Tile, error) {
	sort.Slice(b.measures, func(i, j int) bool {
		return b.measures[i].Compare(b.measures[j]) < 0
	})
	sort.Slice(b.dimensions, func(i, j int) bool {
		return b.dimensions[i].Compare(b.dimensions[j]) < 0
	})
	return NewTile(b.measures, b.dimensions)
}

// tileKey is the hashable shape of a tile.
type tileKey struct {
	Dimensions []int
	Measures   []measureKey
}

type measureKey struct {
	Agg  string
	Args []int
}

func (t *Tile) key() tileKey {
	key := tileKey{Dimensions: make([]int, len(t.Dimensions))}
	for i, d := range t.Dimensions {
		key.Dimensions[i] = d.Ordinal
	}
	for _, m := range t.Measures {
		key.Measures = append(key.Measures, measureKey{
			Agg:  m.Agg,
			Args: m.ArgOrdinals(),
		})
	}
	return key
}

// TileSet deduplicates tiles by structure.
type TileSet struct {
	seen  map[uint64][]*Tile
	tiles []*Tile
}

// NewTileSet returns an empty TileSet.
func NewTileSet() *TileSet {
	return &TileSet{seen: make(map[uint64][]*Tile)}
}

// Add adds a tile to the set and returns false if a structurally equal tile
// was already present.
func (s *TileSet) Add(t *Tile) (bool, error) {
	hash, err := hashstructure.Hash(t.key(), nil)
	if err != nil {
		return false, err
	}
	for _, other := range s.seen[hash] {
		if other.Equals(t) {
			return false, nil
		}
	}
	s.seen[hash] = append(s.seen[hash], t)
	s.tiles = append(s.tiles, t)
	return true, nil
}

// Tiles returns the distinct tiles in insertion order.
func (s *TileSet) Tiles() []*Tile {
	return s.tiles
}
