package materialize

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-lattice.v0/sql"
)

// TileSuggester proposes tiles worth materializing for a lattice. It is an
// external capability; implementations are expected to honor the context
// deadline as a soft budget.
type TileSuggester interface {
	// SuggestTiles returns recommended tiles for the lattice.
	SuggestTiles(ctx *sql.Context, l *Lattice) ([]*Tile, error)
}

// ComputeTiles returns the tiles of the lattice: the declared tiles
// verbatim or, when the algorithm attribute is enabled, the declared tiles
// merged with the ones proposed by the configured suggester, bounded by
// AlgorithmMaxMillis. Structurally equal tiles are returned once.
func (l *Lattice) ComputeTiles(ctx *sql.Context) ([]*Tile, error) {
	if !l.Algorithm {
		return l.Tiles, nil
	}
	if l.suggester == nil {
		logrus.Warn("lattice algorithm enabled but no tile suggester configured")
		return l.Tiles, nil
	}

	span, ctx := ctx.Span("lattice.compute_tiles")
	defer span.Finish()

	sctx := ctx
	if l.AlgorithmMaxMillis > 0 {
		c, cancel := context.WithTimeout(ctx,
			time.Duration(l.AlgorithmMaxMillis)*time.Millisecond)
		defer cancel()
		sctx = ctx.WithContext(c)
	}

	suggested, err := l.suggester.SuggestTiles(sctx, l)
	if err != nil {
		return nil, err
	}

	set := NewTileSet()
	for _, t := range l.Tiles {
		if _, err := set.Add(t); err != nil {
			return nil, err
		}
	}
	for _, t := range suggested {
		if _, err := set.Add(t); err != nil {
			return nil, err
		}
	}
	return set.Tiles(), nil
}
