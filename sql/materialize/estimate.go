package materialize

import (
	"math"
	"math/big"
)

// RowCount returns an estimate of the number of rows of the aggregate of the
// lattice over the given columns.
//
// The expected number of distinct values when choosing f values with
// replacement from n integers is n * (1 - ((n - 1) / n) ^ f). Several
// uniformly distributed attributes with n1 ... nm distinct values behave as
// one uniformly distributed attribute with n1 * ... * nm distinct values.
func (l *Lattice) RowCount(columns []*Column) float64 {
	if len(columns) == 0 {
		return 0
	}
	n := big.NewInt(1)
	for _, column := range columns {
		if c := l.cardinality(column); c > 1 {
			n.Mul(n, big.NewInt(int64(c)))
		}
	}
	nn, _ := new(big.Float).SetInt(n).Float64()
	f := l.FactRowCount()
	if math.IsInf(nn, 1) {
		return f
	}
	a := (nn - 1) / nn
	if a == 1 {
		// a under-flows when nn is large; every row is distinct.
		return f
	}
	v := nn * (1 - math.Pow(a, f))
	// Cap at the fact row count, because numerical artifacts can cause v
	// to go a few % over.
	return math.Min(v, f)
}

// cardinality returns the approximate number of distinct values of the
// column. When the statistics provider has no value, the length of the
// display alias stands in.
// TODO: drop the fallback once every embedder injects real statistics.
func (l *Lattice) cardinality(c *Column) int {
	if v, ok := l.stats.Cardinality(c.Alias); ok && v > 0 {
		return v
	}
	return len(c.Alias)
}
