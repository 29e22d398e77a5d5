package materialize

import (
	"strings"

	"gopkg.in/src-d/go-lattice.v0/internal/similartext"
	"gopkg.in/src-d/go-lattice.v0/sql"
)

// aggregates is the set of aggregate function names a measure may use.
var aggregates = []string{"COUNT", "SUM"}

// ResolveAggregate returns the canonical name of the aggregate function with
// the given name, or ErrUnknownAggregate if it is not one of the recognized
// set.
func ResolveAggregate(name string) (string, error) {
	upper := strings.ToUpper(name)
	for _, agg := range aggregates {
		if agg == upper {
			return agg, nil
		}
	}
	return "", ErrUnknownAggregate.New(name, similartext.Find(aggregates, upper))
}

// Measure is an aggregation over zero or more lattice columns.
type Measure struct {
	// Agg is the canonical name of the aggregate function.
	Agg string
	// Args are the argument columns, in call order.
	Args []*Column
}

// NewMeasure creates a new Measure.
func NewMeasure(agg string, args ...*Column) *Measure {
	return &Measure{Agg: agg, Args: args}
}

// Compare compares two measures by function name, then lexicographically by
// argument ordinals; a shorter argument list sorts first when it is a prefix
// of the other.
func (m *Measure) Compare(o *Measure) int {
	if c := strings.Compare(m.Agg, o.Agg); c != 0 {
		return c
	}
	size := len(m.Args)
	if len(o.Args) < size {
		size = len(o.Args)
	}
	for i := 0; i < size; i++ {
		if c := m.Args[i].Compare(o.Args[i]); c != 0 {
			return c
		}
	}
	return len(m.Args) - len(o.Args)
}

// Equals reports whether both measures have the same function and arguments.
func (m *Measure) Equals(o *Measure) bool {
	return m.Compare(o) == 0
}

// ArgBitSet returns the set of distinct argument ordinals.
func (m *Measure) ArgBitSet() sql.FastIntSet {
	var s sql.FastIntSet
	for _, arg := range m.Args {
		s.Add(arg.Ordinal)
	}
	return s
}

// ArgOrdinals returns the ordinals of the arguments, in call order.
func (m *Measure) ArgOrdinals() []int {
	ordinals := make([]int, len(m.Args))
	for i, arg := range m.Args {
		ordinals[i] = arg.Ordinal
	}
	return ordinals
}

func (m *Measure) String() string {
	args := make([]string, len(m.Args))
	for i, arg := range m.Args {
		args[i] = arg.String()
	}
	return m.Agg + "(" + strings.Join(args, ", ") + ")"
}
