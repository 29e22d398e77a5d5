// Package model loads declarative lattice models. A model names a lattice,
// carries its defining join query and optionally declares default measures,
// tiles and scalar configuration. Loosely typed values ("a column alias, or
// a list of aliases") are normalized here, once, at the loading boundary;
// the lattice core only ever sees validated values.
package model

import (
	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v2"

	"github.com/spf13/cast"
)

var (
	// ErrMissingSQL is returned when a lattice model has no defining query.
	ErrMissingSQL = errors.NewKind("lattice model %q must have a sql attribute")

	// ErrInvalidMeasureArgs is returned when the args of a measure are not
	// a string or a list of strings.
	ErrInvalidMeasureArgs = errors.NewKind("measure arguments must be a string or a list of strings; argument: %v")

	// ErrInvalidColumnRef is returned when a column reference is not a
	// string or a list of 1 or 2 strings.
	ErrInvalidColumnRef = errors.NewKind("lattice column reference must be a string or a list of 1 or 2 strings; column: %v")
)

// Lattice is a declarative lattice model.
type Lattice struct {
	// Name of the lattice.
	Name string `yaml:"name"`
	// SQL is the join query defining the lattice shape.
	SQL string `yaml:"sql"`
	// Auto indicates whether to materialize tiles on demand as queries
	// are executed. Defaults to true.
	Auto *bool `yaml:"auto"`
	// Algorithm indicates whether to use a tile suggestion algorithm.
	Algorithm bool `yaml:"algorithm"`
	// AlgorithmMaxMillis is the maximum time to run the algorithm for.
	AlgorithmMaxMillis int64 `yaml:"algorithmMaxMillis"`
	// RowCountEstimate is the estimated number of rows of the fact table.
	RowCountEstimate *float64 `yaml:"rowCountEstimate"`
	// DefaultMeasures are measures that every tile includes.
	DefaultMeasures []Measure `yaml:"defaultMeasures"`
	// Tiles are the materialized aggregates to create up front.
	Tiles []Tile `yaml:"tiles"`
}

// Measure declares an aggregate over lattice columns. Args may be nil, a
// single column alias or a list of aliases.
type Measure struct {
	Agg  string      `yaml:"agg"`
	Args interface{} `yaml:"args"`
}

// Columns normalizes the loose Args value into a list of column aliases.
func (m Measure) Columns() ([]string, error) {
	if m.Args == nil {
		return nil, nil
	}
	if s, err := cast.ToStringE(m.Args); err == nil {
		return []string{s}, nil
	}
	if list, err := cast.ToStringSliceE(m.Args); err == nil {
		return list, nil
	}
	return nil, ErrInvalidMeasureArgs.New(m.Args)
}

// Tile declares a materialized aggregate of the lattice.
type Tile struct {
	// Dimensions are the column references to group by. Each is a column
	// alias or a [table, column] pair.
	Dimensions []interface{} `yaml:"dimensions"`
	// Measures are the aggregates of the tile.
	Measures []Measure `yaml:"measures"`
}

// ColumnRef is a validated reference to a lattice column: either a display
// alias, or a table/column pair.
type ColumnRef struct {
	Alias  string
	Table  string
	Column string
}

// Qualified reports whether the reference names the column by table and
// source column name instead of by alias.
func (r ColumnRef) Qualified() bool {
	return r.Table != ""
}

// DimensionRefs normalizes the loose dimension list of the tile.
func (t Tile) DimensionRefs() ([]ColumnRef, error) {
	var refs []ColumnRef
	for _, d := range t.Dimensions {
		ref, err := columnRef(d)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func columnRef(v interface{}) (ColumnRef, error) {
	if s, err := cast.ToStringE(v); err == nil {
		return ColumnRef{Alias: s}, nil
	}
	list, err := cast.ToStringSliceE(v)
	if err != nil {
		return ColumnRef{}, ErrInvalidColumnRef.New(v)
	}
	switch len(list) {
	case 1:
		return ColumnRef{Alias: list[0]}, nil
	case 2:
		return ColumnRef{Table: list[0], Column: list[1]}, nil
	default:
		return ColumnRef{}, ErrInvalidColumnRef.New(v)
	}
}

// Parse reads a lattice model from its YAML representation.
func Parse(data []byte) (*Lattice, error) {
	var l Lattice
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	if l.SQL == "" {
		return nil, ErrMissingSQL.New(l.Name)
	}
	return &l, nil
}
