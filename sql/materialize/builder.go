package materialize

import (
	"fmt"
	"strconv"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-lattice.v0/internal/similartext"
	"gopkg.in/src-d/go-lattice.v0/sql"
	"gopkg.in/src-d/go-lattice.v0/sql/expression"
	"gopkg.in/src-d/go-lattice.v0/sql/parse"
	"gopkg.in/src-d/go-lattice.v0/sql/plan"
)

// Builder accumulates the parts of a lattice and builds it. A Builder is
// single use and not safe for concurrent mutation; the Lattice it builds is
// immutable.
type Builder struct {
	nodes          []*Node
	columns        []*Column
	columnsByAlias map[string][]*Column
	uniqueNames    []string

	measures []*Measure
	tiles    []*Tile

	auto               bool
	algorithm          bool
	algorithmMaxMillis int64
	rowCountEstimate   *float64
	dialect            sql.Dialect
	stats              sql.ColumnStatistics
	suggester          TileSuggester
}

// NewBuilder parses the given lattice query, validates that its equi-join
// graph collapses to a rooted tree and returns a Builder over that tree.
func NewBuilder(ctx *sql.Context, catalog sql.Catalog, query string) (*Builder, error) {
	span, ctx := ctx.Span("lattice.build",
		opentracing.Tag{Key: "query", Value: query})
	defer span.Finish()

	node, err := parse.Parse(ctx, catalog, query)
	if err != nil {
		return nil, err
	}

	var p populator
	if err := p.populate(node); err != nil {
		return nil, err
	}

	nodes, err := linearize(&p)
	if err != nil {
		return nil, err
	}

	var columns []*Column
	columnsByAlias := make(map[string][]*Column)
	for _, n := range nodes {
		for _, f := range n.Table.Schema() {
			c := &Column{
				Ordinal: len(columns),
				Table:   n.Alias,
				Name:    f.Name,
				Alias:   f.Name,
			}
			columns = append(columns, c)
			columnsByAlias[c.Alias] = append(columnsByAlias[c.Alias], c)
		}
	}

	logrus.WithFields(logrus.Fields{
		"tables":  len(nodes),
		"columns": len(columns),
	}).Debug("built lattice join tree")

	return &Builder{
		nodes:              nodes,
		columns:            columns,
		columnsByAlias:     columnsByAlias,
		uniqueNames:        uniquify(columns),
		auto:               true,
		algorithmMaxMillis: -1,
		dialect:            sql.DefaultDialect,
		stats:              sql.PlaceholderStatistics,
	}, nil
}

// Auto sets whether tiles are recommended as queries are seen.
// Default: true.
func (b *Builder) Auto(auto bool) *Builder {
	b.auto = auto
	return b
}

// Algorithm sets whether ComputeTiles delegates to a tile suggestion
// algorithm. Default: false.
func (b *Builder) Algorithm(algorithm bool) *Builder {
	b.algorithm = algorithm
	return b
}

// AlgorithmMaxMillis sets the soft time budget granted to the tile
// suggestion algorithm. Default: -1, no budget.
func (b *Builder) AlgorithmMaxMillis(millis int64) *Builder {
	b.algorithmMaxMillis = millis
	return b
}

// RowCountEstimate sets the estimated number of rows of the fact table.
func (b *Builder) RowCountEstimate(rows float64) *Builder {
	b.rowCountEstimate = &rows
	return b
}

// Dialect sets the dialect used to quote identifiers in synthesized SQL.
func (b *Builder) Dialect(d sql.Dialect) *Builder {
	b.dialect = d
	return b
}

// Statistics sets the column statistics provider used to estimate row
// counts.
func (b *Builder) Statistics(s sql.ColumnStatistics) *Builder {
	b.stats = s
	return b
}

// Suggester sets the tile suggestion algorithm used when Algorithm is
// enabled.
func (b *Builder) Suggester(s TileSuggester) *Builder {
	b.suggester = s
	return b
}

// AddMeasure adds a default measure to the lattice.
func (b *Builder) AddMeasure(m *Measure) {
	b.measures = append(b.measures, m)
}

// AddTile adds a pre-declared tile to the lattice.
func (b *Builder) AddTile(t *Tile) {
	b.tiles = append(b.tiles, t)
}

// Build builds the lattice. The row count estimate defaults to 1000 rows
// when it was not set.
func (b *Builder) Build() (*Lattice, error) {
	// TODO: derive the default estimate from the statistics provider once
	// providers report table row counts.
	estimate := 1000.0
	if b.rowCountEstimate != nil {
		estimate = *b.rowCountEstimate
	}
	return newLattice(
		b.nodes, b.columns, b.uniqueNames, b.measures, b.tiles,
		b.auto, b.algorithm, b.algorithmMaxMillis, estimate,
		b.dialect, b.stats, b.suggester,
	)
}

// ResolveColumnByAlias looks up a column by display alias. The alias must
// resolve to exactly one column of the lattice.
func (b *Builder) ResolveColumnByAlias(name string) (*Column, error) {
	list := b.columnsByAlias[name]
	switch len(list) {
	case 0:
		return nil, ErrUnknownColumn.New(name,
			similartext.FindFromMap(b.columnsByAlias, name))
	case 1:
		return list[0], nil
	default:
		return nil, ErrAmbiguousColumnAlias.New(name)
	}
}

// ResolveQualifiedColumn looks up a column by table alias and source column
// name.
func (b *Builder) ResolveQualifiedColumn(table, column string) (*Column, error) {
	for _, c := range b.columns {
		if c.Table == table && c.Name == column {
			return c, nil
		}
	}
	return nil, ErrUnknownColumn.New(table+"."+column, "")
}

// ResolveArgs resolves a list of display aliases into columns.
func (b *Builder) ResolveArgs(args []string) ([]*Column, error) {
	var columns []*Column
	for _, arg := range args {
		c, err := b.ResolveColumnByAlias(arg)
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	return columns, nil
}

// ResolveMeasure resolves an aggregate function name and a list of column
// aliases into a measure.
func (b *Builder) ResolveMeasure(agg string, args []string) (*Measure, error) {
	name, err := ResolveAggregate(agg)
	if err != nil {
		return nil, err
	}
	columns, err := b.ResolveArgs(args)
	if err != nil {
		return nil, err
	}
	return NewMeasure(name, columns...), nil
}

// leafScan is a table discovered while decomposing the join tree.
type leafScan struct {
	table  sql.Table
	alias  string
	fields int
}

// fieldRef points at one field of one leaf.
type fieldRef struct {
	leaf  int
	field int
}

// populator decomposes the relational tree of a lattice query into its leaf
// tables and the field equalities of its join conditions.
type populator struct {
	leaves []*leafScan
	links  [][2]fieldRef
}

func (p *populator) populate(node sql.Node) error {
	switch n := node.(type) {
	case *plan.Project:
		// A single projection on top of the join tree is allowed.
		if len(p.leaves) == 0 {
			return p.populate(n.Child)
		}
		return ErrInvalidLatticeQuery.New(node)
	case *plan.TableAlias:
		rt, ok := n.Child.(*plan.ResolvedTable)
		if !ok {
			return ErrInvalidLatticeQuery.New(n.Child)
		}
		p.addLeaf(rt.Table, n.Name())
		return nil
	case *plan.ResolvedTable:
		p.addLeaf(n.Table, n.Name())
		return nil
	case *plan.InnerJoin:
		if err := p.populate(n.Left); err != nil {
			return err
		}
		if err := p.populate(n.Right); err != nil {
			return err
		}
		for _, conjunct := range expression.SplitConjunction(n.Cond) {
			if err := p.grab(conjunct); err != nil {
				return err
			}
		}
		return nil
	case *plan.LeftJoin:
		return ErrUnsupportedJoinType.New("LEFT JOIN")
	case *plan.RightJoin:
		return ErrUnsupportedJoinType.New("RIGHT JOIN")
	case *plan.CrossJoin:
		return ErrUnsupportedJoinType.New("CROSS JOIN")
	default:
		return ErrInvalidLatticeQuery.New(node)
	}
}

func (p *populator) addLeaf(table sql.Table, alias string) {
	p.leaves = append(p.leaves, &leafScan{
		table:  table,
		alias:  alias,
		fields: len(table.Schema()),
	})
}

// grab converts a "t1.c1 = t2.c2" conjunct into a pair of field references.
func (p *populator) grab(conjunct sql.Expression) error {
	eq, ok := conjunct.(*expression.Equals)
	if !ok {
		return ErrUnsupportedJoinCondition.New(conjunct)
	}

	left, err := p.inputField(eq.Left)
	if err != nil {
		return err
	}
	right, err := p.inputField(eq.Right)
	if err != nil {
		return err
	}

	p.links = append(p.links, [2]fieldRef{left, right})
	return nil
}

// inputField converts a field expression into a (leaf, field) pair using the
// field counts of the leaves in discovery order.
func (p *populator) inputField(e sql.Expression) (fieldRef, error) {
	field, ok := e.(*expression.GetField)
	if !ok {
		return fieldRef{}, ErrUnsupportedJoinCondition.New(e)
	}

	start := 0
	for i, l := range p.leaves {
		end := start + l.fields
		if field.Index() < end {
			return fieldRef{leaf: i, field: field.Index() - start}, nil
		}
		start = end
	}
	return fieldRef{}, ErrUnsupportedJoinCondition.New(e)
}

// edge of the temporary join graph. One edge exists per ordered leaf pair,
// accumulating every field equality found for that pair.
type edge struct {
	source, target int
	pairs          []FieldPair
}

// linearize builds the temporary directed multigraph over the leaves,
// computes a topological order and materializes the leaves into lattice
// nodes, each connected to a parent and with a join condition to that
// parent.
func linearize(p *populator) ([]*Node, error) {
	edges := make(map[[2]int]*edge)
	var keys [][2]int
	for _, link := range p.links {
		key := [2]int{link[0].leaf, link[1].leaf}
		e := edges[key]
		if e == nil {
			e = &edge{source: key[0], target: key[1]}
			edges[key] = e
			keys = append(keys, key)
		}
		e.pairs = append(e.pairs, FieldPair{
			Parent: link[0].field,
			Child:  link[1].field,
		})
	}

	n := len(p.leaves)
	inward := make([][]*edge, n)
	outward := make([][]*edge, n)
	for _, key := range keys {
		e := edges[key]
		inward[e.target] = append(inward[e.target], e)
		outward[e.source] = append(outward[e.source], e)
	}

	// Stable Kahn topological sort: ready leaves are visited in discovery
	// order.
	indegree := make([]int, n)
	var queue []int
	for i := range p.leaves {
		indegree[i] = len(inward[i])
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	var topo []int
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		topo = append(topo, v)
		for _, e := range outward[v] {
			indegree[e.target]--
			if indegree[e.target] == 0 {
				queue = append(queue, e.target)
			}
		}
	}
	if len(topo) != n {
		return nil, ErrUnsupportedNodeShape.New("tables join in a cycle")
	}

	nodes := make([]*Node, 0, n)
	byLeaf := make(map[int]*Node, n)
	col := 0
	for i, v := range topo {
		l := p.leaves[v]
		start := col
		col += l.fields

		var node *Node
		if i == 0 {
			if len(inward[v]) != 0 {
				return nil, ErrUnsupportedNodeShape.New(
					fmt.Sprintf("root node %s must not have relationships", l.alias))
			}
			node = &Node{
				Table:    l.table,
				Alias:    l.alias,
				StartCol: start,
				EndCol:   col,
			}
		} else {
			if len(inward[v]) != 1 {
				return nil, ErrUnsupportedNodeShape.New(
					fmt.Sprintf("node %s must have precisely one parent", l.alias))
			}
			e := inward[v][0]
			node = &Node{
				Table:    l.table,
				Alias:    l.alias,
				Parent:   byLeaf[e.source],
				Link:     e.pairs,
				StartCol: start,
				EndCol:   col,
			}
		}
		byLeaf[v] = node
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// uniquify returns one collision-free name per column, appending numeric
// suffixes to later duplicates.
func uniquify(columns []*Column) []string {
	used := make(map[string]struct{}, len(columns))
	names := make([]string, len(columns))
	for i, c := range columns {
		name := c.Alias
		if _, ok := used[name]; ok {
			for j := 0; ; j++ {
				candidate := c.Alias + strconv.Itoa(j)
				if _, ok := used[candidate]; !ok {
					name = candidate
					break
				}
			}
		}
		used[name] = struct{}{}
		names[i] = name
	}
	return names
}
