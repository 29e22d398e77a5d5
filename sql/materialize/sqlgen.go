package materialize

import (
	"strconv"
	"strings"

	"gopkg.in/src-d/go-lattice.v0/sql"
)

// SQL synthesizes the query that computes the aggregate of the given group
// columns and measures over the lattice. Only the tables needed to make the
// requested columns selectable are joined: a node is used if one of its
// columns is required or if it is the ancestor of a used node.
//
// The result is plain text; it is never parsed, validated or executed here.
func (l *Lattice) SQL(groupSet sql.FastIntSet, measures []*Measure) string {
	columnSet := groupSet.Copy()
	for _, m := range measures {
		for _, arg := range m.Args {
			columnSet.Add(arg.Ordinal)
		}
	}

	var usedNodes []*Node
	for _, node := range l.Nodes {
		if rangeIntersects(columnSet, node.StartCol, node.EndCol) {
			usedNodes = use(usedNodes, node)
		}
	}
	if len(usedNodes) == 0 {
		usedNodes = append(usedNodes, l.Nodes[0])
	}

	d := l.dialect
	var buf, groupBuf strings.Builder
	buf.WriteString("SELECT ")
	groupBuf.WriteString("\nGROUP BY ")
	k := 0
	names := make(map[string]struct{})
	groupSet.ForEach(func(i int) {
		if k > 0 {
			buf.WriteString(", ")
			groupBuf.WriteString(", ")
		}
		k++
		column := l.Columns[i]
		identifier := d.QuoteIdentifier(column.identifiers()...)
		buf.WriteString(identifier)
		groupBuf.WriteString(identifier)
		fieldName := l.UniqueColumnNames[i]
		names[fieldName] = struct{}{}
		if column.Alias != fieldName {
			buf.WriteString(" AS ")
			buf.WriteString(d.QuoteIdentifier(fieldName))
		}
	})
	if groupSet.Empty() {
		groupBuf.WriteString("()")
	}

	m := 0
	for _, measure := range measures {
		if k > 0 {
			buf.WriteString(", ")
		}
		k++
		buf.WriteString(measure.Agg)
		buf.WriteString("(")
		if len(measure.Args) == 0 {
			buf.WriteString("*")
		} else {
			for z, arg := range measure.Args {
				if z > 0 {
					buf.WriteString(", ")
				}
				buf.WriteString(d.QuoteIdentifier(arg.identifiers()...))
			}
		}
		buf.WriteString(") AS ")
		var measureName string
		for {
			measureName = "m" + strconv.Itoa(m)
			if _, taken := names[measureName]; !taken {
				break
			}
			m++
		}
		names[measureName] = struct{}{}
		buf.WriteString(d.QuoteIdentifier(measureName))
	}

	buf.WriteString("\nFROM ")
	for _, node := range usedNodes {
		if node.Parent != nil {
			buf.WriteString("\nJOIN ")
		}
		buf.WriteString(d.QuoteIdentifier(node.Table.Name()))
		buf.WriteString(" AS ")
		buf.WriteString(d.QuoteIdentifier(node.Alias))
		if node.Parent != nil {
			buf.WriteString(" ON ")
			for i, pair := range node.Link {
				if i > 0 {
					buf.WriteString(" AND ")
				}
				child := l.Columns[node.StartCol+pair.Child]
				parent := l.Columns[node.Parent.StartCol+pair.Parent]
				buf.WriteString(d.QuoteIdentifier(child.identifiers()...))
				buf.WriteString(" = ")
				buf.WriteString(d.QuoteIdentifier(parent.identifiers()...))
			}
		}
	}

	buf.WriteString(groupBuf.String())
	return buf.String()
}

// use adds the node to the used list, inserting its ancestors before it, so
// the list stays in root-first order.
func use(used []*Node, node *Node) []*Node {
	for _, n := range used {
		if n == node {
			return used
		}
	}
	if node.Parent != nil {
		used = use(used, node.Parent)
	}
	return append(used, node)
}

func rangeIntersects(s sql.FastIntSet, start, end int) bool {
	for i := start; i < end; i++ {
		if s.Contains(i) {
			return true
		}
	}
	return false
}
