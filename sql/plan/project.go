package plan

import (
	"strings"

	"gopkg.in/src-d/go-lattice.v0/sql"
)

// Project is a projection of certain expressions from the children node.
type Project struct {
	UnaryNode
	// Projections are the expressions in the SELECT list.
	Projections []sql.Expression
}

// NewProject creates a projection of certain expressions from the children
// node.
func NewProject(projections []sql.Expression, child sql.Node) *Project {
	return &Project{
		UnaryNode:   UnaryNode{Child: child},
		Projections: projections,
	}
}

func (p *Project) String() string {
	var exprs = make([]string, len(p.Projections))
	for i, e := range p.Projections {
		exprs[i] = e.String()
	}
	return "Project(" + strings.Join(exprs, ", ") + ")"
}
