package expression

import (
	"fmt"

	"gopkg.in/src-d/go-lattice.v0/sql"
)

// Alias is a node that gives a name to an expression.
type Alias struct {
	UnaryExpression
	name string
}

// NewAlias returns a new Alias node.
func NewAlias(child sql.Expression, name string) *Alias {
	return &Alias{UnaryExpression{child}, name}
}

// Name implements the Nameable interface.
func (e *Alias) Name() string { return e.name }

// Type implements the Expression interface.
func (e *Alias) Type() sql.Type {
	return e.Child.Type()
}

func (e *Alias) String() string {
	return fmt.Sprintf("%s AS %s", e.Child, e.name)
}

// Star represents the expansion of all the columns in scope.
type Star struct{}

// NewStar returns a new Star expression.
func NewStar() *Star { return &Star{} }

// Type implements the Expression interface.
func (*Star) Type() sql.Type { return sql.Null }

// Children implements the Expression interface.
func (*Star) Children() []sql.Expression { return nil }

func (*Star) String() string { return "*" }
