package expression

import (
	"fmt"

	"gopkg.in/src-d/go-lattice.v0/sql"
)

type comparison struct {
	BinaryExpression
}

// Type implements the Expression interface.
func (comparison) Type() sql.Type {
	return sql.Boolean
}

// Equals is a comparison that checks an expression is equal to another.
type Equals struct {
	comparison
}

// NewEquals returns a new Equals expression.
func NewEquals(left, right sql.Expression) *Equals {
	return &Equals{comparison{BinaryExpression{Left: left, Right: right}}}
}

func (e *Equals) String() string {
	return fmt.Sprintf("%s = %s", e.Left, e.Right)
}

// LessThan is a comparison that checks an expression is less than another.
type LessThan struct {
	comparison
}

// NewLessThan returns a new LessThan expression.
func NewLessThan(left, right sql.Expression) *LessThan {
	return &LessThan{comparison{BinaryExpression{Left: left, Right: right}}}
}

func (e *LessThan) String() string {
	return fmt.Sprintf("%s < %s", e.Left, e.Right)
}

// GreaterThan is a comparison that checks an expression is greater than
// another.
type GreaterThan struct {
	comparison
}

// NewGreaterThan returns a new GreaterThan expression.
func NewGreaterThan(left, right sql.Expression) *GreaterThan {
	return &GreaterThan{comparison{BinaryExpression{Left: left, Right: right}}}
}

func (e *GreaterThan) String() string {
	return fmt.Sprintf("%s > %s", e.Left, e.Right)
}

// NotEquals is a comparison that checks an expression is not equal to
// another.
type NotEquals struct {
	comparison
}

// NewNotEquals returns a new NotEquals expression.
func NewNotEquals(left, right sql.Expression) *NotEquals {
	return &NotEquals{comparison{BinaryExpression{Left: left, Right: right}}}
}

func (e *NotEquals) String() string {
	return fmt.Sprintf("%s != %s", e.Left, e.Right)
}
