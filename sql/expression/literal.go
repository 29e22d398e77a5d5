package expression

import (
	"fmt"

	"gopkg.in/src-d/go-lattice.v0/sql"
)

// Literal represents a literal expression (string, number, bool, ...).
type Literal struct {
	value     interface{}
	fieldType sql.Type
}

// NewLiteral creates a new Literal expression.
func NewLiteral(value interface{}, fieldType sql.Type) *Literal {
	return &Literal{value: value, fieldType: fieldType}
}

// Value returns the literal value.
func (p *Literal) Value() interface{} { return p.value }

// Type implements the Expression interface.
func (p *Literal) Type() sql.Type { return p.fieldType }

// Children implements the Expression interface.
func (p *Literal) Children() []sql.Expression { return nil }

func (p *Literal) String() string {
	switch v := p.value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}
