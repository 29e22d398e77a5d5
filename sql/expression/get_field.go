package expression

import (
	"fmt"

	"gopkg.in/src-d/go-lattice.v0/sql"
)

// GetField is an expression to get the field of a table. The field index is
// global: it is relative to the concatenated row of every table in scope, in
// left-to-right discovery order.
type GetField struct {
	table      string
	fieldIndex int
	name       string
	fieldType  sql.Type
	nullable   bool
}

// NewGetField creates a GetField expression.
func NewGetField(index int, fieldType sql.Type, fieldName string, nullable bool) *GetField {
	return NewGetFieldWithTable(index, fieldType, "", fieldName, nullable)
}

// NewGetFieldWithTable creates a GetField expression with table name. The
// table name may be an alias.
func NewGetFieldWithTable(index int, fieldType sql.Type, table, fieldName string, nullable bool) *GetField {
	return &GetField{
		table:      table,
		fieldIndex: index,
		name:       fieldName,
		fieldType:  fieldType,
		nullable:   nullable,
	}
}

// Index returns the global index of the field.
func (p *GetField) Index() int { return p.fieldIndex }

// Table returns the name of the field table.
func (p *GetField) Table() string { return p.table }

// Name returns the name of the field.
func (p *GetField) Name() string { return p.name }

// Type returns the type of the field.
func (p *GetField) Type() sql.Type { return p.fieldType }

// IsNullable returns whether the field is nullable or not.
func (p *GetField) IsNullable() bool { return p.nullable }

// Children implements the Expression interface.
func (p *GetField) Children() []sql.Expression { return nil }

func (p *GetField) String() string {
	if p.table == "" {
		return p.name
	}
	return fmt.Sprintf("%s.%s", p.table, p.name)
}
