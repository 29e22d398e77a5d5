package plan

import (
	"fmt"

	"gopkg.in/src-d/go-lattice.v0/sql"
)

type joinNode struct {
	BinaryNode
	// Cond is the join condition.
	Cond sql.Expression
}

// InnerJoin is a join between two tables over an arbitrary condition.
type InnerJoin struct {
	joinNode
}

// NewInnerJoin creates a new inner join node from two tables.
func NewInnerJoin(left, right sql.Node, cond sql.Expression) *InnerJoin {
	return &InnerJoin{joinNode{BinaryNode{Left: left, Right: right}, cond}}
}

func (j *InnerJoin) String() string {
	return fmt.Sprintf("InnerJoin(%s)", j.Cond)
}

// LeftJoin is a left outer join between two tables.
type LeftJoin struct {
	joinNode
}

// NewLeftJoin creates a new left outer join node from two tables.
func NewLeftJoin(left, right sql.Node, cond sql.Expression) *LeftJoin {
	return &LeftJoin{joinNode{BinaryNode{Left: left, Right: right}, cond}}
}

func (j *LeftJoin) String() string {
	return fmt.Sprintf("LeftJoin(%s)", j.Cond)
}

// RightJoin is a right outer join between two tables.
type RightJoin struct {
	joinNode
}

// NewRightJoin creates a new right outer join node from two tables.
func NewRightJoin(left, right sql.Node, cond sql.Expression) *RightJoin {
	return &RightJoin{joinNode{BinaryNode{Left: left, Right: right}, cond}}
}

func (j *RightJoin) String() string {
	return fmt.Sprintf("RightJoin(%s)", j.Cond)
}

// CrossJoin is a cross join between two tables.
type CrossJoin struct {
	BinaryNode
}

// NewCrossJoin creates a new cross join node from two tables.
func NewCrossJoin(left, right sql.Node) *CrossJoin {
	return &CrossJoin{BinaryNode{Left: left, Right: right}}
}

func (j *CrossJoin) String() string {
	return "CrossJoin"
}
