package plan

import "gopkg.in/src-d/go-lattice.v0/sql"

// UnaryNode is a node that has only one child.
type UnaryNode struct {
	Child sql.Node
}

// Schema implements the Node interface.
func (n *UnaryNode) Schema() sql.Schema {
	return n.Child.Schema()
}

// Children implements the Node interface.
func (n *UnaryNode) Children() []sql.Node {
	return []sql.Node{n.Child}
}

// BinaryNode is a node with two children.
type BinaryNode struct {
	Left  sql.Node
	Right sql.Node
}

// Schema implements the Node interface. The resulting row shape is the
// concatenation of the left and right schemas.
func (n *BinaryNode) Schema() sql.Schema {
	return append(n.Left.Schema(), n.Right.Schema()...)
}

// Children implements the Node interface.
func (n *BinaryNode) Children() []sql.Node {
	return []sql.Node{n.Left, n.Right}
}
