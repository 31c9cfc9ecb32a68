package rivara

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Node is a mesh vertex. Nodes are owned by the mesh node array and never
// move once inserted.
type Node struct {
	globalIndex int
	localIndex  int
	position    r3.Vec
	ownerProc   int
	label       int
}

func newNode(gid int, x r3.Vec, ownerProc, label int) *Node {
	return &Node{
		globalIndex: gid,
		localIndex:  -1,
		position:    x,
		ownerProc:   ownerProc,
		label:       label,
	}
}

func (n *Node) setLocalIndex(i int) {
	must(n.localIndex < 0, "node local index assigned twice")
	n.localIndex = i
}

func (n *Node) GlobalIndex() int   { return n.globalIndex }
func (n *Node) LocalIndex() int    { return n.localIndex }
func (n *Node) Position() r3.Vec   { return n.position }
func (n *Node) OwnerProc() int     { return n.ownerProc }
func (n *Node) Label() int         { return n.label }
func (n *Node) SetLabel(label int) { n.label = label }

func (n *Node) String() string {
	return fmt.Sprintf("N%d(%g,%g,%g)", n.globalIndex, n.position.X, n.position.Y, n.position.Z)
}
