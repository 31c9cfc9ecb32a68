package rivara

import (
	"fmt"

	"github.com/notargets/rivara/tree"
	"gonum.org/v1/gonum/spatial/r3"
)

// EdgeKey identifies an edge by the local indices of its endpoints, smaller
// index first.
type EdgeKey struct {
	Lo, Hi int
}

func newEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{Lo: a, Hi: b}
}

func (k EdgeKey) Less(other EdgeKey) bool {
	if k.Lo != other.Lo {
		return k.Lo < other.Lo
	}
	return k.Hi < other.Hi
}

// Edge is a mesh edge shared by every element that bounds it. Bisecting an
// edge makes its two halves the children of its refinement tree.
type Edge struct {
	tree.Node[*Edge]

	key       EdgeKey
	nodes     [2]*Node // creation order
	ownerProc int
	label     int
	midpoint  *Node
	elements  []*Element
}

func newEdge(a, b *Node) *Edge {
	must(a != b, "degenerate edge")
	e := &Edge{
		key:       newEdgeKey(a.localIndex, b.localIndex),
		nodes:     [2]*Node{a, b},
		ownerProc: min(a.ownerProc, b.ownerProc),
	}
	e.Bind(e)
	return e
}

func (e *Edge) Key() EdgeKey { return e.key }

// Endpoint returns endpoint 0 or 1 in creation order.
func (e *Edge) Endpoint(i int) *Node { return e.nodes[i] }

func (e *Edge) OwnerProc() int         { return e.ownerProc }
func (e *Edge) SetOwnerProc(owner int) { e.ownerProc = owner }
func (e *Edge) Label() int             { return e.label }
func (e *Edge) SetLabel(label int)     { e.label = label }

// Midpoint is nil until the edge is bisected.
func (e *Edge) Midpoint() *Node { return e.midpoint }

func (e *Edge) Length() float64 {
	return r3.Norm(r3.Sub(e.nodes[1].position, e.nodes[0].position))
}

// AddConnectingElement records el as bounded by e.
func (e *Edge) AddConnectingElement(el *Element) {
	e.elements = append(e.elements, el)
}

// ConnectingElements returns every element ever built on e, refined or not.
func (e *Edge) ConnectingElements() []*Element {
	return e.elements
}

// UnrefinedCofacets returns the connecting elements that are still leaves.
func (e *Edge) UnrefinedCofacets() []*Element {
	var out []*Element
	for _, el := range e.elements {
		if el.IsLeaf() {
			out = append(out, el)
		}
	}
	return out
}

// Bisect splits e at its midpoint and returns the midpoint node. Repeated
// calls return the same node and leave the two half-edges untouched.
func (e *Edge) Bisect(m *Mesh) *Node {
	if e.midpoint != nil {
		return e.midpoint
	}
	x := r3.Scale(0.5, r3.Add(e.nodes[0].position, e.nodes[1].position))
	mid := m.insertNode(m.nextGID, x, e.ownerProc, e.label)
	left, _ := m.TryEdge(e.nodes[0], mid)
	right, _ := m.TryEdge(mid, e.nodes[1])
	for _, half := range []*Edge{left, right} {
		half.label = e.label
		half.ownerProc = e.ownerProc
	}
	e.SetChildren(&left.Node, &right.Node)
	e.midpoint = mid
	return mid
}

func (e *Edge) String() string {
	return fmt.Sprintf("E(%d,%d)", e.nodes[0].globalIndex, e.nodes[1].globalIndex)
}
