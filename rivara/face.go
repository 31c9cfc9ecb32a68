package rivara

import (
	"fmt"
	"slices"
)

// FaceKey is the sorted triple of local node indices of a face.
type FaceKey [3]int

func newFaceKey(a, b, c int) FaceKey {
	k := FaceKey{a, b, c}
	slices.Sort(k[:])
	return k
}

func (k FaceKey) Less(other FaceKey) bool {
	for i := range k {
		if k[i] != other[i] {
			return k[i] < other[i]
		}
	}
	return false
}

// Face is a triangular face of a tetrahedral mesh. Faces carry identity and
// labels only; they are not refined themselves.
type Face struct {
	key         FaceKey
	nodes       [3]*Node // creation order
	ownerProc   int
	label       int
	globalIndex int
	elements    []*Element
}

func (f *Face) Key() FaceKey { return f.key }

func (f *Face) Less(other *Face) bool { return f.key.Less(other.key) }

func (f *Face) Equal(other *Face) bool { return f.key == other.key }

// Vertex returns one of the three nodes in creation order.
func (f *Face) Vertex(i int) *Node { return f.nodes[i] }

func (f *Face) OwnerProc() int         { return f.ownerProc }
func (f *Face) SetOwnerProc(owner int) { f.ownerProc = owner }
func (f *Face) Label() int             { return f.label }
func (f *Face) SetLabel(label int)     { f.label = label }

// GlobalIndex is the creation order of the face within its mesh.
func (f *Face) GlobalIndex() int { return f.globalIndex }

// ConnectingElements returns every element ever built on f.
func (f *Face) ConnectingElements() []*Element { return f.elements }

// contains reports whether n is a vertex of f.
func (f *Face) contains(n *Node) bool {
	return f.nodes[0] == n || f.nodes[1] == n || f.nodes[2] == n
}

func (f *Face) String() string {
	return fmt.Sprintf("F(%d,%d,%d)", f.nodes[0].globalIndex, f.nodes[1].globalIndex, f.nodes[2].globalIndex)
}
