package rivara

import "github.com/notargets/rivara/tree"

// ElementIterator walks the leaf elements of a mesh, left to right within each
// root tree and roots in insertion order.
type ElementIterator struct {
	mesh      *Mesh
	rootIndex int
	current   *tree.Node[*Element]
}

func NewElementIterator(m *Mesh) *ElementIterator {
	it := &ElementIterator{mesh: m}
	it.Restart()
	return it
}

// Restart rewinds the iterator to the first leaf of the first root.
func (it *ElementIterator) Restart() {
	it.rootIndex = 0
	it.current = nil
	if len(it.mesh.roots) > 0 {
		it.current = it.mesh.roots[0].First()
	}
}

func (it *ElementIterator) HasMoreElements() bool {
	return it.current != nil
}

// Next returns the current leaf and advances, or nil once exhausted.
func (it *ElementIterator) Next() *Element {
	if it.current == nil {
		return nil
	}
	el := it.current.Item()
	next := it.current.Next()
	if next == nil {
		it.rootIndex++
		if it.rootIndex < len(it.mesh.roots) {
			next = it.mesh.roots[it.rootIndex].First()
		}
	}
	it.current = next
	return el
}
