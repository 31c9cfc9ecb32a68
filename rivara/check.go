package rivara

import (
	"fmt"

	"github.com/notargets/rivara/tree"
)

// Check verifies the structural invariants of the mesh. It is meant for tests
// and debugging; every error wraps ErrInvariant.
func (m *Mesh) Check() error {
	if err := m.checkNodes(); err != nil {
		return err
	}
	if err := m.checkEdges(); err != nil {
		return err
	}
	if err := m.checkFaces(); err != nil {
		return err
	}
	return m.checkElements()
}

func (m *Mesh) checkNodes() error {
	if len(m.gidToLID) != len(m.nodes) {
		return fmt.Errorf("%w: %d nodes but %d global ids", ErrInvariant, len(m.nodes), len(m.gidToLID))
	}
	for i, n := range m.nodes {
		if n.localIndex != i {
			return fmt.Errorf("%w: node at %d has local index %d", ErrInvariant, i, n.localIndex)
		}
		if lid, ok := m.gidToLID[n.globalIndex]; !ok || lid != i {
			return fmt.Errorf("%w: node %d is not indexed by its global id", ErrInvariant, n.globalIndex)
		}
		if n.globalIndex >= m.nextGID {
			return fmt.Errorf("%w: node global id %d not below next id %d", ErrInvariant, n.globalIndex, m.nextGID)
		}
	}
	return nil
}

func (m *Mesh) checkEdges() error {
	if m.edgeIndex.Len() != len(m.edges) {
		return fmt.Errorf("%w: %d edges but %d indexed", ErrInvariant, len(m.edges), m.edgeIndex.Len())
	}
	for _, e := range m.edges {
		if e.key != newEdgeKey(e.nodes[0].localIndex, e.nodes[1].localIndex) {
			return fmt.Errorf("%w: edge %v has stale key %v", ErrInvariant, e, e.key)
		}
		ent, ok := m.edgeIndex.Get(edgeEntry{key: e.key})
		if !ok || ent.edge != e {
			return fmt.Errorf("%w: edge %v is not the indexed edge for its key", ErrInvariant, e)
		}
		if (e.midpoint != nil) != e.HasChildren() {
			return fmt.Errorf("%w: edge %v midpoint and children disagree", ErrInvariant, e)
		}
		if e.midpoint != nil {
			l, r := e.Left().Item(), e.Right().Item()
			if l.nodes[0] != e.nodes[0] || l.nodes[1] != e.midpoint ||
				r.nodes[0] != e.midpoint || r.nodes[1] != e.nodes[1] {
				return fmt.Errorf("%w: edge %v has mismatched halves %v %v", ErrInvariant, e, l, r)
			}
		}
	}
	return nil
}

func (m *Mesh) checkFaces() error {
	if m.faceIndex.Len() != len(m.faces) {
		return fmt.Errorf("%w: %d faces but %d indexed", ErrInvariant, len(m.faces), m.faceIndex.Len())
	}
	for i, f := range m.faces {
		if f.globalIndex != i {
			return fmt.Errorf("%w: face %v at %d has index %d", ErrInvariant, f, i, f.globalIndex)
		}
		ent, ok := m.faceIndex.Get(faceEntry{key: f.key})
		if !ok || ent.face != f {
			return fmt.Errorf("%w: face %v is not the indexed face for its key", ErrInvariant, f)
		}
	}
	return nil
}

func (m *Mesh) checkElements() error {
	gids := make(map[int]bool)
	var walk func(n *tree.Node[*Element]) error
	walk = func(n *tree.Node[*Element]) error {
		el := n.Item()
		if gids[el.globalIndex] {
			return fmt.Errorf("%w: element global id %d used twice", ErrInvariant, el.globalIndex)
		}
		gids[el.globalIndex] = true
		if n.IsLeaf() {
			if n.NumLeaves() != 1 {
				return fmt.Errorf("%w: leaf %v counts %d leaves", ErrInvariant, el, n.NumLeaves())
			}
			if len(m.queue) == 0 && el.HasHangingNode() {
				return fmt.Errorf("%w: element %v has a hanging node", ErrInvariant, el)
			}
			return nil
		}
		l, r := n.Left(), n.Right()
		if l.Parent() != n || r.Parent() != n {
			return fmt.Errorf("%w: children of %v do not point back to it", ErrInvariant, el)
		}
		if n.NumLeaves() != l.NumLeaves()+r.NumLeaves() {
			return fmt.Errorf("%w: leaf count of %v is not additive", ErrInvariant, el)
		}
		if err := walk(l); err != nil {
			return err
		}
		return walk(r)
	}
	for _, root := range m.roots {
		if !root.IsRoot() {
			return fmt.Errorf("%w: root element %v has a parent", ErrInvariant, root)
		}
		if err := walk(&root.Node); err != nil {
			return err
		}
	}
	return nil
}
