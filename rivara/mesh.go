package rivara

import (
	"fmt"
	"iter"
	"slices"

	"github.com/google/btree"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

const indexDegree = 32

type edgeEntry struct {
	key  EdgeKey
	edge *Edge
}

type faceEntry struct {
	key  FaceKey
	face *Face
}

type request struct {
	element      *Element
	targetVolume float64
}

// Mesh owns the nodes, edges, faces and root elements of a refinable mesh,
// along with the queue of pending refinement requests.
type Mesh struct {
	spatialDim int
	rank       int
	logger     *zap.Logger

	nextGID        int
	nextElementGID int
	numBisections  int

	nodes    []*Node
	gidToLID map[int]int
	edges    []*Edge
	faces    []*Face
	roots    []*Element

	edgeIndex *btree.BTreeG[edgeEntry]
	faceIndex *btree.BTreeG[faceEntry]

	queue []request
}

// Option configures a Mesh.
type Option func(*Mesh)

// WithLogger sets the logger used for refinement diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mesh) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRank tags the mesh with the partition rank of the process building it.
func WithRank(rank int) Option {
	return func(m *Mesh) {
		m.rank = rank
	}
}

// NewMesh returns an empty mesh of spatial dimension 2 (triangles) or 3
// (tetrahedra). Any other dimension panics.
func NewMesh(spatialDim int, opts ...Option) *Mesh {
	must(spatialDim == 2 || spatialDim == 3, fmt.Sprintf("unsupported spatial dimension %d", spatialDim))
	m := &Mesh{
		spatialDim: spatialDim,
		logger:     zap.NewNop(),
		gidToLID:   make(map[int]int),
		edgeIndex: btree.NewG(indexDegree, func(a, b edgeEntry) bool {
			return a.key.Less(b.key)
		}),
		faceIndex: btree.NewG(indexDegree, func(a, b faceEntry) bool {
			return a.key.Less(b.key)
		}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Mesh) SpatialDim() int    { return m.spatialDim }
func (m *Mesh) Rank() int          { return m.rank }
func (m *Mesh) NextGID() int       { return m.nextGID }
func (m *Mesh) NumBisections() int { return m.numBisections }

func (m *Mesh) insertNode(gid int, x r3.Vec, ownerProc, label int) *Node {
	_, dup := m.gidToLID[gid]
	must(!dup, fmt.Sprintf("duplicate node global id %d", gid))
	n := newNode(gid, x, ownerProc, label)
	n.setLocalIndex(len(m.nodes))
	m.nodes = append(m.nodes, n)
	m.gidToLID[gid] = n.localIndex
	m.nextGID = max(m.nextGID, gid+1)
	return n
}

// AddVertex appends a node and returns its local index. A negative gid takes
// the next unused global id.
func (m *Mesh) AddVertex(gid int, x r3.Vec, ownerProc, label int) int {
	if gid < 0 {
		gid = m.nextGID
	}
	return m.insertNode(gid, x, ownerProc, label).localIndex
}

// AddElement appends a root triangle (3 vertices) or tetrahedron (4 vertices)
// built on previously added vertices and returns its root index. Any other
// vertex count, or an unknown vertex id, panics.
func (m *Mesh) AddElement(gid int, vertexGIDs []int, ownerProc, label int) int {
	must(len(vertexGIDs) == 3 || len(vertexGIDs) == 4,
		fmt.Sprintf("element needs 3 or 4 vertices, got %d", len(vertexGIDs)))
	nodes := make([]*Node, len(vertexGIDs))
	for i, g := range vertexGIDs {
		lid, ok := m.gidToLID[g]
		must(ok, fmt.Sprintf("element %d references unknown vertex %d", gid, g))
		nodes[i] = m.nodes[lid]
	}
	if gid < 0 {
		gid = m.nextElementGID
	}
	el := newElement(m, gid, nodes, ownerProc, label)
	m.nextElementGID = max(m.nextElementGID, gid+1)
	m.roots = append(m.roots, el)
	return len(m.roots) - 1
}

func (m *Mesh) newChildElement(parent *Element, nodes []*Node) *Element {
	gid := m.nextElementGID
	m.nextElementGID++
	return newElement(m, gid, nodes, parent.ownerProc, parent.label)
}

// TryEdge returns the edge joining a and b, creating it on first use. The
// sign is +1 when (a,b) matches the direction the edge was created in and -1
// when reversed.
func (m *Mesh) TryEdge(a, b *Node) (*Edge, int) {
	if e, sign, ok := m.FindEdge(a, b); ok {
		return e, sign
	}
	e := newEdge(a, b)
	m.edges = append(m.edges, e)
	m.edgeIndex.ReplaceOrInsert(edgeEntry{key: e.key, edge: e})
	return e, 1
}

// FindEdge looks up the edge joining a and b without creating it.
func (m *Mesh) FindEdge(a, b *Node) (*Edge, int, bool) {
	ent, ok := m.edgeIndex.Get(edgeEntry{key: newEdgeKey(a.localIndex, b.localIndex)})
	if !ok {
		return nil, 0, false
	}
	if ent.edge.nodes[0] == a {
		return ent.edge, 1, true
	}
	return ent.edge, -1, true
}

// TryFace returns the face on nodes a, b and c, creating it on first use.
func (m *Mesh) TryFace(a, b, c *Node) *Face {
	if f, ok := m.FindFace(a, b, c); ok {
		return f
	}
	must(a != b && b != c && a != c, "degenerate face")
	f := &Face{
		key:         newFaceKey(a.localIndex, b.localIndex, c.localIndex),
		nodes:       [3]*Node{a, b, c},
		ownerProc:   min(a.ownerProc, b.ownerProc, c.ownerProc),
		globalIndex: len(m.faces),
	}
	m.faces = append(m.faces, f)
	m.faceIndex.ReplaceOrInsert(faceEntry{key: f.key, face: f})
	return f
}

// GetFace returns an existing face and panics if it was never created.
func (m *Mesh) GetFace(a, b, c *Node) *Face {
	f, ok := m.FindFace(a, b, c)
	must(ok, fmt.Sprintf("no face on nodes %d,%d,%d", a.globalIndex, b.globalIndex, c.globalIndex))
	return f
}

// FindFace looks up the face on nodes a, b and c without creating it.
func (m *Mesh) FindFace(a, b, c *Node) (*Face, bool) {
	ent, ok := m.faceIndex.Get(faceEntry{key: newFaceKey(a.localIndex, b.localIndex, c.localIndex)})
	return ent.face, ok
}

// RequestRefinement queues el to be split once if it is larger than
// targetVolume.
func (m *Mesh) RequestRefinement(el *Element, targetVolume float64) {
	m.queue = append(m.queue, request{element: el, targetVolume: targetVolume})
}

func (m *Mesh) QueueLen() int { return len(m.queue) }

// Refine drains the refinement queue, most recent request first.
func (m *Mesh) Refine() {
	requested, before := len(m.queue), m.numBisections
	for len(m.queue) > 0 {
		r := m.queue[len(m.queue)-1]
		m.queue = m.queue[:len(m.queue)-1]
		r.element.Refine(m, r.targetVolume)
	}
	m.logger.Info("refinement pass complete",
		zap.Int("requests", requested),
		zap.Int("bisections", m.numBisections-before),
		zap.Int("elements", m.NumElements()),
		zap.Int("nodes", len(m.nodes)),
	)
}

// closeHangingNodes bisects el, or the leaves beneath it, until none of them
// has a hanging node.
func (m *Mesh) closeHangingNodes(el *Element) {
	if el.HasChildren() {
		for _, leaf := range slices.Collect(el.Leaves()) {
			m.closeHangingNodes(leaf)
		}
		return
	}
	if el.HasHangingNode() {
		el.bisect(m)
	}
}

// NumElements counts the leaf elements, i.e. the current mesh.
func (m *Mesh) NumElements() int {
	n := 0
	for _, r := range m.roots {
		n += r.NumLeaves()
	}
	return n
}

func (m *Mesh) NumNodes() int              { return len(m.nodes) }
func (m *Mesh) Node(i int) *Node           { return m.nodes[i] }
func (m *Mesh) NumEdges() int              { return len(m.edges) }
func (m *Mesh) Edge(i int) *Edge           { return m.edges[i] }
func (m *Mesh) NumFaces() int              { return len(m.faces) }
func (m *Mesh) Face(i int) *Face           { return m.faces[i] }
func (m *Mesh) NumRootElements() int       { return len(m.roots) }
func (m *Mesh) RootElement(i int) *Element { return m.roots[i] }

// NodeByGID returns the node with global id gid, or nil.
func (m *Mesh) NodeByGID(gid int) *Node {
	lid, ok := m.gidToLID[gid]
	if !ok {
		return nil
	}
	return m.nodes[lid]
}

// Elements yields the current leaf elements, roots in insertion order.
func (m *Mesh) Elements() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		it := NewElementIterator(m)
		for it.HasMoreElements() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// SortedEdges yields every edge, refined or not, ordered by EdgeKey.
func (m *Mesh) SortedEdges() iter.Seq[*Edge] {
	return func(yield func(*Edge) bool) {
		m.edgeIndex.Ascend(func(ent edgeEntry) bool {
			return yield(ent.edge)
		})
	}
}
