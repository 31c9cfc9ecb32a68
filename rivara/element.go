package rivara

import (
	"fmt"
	"math"
	"slices"

	"github.com/notargets/rivara/element"
	"github.com/notargets/rivara/tree"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Element is a triangle or tetrahedron. A leaf element is part of the current
// mesh; an element with children has been bisected and is history.
type Element struct {
	tree.Node[*Element]

	geometry    element.ElementGeometry
	nodes       []*Node
	edges       []*Edge // canonical order, see sortEdges
	edgeSigns   []int
	faces       []*Face
	ownerProc   int
	label       int
	globalIndex int
}

func newElement(m *Mesh, gid int, nodes []*Node, ownerProc, label int) *Element {
	geom, err := element.GeometryForVertexCount(len(nodes))
	must(err == nil && geom != element.Line, fmt.Sprintf("element needs 3 or 4 nodes, got %d", len(nodes)))
	must(geom == element.Tri || m.spatialDim == 3, "tetrahedron in a 2D mesh")

	el := &Element{
		geometry:    geom,
		nodes:       nodes,
		ownerProc:   ownerProc,
		label:       label,
		globalIndex: gid,
	}
	el.Bind(el)

	for _, ev := range element.EdgeVertices(geom) {
		e, sign := m.TryEdge(nodes[ev[0]], nodes[ev[1]])
		e.AddConnectingElement(el)
		el.edges = append(el.edges, e)
		el.edgeSigns = append(el.edgeSigns, sign)
	}
	el.sortEdges()

	for _, fv := range element.FaceVertices(geom) {
		f := m.TryFace(nodes[fv[0]], nodes[fv[1]], nodes[fv[2]])
		f.elements = append(f.elements, el)
		el.faces = append(el.faces, f)
	}
	return el
}

// sortEdges orders edges by (smaller endpoint global id, larger endpoint
// global id). Two elements sharing a face then list that face's edges in the
// same relative order, so equal-length ties resolve the same way on both.
func (el *Element) sortEdges() {
	perm := make([]int, len(el.edges))
	for i := range perm {
		perm[i] = i
	}
	gidKey := func(e *Edge) (int, int) {
		a, b := e.nodes[0].globalIndex, e.nodes[1].globalIndex
		return min(a, b), max(a, b)
	}
	slices.SortFunc(perm, func(i, j int) int {
		ai, bi := gidKey(el.edges[i])
		aj, bj := gidKey(el.edges[j])
		if ai != aj {
			return ai - aj
		}
		return bi - bj
	})
	edges := make([]*Edge, len(perm))
	signs := make([]int, len(perm))
	for i, p := range perm {
		edges[i] = el.edges[p]
		signs[i] = el.edgeSigns[p]
	}
	el.edges, el.edgeSigns = edges, signs
}

func (el *Element) Geometry() element.ElementGeometry { return el.geometry }
func (el *Element) NumNodes() int                    { return len(el.nodes) }
func (el *Element) Vertex(i int) *Node               { return el.nodes[i] }
func (el *Element) NumEdges() int                    { return len(el.edges) }
func (el *Element) Edge(i int) *Edge                 { return el.edges[i] }

// EdgeSign is +1 when edge i was created in the direction this element
// traverses it, -1 otherwise.
func (el *Element) EdgeSign(i int) int { return el.edgeSigns[i] }

func (el *Element) NumFaces() int    { return len(el.faces) }
func (el *Element) Face(i int) *Face { return el.faces[i] }
func (el *Element) OwnerProc() int   { return el.ownerProc }
func (el *Element) Label() int       { return el.label }
func (el *Element) GlobalIndex() int { return el.globalIndex }

// Volume is the unsigned area of a triangle or volume of a tetrahedron.
func (el *Element) Volume() float64 {
	p0 := el.nodes[0].position
	switch el.geometry {
	case element.Tri:
		u := r3.Sub(el.nodes[1].position, p0)
		v := r3.Sub(el.nodes[2].position, p0)
		return 0.5 * r3.Norm(r3.Cross(u, v))
	default:
		a := mat.NewDense(3, 3, nil)
		for i := 1; i <= 3; i++ {
			d := r3.Sub(el.nodes[i].position, p0)
			a.SetRow(i-1, []float64{d.X, d.Y, d.Z})
		}
		return math.Abs(mat.Det(a)) / 6
	}
}

// HasHangingNode reports whether a leaf element has a bisected edge whose
// midpoint is not one of its vertices.
func (el *Element) HasHangingNode() bool {
	if el.HasChildren() {
		return false
	}
	for _, e := range el.edges {
		if e.HasChildren() {
			return true
		}
	}
	return false
}

// LongestEdgeIndex returns the index of the longest edge, the lowest index
// winning ties.
func (el *Element) LongestEdgeIndex() int {
	best, bestLen := 0, el.edges[0].Length()
	for i := 1; i < len(el.edges); i++ {
		if l := el.edges[i].Length(); l > bestLen {
			best, bestLen = i, l
		}
	}
	return best
}

// Refine splits el once across its longest edge when its volume exceeds
// maxVolume, then bisects the neighbours left with hanging nodes. An element
// that has already been split is left alone. Reaching a target volume takes
// repeated passes over the leaves.
func (el *Element) Refine(m *Mesh, maxVolume float64) {
	if el.HasChildren() || el.Volume() <= maxVolume {
		return
	}
	el.bisect(m)
}

// bisect splits a leaf in two across the midpoint of its longest edge and
// restores conformity around it.
func (el *Element) bisect(m *Mesh) {
	must(el.IsLeaf(), "bisecting an element that already has children")
	e := el.edges[el.LongestEdgeIndex()]
	mid := e.Bisect(m)
	a, b := e.nodes[0], e.nodes[1]

	n1 := slices.Clone(el.nodes)
	n2 := slices.Clone(el.nodes)
	for i, n := range el.nodes {
		switch n {
		case b:
			n1[i] = mid
		case a:
			n2[i] = mid
		}
	}
	c1 := m.newChildElement(el, n1)
	c2 := m.newChildElement(el, n2)
	el.SetChildren(&c1.Node, &c2.Node)
	el.inheritFaceLabels(m, a, b, mid)
	m.numBisections++

	m.logger.Debug("bisected element",
		zap.Int("element", el.globalIndex),
		zap.Stringer("edge", e),
		zap.Int("midpoint", mid.globalIndex),
		zap.Int("depth", el.Depth()),
	)

	m.closeHangingNodes(c1)
	m.closeHangingNodes(c2)
	for _, nb := range e.UnrefinedCofacets() {
		m.closeHangingNodes(nb)
	}
}

// inheritFaceLabels copies the label and owner of each parent face split by
// the bisection of edge (a,b) onto its two halves.
func (el *Element) inheritFaceLabels(m *Mesh, a, b, mid *Node) {
	for _, f := range el.faces {
		if !f.contains(a) || !f.contains(b) {
			continue
		}
		var c *Node
		for _, n := range f.nodes {
			if n != a && n != b {
				c = n
			}
		}
		for _, end := range []*Node{a, b} {
			if half, ok := m.FindFace(end, mid, c); ok {
				half.label = f.label
				half.ownerProc = f.ownerProc
			}
		}
	}
}

// Neighbors returns the other leaves sharing a facet with el (an edge in 2D,
// a face in 3D) with the number of facets shared with each.
func (el *Element) Neighbors() (neighbors []*Element, weights []int) {
	pos := make(map[*Element]int)
	visit := func(others []*Element) {
		for _, o := range others {
			if o == el || !o.IsLeaf() {
				continue
			}
			if i, ok := pos[o]; ok {
				weights[i]++
				continue
			}
			pos[o] = len(neighbors)
			neighbors = append(neighbors, o)
			weights = append(weights, 1)
		}
	}
	if el.geometry == element.Tet {
		for _, f := range el.faces {
			visit(f.elements)
		}
	} else {
		for _, e := range el.edges {
			visit(e.elements)
		}
	}
	return neighbors, weights
}

func (el *Element) String() string {
	gids := make([]int, len(el.nodes))
	for i, n := range el.nodes {
		gids[i] = n.globalIndex
	}
	return fmt.Sprintf("%s%d%v", el.geometry, el.globalIndex, gids)
}
