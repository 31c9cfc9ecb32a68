package mesh

import (
	"fmt"
	"slices"
	"strings"

	"github.com/notargets/rivara/element"
	"gonum.org/v1/gonum/spatial/r3"
)

// SimplexMesh is an in-memory triangle (2D) or tetrahedron (3D) mesh. Edges,
// and faces in 3D, are derived and deduplicated as elements are added.
type SimplexMesh struct {
	Dim int

	// ===== Node Data =====
	Vertices   []r3.Vec    // Vertex coordinates
	VertexGIDs []int       // Global id of each vertex
	NodeIDMap  map[int]int // Maps vertex global ids to array indices

	// ===== Element Connectivity =====
	EtoV        [][]int // Element to vertex local indices [nelems][dim+1]
	ElementGIDs []int   // Global id of each element

	// ===== Derived Entities =====
	Edges   [][2]int // Vertex local indices in creation order
	Faces   [][3]int // Vertex local indices in creation order (3D only)
	edgeMap map[[2]int]int
	faceMap map[[3]int]int

	// ownerProc and label per entity, indexed by dimension
	owners [4][]int
	labels [4][]int

	// ===== Face Connectivity (BuildConnectivity) =====
	EToE [][]int // Element to neighbour element across each facet, -1 on boundary
	EToF [][]int // Neighbour's local facet index, -1 on boundary
}

var (
	_ Mesh    = (*SimplexMesh)(nil)
	_ Builder = (*SimplexMesh)(nil)
)

// NewSimplexMesh returns an empty mesh. Dimensions other than 2 and 3 panic.
func NewSimplexMesh(dim int) *SimplexMesh {
	if dim != 2 && dim != 3 {
		panic(fmt.Errorf("mesh: unsupported spatial dimension %d", dim))
	}
	return &SimplexMesh{
		Dim:       dim,
		NodeIDMap: make(map[int]int),
		edgeMap:   make(map[[2]int]int),
		faceMap:   make(map[[3]int]int),
	}
}

func (m *SimplexMesh) SpatialDim() int { return m.Dim }

// AddVertex appends a vertex and returns its local index. Duplicate global ids
// panic.
func (m *SimplexMesh) AddVertex(gid int, x r3.Vec, ownerProc, label int) int {
	if _, dup := m.NodeIDMap[gid]; dup {
		panic(fmt.Errorf("mesh: duplicate vertex global id %d", gid))
	}
	lid := len(m.Vertices)
	m.Vertices = append(m.Vertices, x)
	m.VertexGIDs = append(m.VertexGIDs, gid)
	m.NodeIDMap[gid] = lid
	m.owners[0] = append(m.owners[0], ownerProc)
	m.labels[0] = append(m.labels[0], label)
	return lid
}

// AddElement appends a simplex on previously added vertices and returns its
// local index. It panics unless exactly Dim+1 known vertex ids are given.
func (m *SimplexMesh) AddElement(gid int, vertexGIDs []int, ownerProc, label int) int {
	if len(vertexGIDs) != m.Dim+1 {
		panic(fmt.Errorf("mesh: element %d has %d vertices, want %d", gid, len(vertexGIDs), m.Dim+1))
	}
	verts := make([]int, len(vertexGIDs))
	for i, g := range vertexGIDs {
		lid, ok := m.NodeIDMap[g]
		if !ok {
			panic(fmt.Errorf("mesh: element %d references unknown vertex %d", gid, g))
		}
		verts[i] = lid
	}
	lid := len(m.EtoV)
	m.EtoV = append(m.EtoV, verts)
	m.ElementGIDs = append(m.ElementGIDs, gid)
	m.owners[m.Dim] = append(m.owners[m.Dim], ownerProc)
	m.labels[m.Dim] = append(m.labels[m.Dim], label)

	geom := m.elementGeometry()
	for _, ev := range element.EdgeVertices(geom) {
		m.addEdge(verts[ev[0]], verts[ev[1]])
	}
	for _, fv := range element.FaceVertices(geom) {
		m.addFace(verts[fv[0]], verts[fv[1]], verts[fv[2]])
	}
	return lid
}

func (m *SimplexMesh) elementGeometry() element.ElementGeometry {
	geom, err := element.GeometryForDimension(m.Dim)
	if err != nil {
		panic(err)
	}
	return geom
}

func edgeKey(a, b int) [2]int {
	return [2]int{min(a, b), max(a, b)}
}

func faceKey(a, b, c int) [3]int {
	k := [3]int{a, b, c}
	slices.Sort(k[:])
	return k
}

func (m *SimplexMesh) addEdge(a, b int) {
	k := edgeKey(a, b)
	if _, ok := m.edgeMap[k]; ok {
		return
	}
	m.edgeMap[k] = len(m.Edges)
	m.Edges = append(m.Edges, [2]int{a, b})
	m.owners[1] = append(m.owners[1], min(m.owners[0][a], m.owners[0][b]))
	m.labels[1] = append(m.labels[1], 0)
}

func (m *SimplexMesh) addFace(a, b, c int) {
	k := faceKey(a, b, c)
	if _, ok := m.faceMap[k]; ok {
		return
	}
	m.faceMap[k] = len(m.Faces)
	m.Faces = append(m.Faces, [3]int{a, b, c})
	m.owners[2] = append(m.owners[2], min(m.owners[0][a], m.owners[0][b], m.owners[0][c]))
	m.labels[2] = append(m.labels[2], 0)
}

// EdgeLID returns the edge joining vertices a and b (local indices), with
// orientation +1 when (a,b) is the stored direction.
func (m *SimplexMesh) EdgeLID(a, b int) (lid, orientation int, ok bool) {
	lid, ok = m.edgeMap[edgeKey(a, b)]
	if !ok {
		return -1, 0, false
	}
	if m.Edges[lid][0] == a {
		return lid, 1, true
	}
	return lid, -1, true
}

// FaceLID returns the face on vertices a, b and c (local indices), with
// orientation +1 when (a,b,c) is a rotation of the stored order.
func (m *SimplexMesh) FaceLID(a, b, c int) (lid, orientation int, ok bool) {
	lid, ok = m.faceMap[faceKey(a, b, c)]
	if !ok {
		return -1, 0, false
	}
	s := m.Faces[lid]
	for r := 0; r < 3; r++ {
		if s[r] == a && s[(r+1)%3] == b && s[(r+2)%3] == c {
			return lid, 1, true
		}
	}
	return lid, -1, true
}

func (m *SimplexMesh) NumCells(dim int) int {
	switch {
	case dim == 0:
		return len(m.Vertices)
	case dim == m.Dim:
		return len(m.EtoV)
	case dim == 1:
		return len(m.Edges)
	case dim == 2 && m.Dim == 3:
		return len(m.Faces)
	}
	return 0
}

func (m *SimplexMesh) NodePosition(i int) r3.Vec { return m.Vertices[i] }

func (m *SimplexMesh) Label(dim, i int) int       { return m.labels[dim][i] }
func (m *SimplexMesh) OwnerProcID(dim, i int) int { return m.owners[dim][i] }

func (m *SimplexMesh) SetLabel(dim, i, label int) { m.labels[dim][i] = label }

// MapLIDToGID maps a local index onto a global id. Derived edges and faces
// use their local index as global id.
func (m *SimplexMesh) MapLIDToGID(dim, i int) int {
	switch dim {
	case 0:
		return m.VertexGIDs[i]
	case m.Dim:
		return m.ElementGIDs[i]
	}
	return i
}

// ElementVertexGIDs returns the vertex global ids of element i.
func (m *SimplexMesh) ElementVertexGIDs(i int) []int {
	gids := make([]int, len(m.EtoV[i]))
	for j, lid := range m.EtoV[i] {
		gids[j] = m.VertexGIDs[lid]
	}
	return gids
}

func (m *SimplexMesh) entityVertices(dim, i int) []int {
	switch {
	case dim == 0:
		return []int{i}
	case dim == m.Dim:
		return m.EtoV[i]
	case dim == 1:
		return m.Edges[i][:]
	case dim == 2:
		return m.Faces[i][:]
	}
	panic(fmt.Errorf("mesh: no entities of dimension %d in a %dD mesh", dim, m.Dim))
}

func (m *SimplexMesh) FacetArray(dim, i, facetDim int) (lids, orientations []int) {
	verts := m.entityVertices(dim, i)
	if facetDim >= dim {
		return nil, nil
	}
	if facetDim == 0 {
		lids = slices.Clone(verts)
		orientations = make([]int, len(verts))
		for j := range orientations {
			orientations[j] = 1
		}
		return lids, orientations
	}
	geom, err := element.GeometryForVertexCount(len(verts))
	if err != nil {
		panic(err)
	}
	if facetDim == 1 {
		for _, ev := range element.EdgeVertices(geom) {
			lid, o, ok := m.EdgeLID(verts[ev[0]], verts[ev[1]])
			if !ok {
				panic(fmt.Errorf("mesh: missing edge %d-%d", verts[ev[0]], verts[ev[1]]))
			}
			lids = append(lids, lid)
			orientations = append(orientations, o)
		}
		return lids, orientations
	}
	for _, fv := range element.FaceVertices(geom) {
		lid, o, ok := m.FaceLID(verts[fv[0]], verts[fv[1]], verts[fv[2]])
		if !ok {
			panic(fmt.Errorf("mesh: missing face %v", fv))
		}
		lids = append(lids, lid)
		orientations = append(orientations, o)
	}
	return lids, orientations
}

// BuildConnectivity fills EToE and EToF across the facets (edges in 2D, faces
// in 3D) of every element.
//
// If element A's facet i meets element B's facet j then EToE[A][i] = B,
// EToF[A][i] = j and the reverse holds for B.
func (m *SimplexMesh) BuildConnectivity() {
	nel := len(m.EtoV)
	m.EToE = make([][]int, nel)
	m.EToF = make([][]int, nel)
	facetDim := m.Dim - 1

	type side struct{ elem, local int }
	seen := make(map[int]side)
	for elemID := 0; elemID < nel; elemID++ {
		facets, _ := m.FacetArray(m.Dim, elemID, facetDim)
		m.EToE[elemID] = make([]int, len(facets))
		m.EToF[elemID] = make([]int, len(facets))
		for local, f := range facets {
			m.EToE[elemID][local] = -1
			m.EToF[elemID][local] = -1
			other, ok := seen[f]
			if !ok {
				seen[f] = side{elem: elemID, local: local}
				continue
			}
			m.EToE[elemID][local] = other.elem
			m.EToF[elemID][local] = other.local
			m.EToE[other.elem][other.local] = elemID
			m.EToF[other.elem][other.local] = local
		}
	}
}

// String returns a summary of the mesh sizes and label usage
func (m *SimplexMesh) String() string {
	var sb strings.Builder
	sb.WriteString("=== Simplex Mesh Summary ===\n")
	sb.WriteString(fmt.Sprintf("  Dimension: %d\n", m.Dim))
	sb.WriteString(fmt.Sprintf("  Vertices: %d\n", len(m.Vertices)))
	sb.WriteString(fmt.Sprintf("  Edges: %d\n", len(m.Edges)))
	if m.Dim == 3 {
		sb.WriteString(fmt.Sprintf("  Faces: %d\n", len(m.Faces)))
	}
	sb.WriteString(fmt.Sprintf("  Elements: %d (%s)\n", len(m.EtoV), element.Properties(m.elementGeometry()).Name))

	sb.WriteString("\n--- Labelled entities ---\n")
	for dim := 0; dim <= m.Dim; dim++ {
		n := 0
		for _, l := range m.labels[dim] {
			if l != 0 {
				n++
			}
		}
		sb.WriteString(fmt.Sprintf("  Dimension %d: %d\n", dim, n))
	}
	return sb.String()
}
