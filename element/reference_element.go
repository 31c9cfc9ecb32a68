package element

// Dimensionality represents the spatial dimension of an element
type Dimensionality uint8

const (
	D0 Dimensionality = iota // 0D elements (points)
	D1                       // 1D elements (lines, edges)
	D2                       // 2D elements (triangles)
	D3                       // 3D elements (tetrahedra)
)

// ElementProperties contains metadata describing a simplex type
type ElementProperties struct {
	Name       string          // Full descriptive name (e.g., "Linear Tetrahedron")
	ShortName  string          // Abbreviated name (e.g., "Tet")
	Type       ElementGeometry // Element shape
	NVp        int             // Number of vertices
	NEdges     int             // Number of edges in each element
	NFaces     int             // Number of triangular faces (tetrahedra only)
	Dimensions Dimensionality  // Spatial dimension
}

var properties = map[ElementGeometry]ElementProperties{
	Line: {Name: "Linear Segment", ShortName: "Line", Type: Line,
		NVp: 2, NEdges: 1, Dimensions: D1},
	Tri: {Name: "Linear Triangle", ShortName: "Tri", Type: Tri,
		NVp: 3, NEdges: 3, Dimensions: D2},
	Tet: {Name: "Linear Tetrahedron", ShortName: "Tet", Type: Tet,
		NVp: 4, NEdges: 6, NFaces: 4, Dimensions: D3},
}

// Local vertex pairs of each edge.
var (
	triEdges = [][2]int{{0, 1}, {1, 2}, {2, 0}}
	tetEdges = [][2]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}}
)

// Tetrahedron faces, each opposite one vertex:
// Face 0: vertices 0,1,2
// Face 1: vertices 0,1,3
// Face 2: vertices 1,2,3
// Face 3: vertices 0,2,3
var tetFaces = [][3]int{{0, 1, 2}, {0, 1, 3}, {1, 2, 3}, {0, 2, 3}}

// Properties returns the metadata of a simplex geometry. It panics on an
// unknown geometry.
func Properties(g ElementGeometry) ElementProperties {
	p, ok := properties[g]
	if !ok {
		panic("element: unknown geometry " + g.String())
	}
	return p
}

// EdgeVertices lists the local vertex pairs of each edge of g.
func EdgeVertices(g ElementGeometry) [][2]int {
	switch g {
	case Line:
		return [][2]int{{0, 1}}
	case Tri:
		return triEdges
	case Tet:
		return tetEdges
	}
	return nil
}

// FaceVertices lists the local vertex triples of each face of g. Only
// tetrahedra have faces distinct from the element itself.
func FaceVertices(g ElementGeometry) [][3]int {
	if g == Tet {
		return tetFaces
	}
	return nil
}
