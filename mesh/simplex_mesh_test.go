package mesh

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func square(t *testing.T) *SimplexMesh {
	t.Helper()
	m := NewSimplexMesh(2)
	m.AddVertex(10, r3.Vec{X: 0, Y: 0}, 0, 0)
	m.AddVertex(11, r3.Vec{X: 1, Y: 0}, 0, 0)
	m.AddVertex(12, r3.Vec{X: 1, Y: 1}, 1, 0)
	m.AddVertex(13, r3.Vec{X: 0, Y: 1}, 1, 0)
	m.AddElement(100, []int{10, 11, 13}, 0, 1)
	m.AddElement(101, []int{11, 12, 13}, 1, 2)
	return m
}

func twoTets(t *testing.T) *SimplexMesh {
	t.Helper()
	m := NewSimplexMesh(3)
	m.AddVertex(0, r3.Vec{X: 0, Y: 0, Z: 0}, 0, 0)
	m.AddVertex(1, r3.Vec{X: 1, Y: 0, Z: 0}, 0, 0)
	m.AddVertex(2, r3.Vec{X: 0, Y: 1, Z: 0}, 0, 0)
	m.AddVertex(3, r3.Vec{X: 0, Y: 0, Z: 1}, 1, 0)
	m.AddVertex(4, r3.Vec{X: 1, Y: 1, Z: 1}, 1, 0)
	m.AddElement(0, []int{0, 1, 2, 3}, 0, 0)
	m.AddElement(1, []int{1, 2, 3, 4}, 1, 0)
	return m
}

func TestNewSimplexMeshRejectsDimension(t *testing.T) {
	assert.Panics(t, func() { NewSimplexMesh(1) })
	assert.Panics(t, func() { NewSimplexMesh(4) })
}

func TestSimplexMeshCounts(t *testing.T) {
	m := square(t)
	assert.Equal(t, 2, m.SpatialDim())
	assert.Equal(t, 4, m.NumCells(0))
	assert.Equal(t, 5, m.NumCells(1))
	assert.Equal(t, 2, m.NumCells(2))
	assert.Equal(t, 0, m.NumCells(3))

	assert.Equal(t, 13, m.MapLIDToGID(0, 3))
	assert.Equal(t, 101, m.MapLIDToGID(2, 1))
	assert.Equal(t, 4, m.MapLIDToGID(1, 4))
	assert.Equal(t, []int{11, 12, 13}, m.ElementVertexGIDs(1))
	assert.Equal(t, 2, m.Label(2, 1))
	assert.Equal(t, 1, m.OwnerProcID(2, 1))
	assert.Equal(t, r3.Vec{X: 1, Y: 1}, m.NodePosition(2))

	tets := twoTets(t)
	assert.Equal(t, 5, tets.NumCells(0))
	assert.Equal(t, 9, tets.NumCells(1))
	assert.Equal(t, 7, tets.NumCells(2))
	assert.Equal(t, 2, tets.NumCells(3))
}

func TestSimplexMeshContract(t *testing.T) {
	m := square(t)
	assert.Panics(t, func() { m.AddVertex(10, r3.Vec{}, 0, 0) })
	assert.Panics(t, func() { m.AddElement(102, []int{10, 11}, 0, 0) })
	assert.Panics(t, func() { m.AddElement(102, []int{10, 11, 99}, 0, 0) })
	assert.Panics(t, func() { m.FacetArray(3, 0, 2) })
}

func TestEdgeOrientation(t *testing.T) {
	m := square(t)
	// The diagonal is first walked 1 -> 3 by element 0.
	lid, o, ok := m.EdgeLID(1, 3)
	require.True(t, ok)
	assert.Equal(t, 1, o)
	lid2, o2, ok := m.EdgeLID(3, 1)
	require.True(t, ok)
	assert.Equal(t, lid, lid2)
	assert.Equal(t, -1, o2)
	_, _, ok = m.EdgeLID(0, 2)
	assert.False(t, ok)

	edges, orient := m.FacetArray(2, 1, 1)
	require.Len(t, edges, 3)
	assert.Equal(t, []int{1, 1, -1}, orient)
	assert.Equal(t, lid, edges[2])

	verts, vo := m.FacetArray(2, 0, 0)
	assert.Equal(t, []int{0, 1, 3}, verts)
	assert.Equal(t, []int{1, 1, 1}, vo)

	ends, _ := m.FacetArray(1, lid, 0)
	assert.Equal(t, []int{1, 3}, ends)
	none, _ := m.FacetArray(1, lid, 1)
	assert.Nil(t, none)
}

func TestFaceOrientation(t *testing.T) {
	m := twoTets(t)
	lid, o, ok := m.FaceLID(1, 2, 3)
	require.True(t, ok)
	assert.Equal(t, 1, o)
	for _, rot := range [][3]int{{2, 3, 1}, {3, 1, 2}} {
		l, o, ok := m.FaceLID(rot[0], rot[1], rot[2])
		require.True(t, ok)
		assert.Equal(t, lid, l)
		assert.Equal(t, 1, o)
	}
	_, o, _ = m.FaceLID(1, 3, 2)
	assert.Equal(t, -1, o)

	faces, _ := m.FacetArray(3, 1, 2)
	require.Len(t, faces, 4)
	assert.Equal(t, lid, faces[0], "first face of the second tet is the shared one")

	// A face is bounded by three edges.
	edges, _ := m.FacetArray(2, lid, 1)
	assert.Len(t, edges, 3)
	assert.Equal(t, 0, m.OwnerProcID(2, lid))
}

func TestBuildConnectivity(t *testing.T) {
	m := square(t)
	m.BuildConnectivity()
	// Local edges are (0,1), (1,2), (2,0); the diagonal is edge 1 of the
	// first triangle and edge 2 of the second.
	want := [][]int{{-1, 1, -1}, {-1, -1, 0}}
	if diff := cmp.Diff(want, m.EToE); diff != "" {
		t.Errorf("EToE mismatch (-want +got):\n%s", diff)
	}
	wantF := [][]int{{-1, 2, -1}, {-1, -1, 1}}
	if diff := cmp.Diff(wantF, m.EToF); diff != "" {
		t.Errorf("EToF mismatch (-want +got):\n%s", diff)
	}

	tets := twoTets(t)
	tets.BuildConnectivity()
	// Face 2 of tet 0 is (1,2,3), face 0 of tet 1.
	assert.Equal(t, []int{-1, -1, 1, -1}, tets.EToE[0])
	assert.Equal(t, []int{-1, -1, 0, -1}, tets.EToF[0])
	assert.Equal(t, []int{0, -1, -1, -1}, tets.EToE[1])
	assert.Equal(t, []int{2, -1, -1, -1}, tets.EToF[1])
}

func TestSetLabelAndString(t *testing.T) {
	m := twoTets(t)
	lid, _, ok := m.FaceLID(0, 1, 2)
	require.True(t, ok)
	m.SetLabel(2, lid, 3)
	assert.Equal(t, 3, m.Label(2, lid))
	s := m.String()
	t.Log(s)
	assert.Contains(t, s, "Faces: 7")
	assert.Contains(t, s, "Dimension 2: 1")
	assert.Contains(t, s, "Elements: 2 (Linear Tetrahedron)")
}

func TestFields(t *testing.T) {
	var f Field = CellField{0.1, 0.2}
	assert.Equal(t, CellSampled, f.Sampling())
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, 0.2, f.Value(1))
	assert.Equal(t, "cell", f.Sampling().String())

	f = PointField{1, 2, 3}
	assert.Equal(t, PointSampled, f.Sampling())
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, "point", f.Sampling().String())
}
