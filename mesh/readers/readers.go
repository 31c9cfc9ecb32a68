// Package readers loads mesh files into a mesh.SimplexMesh through the gocfd
// readers (Gambit .neu, Gmsh .msh, SU2 .su2).
package readers

import (
	"errors"
	"fmt"

	cfdmesh "github.com/notargets/gocfd/DG3D/mesh"
	cfdreaders "github.com/notargets/gocfd/DG3D/mesh/readers"
	"github.com/notargets/rivara/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrUnsupportedMesh is returned for meshes whose volume cells are not all
// triangles (2D) or tetrahedra (3D).
var ErrUnsupportedMesh = errors.New("unsupported mesh")

// ReadMeshFile reads a mesh file, choosing the format from its extension.
func ReadMeshFile(filename string) (*mesh.SimplexMesh, error) {
	msh, err := cfdreaders.ReadMeshFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	out, err := FromGoCFD(msh)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", filename, err)
	}
	return out, nil
}

// FromGoCFD converts the highest-dimensional cells of a gocfd mesh into a
// SimplexMesh. Lower-dimensional cells (boundary faces, lines) are dropped.
// Vertex and element global ids are their gocfd array indices. EToP, when
// present, becomes the element owner; a vertex is owned by the lowest owner of
// the elements around it.
func FromGoCFD(msh *cfdmesh.Mesh) (*mesh.SimplexMesh, error) {
	dim := 0
	for _, et := range msh.ElementTypes {
		dim = max(dim, et.GetDimension())
	}
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("%w: highest cell dimension is %d", ErrUnsupportedMesh, dim)
	}

	var cells []int
	for i, et := range msh.ElementTypes {
		if et.GetDimension() != dim {
			continue
		}
		verts := msh.EtoV[i]
		if len(verts) != dim+1 {
			return nil, fmt.Errorf("%w: element %d is a %v with %d vertices",
				ErrUnsupportedMesh, i, et, len(verts))
		}
		for _, v := range verts {
			if v < 0 || v >= len(msh.Vertices) {
				return nil, fmt.Errorf("%w: element %d references vertex %d", ErrUnsupportedMesh, i, v)
			}
		}
		cells = append(cells, i)
	}

	owner := func(elem int) int {
		if elem < len(msh.EToP) {
			return msh.EToP[elem]
		}
		return 0
	}
	vertexOwner := make([]int, len(msh.Vertices))
	for i := range vertexOwner {
		vertexOwner[i] = -1
	}
	for _, c := range cells {
		for _, v := range msh.EtoV[c] {
			if vertexOwner[v] < 0 || owner(c) < vertexOwner[v] {
				vertexOwner[v] = owner(c)
			}
		}
	}

	out := mesh.NewSimplexMesh(dim)
	for i, coords := range msh.Vertices {
		var x r3.Vec
		if len(coords) > 0 {
			x.X = coords[0]
		}
		if len(coords) > 1 {
			x.Y = coords[1]
		}
		if len(coords) > 2 {
			x.Z = coords[2]
		}
		out.AddVertex(i, x, max(vertexOwner[i], 0), 0)
	}
	for _, c := range cells {
		out.AddElement(c, msh.EtoV[c], owner(c), 0)
	}
	return out, nil
}
