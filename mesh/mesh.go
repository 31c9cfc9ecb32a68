// Package mesh defines the host mesh abstraction the refinement driver reads
// from and writes to, and SimplexMesh, an in-memory implementation of it.
package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Mesh is the read side of a host mesh. Entities are addressed by topological
// dimension (0 vertices, 1 edges, 2 faces, 3 cells) and local index.
type Mesh interface {
	SpatialDim() int
	NumCells(dim int) int
	NodePosition(i int) r3.Vec
	Label(dim, i int) int
	OwnerProcID(dim, i int) int
	MapLIDToGID(dim, i int) int
	// FacetArray returns the local indices of the facetDim-dimensional
	// entities bounding entity i of dimension dim, with an orientation of +1
	// or -1 for each relative to the stored entity.
	FacetArray(dim, i, facetDim int) (lids, orientations []int)
}

// Builder is the write side of a host mesh, used both to ingest a host mesh
// and to emit a refined one.
type Builder interface {
	AddVertex(gid int, x r3.Vec, ownerProc, label int) int
	AddElement(gid int, vertexGIDs []int, ownerProc, label int) int
}
