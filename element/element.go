package element

import "fmt"

type ElementGeometry uint8

const (
	Tet ElementGeometry = iota
	Tri
	Line
)

func (g ElementGeometry) String() string {
	switch g {
	case Tet:
		return "Tet"
	case Tri:
		return "Tri"
	case Line:
		return "Line"
	}
	return fmt.Sprintf("ElementGeometry(%d)", uint8(g))
}

// GeometryForVertexCount maps a simplex vertex count onto its geometry.
func GeometryForVertexCount(nv int) (ElementGeometry, error) {
	switch nv {
	case 2:
		return Line, nil
	case 3:
		return Tri, nil
	case 4:
		return Tet, nil
	}
	return 0, fmt.Errorf("no simplex has %d vertices", nv)
}

// GeometryForDimension returns the top-dimensional simplex of a 2D or 3D mesh.
func GeometryForDimension(dim int) (ElementGeometry, error) {
	switch dim {
	case 2:
		return Tri, nil
	case 3:
		return Tet, nil
	}
	return 0, fmt.Errorf("unsupported spatial dimension %d", dim)
}
