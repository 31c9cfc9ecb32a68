package mesh

type Sampling uint8

const (
	CellSampled  Sampling = iota // one value per top-dimensional cell
	PointSampled                 // one value per vertex
)

func (s Sampling) String() string {
	if s == CellSampled {
		return "cell"
	}
	return "point"
}

// Field is a scalar field over a mesh, such as a per-cell error estimate.
type Field interface {
	Sampling() Sampling
	Len() int
	Value(i int) float64
}

// CellField holds one value per cell, indexed by cell local index.
type CellField []float64

func (f CellField) Sampling() Sampling  { return CellSampled }
func (f CellField) Len() int            { return len(f) }
func (f CellField) Value(i int) float64 { return f[i] }

// PointField holds one value per vertex, indexed by vertex local index.
type PointField []float64

func (f PointField) Sampling() Sampling  { return PointSampled }
func (f PointField) Len() int            { return len(f) }
func (f PointField) Value(i int) float64 { return f[i] }
