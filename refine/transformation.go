// Package refine drives one error-driven refinement pass over a host mesh:
// it copies the mesh into a rivara.Mesh, queues every element whose error
// exceeds the requirement, refines and copies the result back out.
package refine

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/rivara/mesh"
	"github.com/notargets/rivara/partitions"
	"github.com/notargets/rivara/rivara"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	ErrPointSampledField    = errors.New("refine: error field must be cell-sampled")
	ErrFieldSize            = errors.New("refine: error field size does not match element count")
	ErrUnsupportedDimension = errors.New("refine: unsupported spatial dimension")
	ErrInvalidConfig        = errors.New("refine: invalid configuration")
	ErrInvalidField         = errors.New("refine: invalid error field")
)

// Transformation refines a mesh according to a per-cell error field.
type Transformation struct {
	field   mesh.Field
	cfg     Config
	logger  *zap.Logger
	reg     prometheus.Registerer
	metrics *metrics
}

// Option configures a Transformation.
type Option func(*Transformation)

// WithLogger sets the logger for the transformation and its rivara meshes.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Transformation) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithRegisterer registers the transformation metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(t *Transformation) {
		t.reg = reg
	}
}

// NewTransformation returns a transformation driven by field, which must hold
// one error value per cell of the meshes it is applied to.
func NewTransformation(field mesh.Field, cfg Config, opts ...Option) (*Transformation, error) {
	if field == nil {
		return nil, fmt.Errorf("%w: nil field", ErrInvalidField)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Transformation{
		field:  field,
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	m, err := newMetrics(cfg.MetricsPrefix, t.reg)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}
	t.metrics = m
	return t, nil
}

// TargetVolume returns the volume an element of the given volume and error
// should be refined to, volume * (required / (error + epsilon))^(dim/2).
func (t *Transformation) TargetVolume(volume, errorValue float64, spatialDim int) float64 {
	ratio := t.cfg.RequiredError / (errorValue + t.cfg.Epsilon)
	return volume * math.Pow(ratio, float64(spatialDim)/2)
}

// Apply refines in and returns the refined mesh. Every element whose target
// volume is below its volume is split once, along with the neighbours needed
// to keep the mesh conforming. Preconditions are checked before anything is
// built, so a failed Apply has no effect. Error values must be finite and
// non-negative.
func (t *Transformation) Apply(in mesh.Mesh) (*mesh.SimplexMesh, *Report, error) {
	dim := in.SpatialDim()
	if dim != 2 && dim != 3 {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedDimension, dim)
	}
	if t.field.Sampling() != mesh.CellSampled {
		return nil, nil, fmt.Errorf("%w: got a %s-sampled field", ErrPointSampledField, t.field.Sampling())
	}
	if n := in.NumCells(dim); t.field.Len() != n {
		return nil, nil, fmt.Errorf("%w: %d values for %d elements", ErrFieldSize, t.field.Len(), n)
	}
	for i := 0; i < t.field.Len(); i++ {
		if v := t.field.Value(i); math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, nil, fmt.Errorf("%w: element %d has error %g", ErrInvalidField, i, v)
		}
	}

	rm := rivara.NewMesh(dim, rivara.WithLogger(t.logger), rivara.WithRank(t.cfg.Rank))
	elements := meshToRivara(in, rm)

	report := &Report{
		ElementsBefore: rm.NumElements(),
		NodesBefore:    rm.NumNodes(),
	}
	for lid, el := range elements {
		vol := el.Volume()
		target := t.TargetVolume(vol, t.field.Value(lid), dim)
		if target < vol {
			rm.RequestRefinement(el, target)
			report.Requested++
		}
	}
	rm.Refine()

	out := rivaraToMesh(rm)
	report.Bisections = rm.NumBisections()
	report.ElementsAfter = rm.NumElements()
	report.NodesAfter = rm.NumNodes()
	layout, err := partitions.FromMesh(out)
	if err != nil {
		return nil, nil, fmt.Errorf("ownership layout: %w", err)
	}
	report.Partitions = layout.PartitionStatistics()

	t.metrics.passes.Inc()
	t.metrics.requests.Add(float64(report.Requested))
	t.metrics.bisections.Add(float64(report.Bisections))
	t.metrics.nodes.Add(float64(report.NodesAfter - report.NodesBefore))
	t.metrics.elements.Set(float64(report.ElementsAfter))

	t.logger.Info("refinement transformation applied",
		zap.Int("dim", dim),
		zap.Int("rank", t.cfg.Rank),
		zap.Int("requested", report.Requested),
		zap.Int("bisections", report.Bisections),
		zap.Int("elementsBefore", report.ElementsBefore),
		zap.Int("elementsAfter", report.ElementsAfter),
		zap.Float64("imbalance", report.Partitions.Imbalance),
	)
	return out, report, nil
}

// meshToRivara copies the vertices, elements and edge/face labels of in into
// rm and returns the root element built for each input element.
func meshToRivara(in mesh.Mesh, rm *rivara.Mesh) []*rivara.Element {
	dim := in.SpatialDim()
	for i := 0; i < in.NumCells(0); i++ {
		rm.AddVertex(in.MapLIDToGID(0, i), in.NodePosition(i), in.OwnerProcID(0, i), in.Label(0, i))
	}

	elements := make([]*rivara.Element, in.NumCells(dim))
	for c := range elements {
		verts, _ := in.FacetArray(dim, c, 0)
		idx := rm.AddElement(in.MapLIDToGID(dim, c), vertexGIDs(in, verts), in.OwnerProcID(dim, c), in.Label(dim, c))
		elements[c] = rm.RootElement(idx)
	}

	nodes := func(i, d int) []*rivara.Node {
		verts, _ := in.FacetArray(d, i, 0)
		out := make([]*rivara.Node, len(verts))
		for j, gid := range vertexGIDs(in, verts) {
			out[j] = rm.NodeByGID(gid)
		}
		return out
	}
	for i := 0; i < in.NumCells(1); i++ {
		label := in.Label(1, i)
		if label == 0 {
			continue
		}
		n := nodes(i, 1)
		if e, _, ok := rm.FindEdge(n[0], n[1]); ok {
			e.SetLabel(label)
		}
	}
	if dim == 3 {
		for i := 0; i < in.NumCells(2); i++ {
			label := in.Label(2, i)
			if label == 0 {
				continue
			}
			n := nodes(i, 2)
			if f, ok := rm.FindFace(n[0], n[1], n[2]); ok {
				f.SetLabel(label)
			}
		}
	}
	return elements
}

func vertexGIDs(in mesh.Mesh, lids []int) []int {
	gids := make([]int, len(lids))
	for i, v := range lids {
		gids[i] = in.MapLIDToGID(0, v)
	}
	return gids
}

// rivaraToMesh emits every node of rm in array order, then its leaf elements,
// then the labels of leaf edges and faces.
func rivaraToMesh(rm *rivara.Mesh) *mesh.SimplexMesh {
	out := mesh.NewSimplexMesh(rm.SpatialDim())
	for i := 0; i < rm.NumNodes(); i++ {
		n := rm.Node(i)
		out.AddVertex(n.GlobalIndex(), n.Position(), n.OwnerProc(), n.Label())
	}

	it := rivara.NewElementIterator(rm)
	for it.HasMoreElements() {
		el := it.Next()
		gids := make([]int, el.NumNodes())
		for j := range gids {
			gids[j] = el.Vertex(j).GlobalIndex()
		}
		out.AddElement(el.GlobalIndex(), gids, el.OwnerProc(), el.Label())
	}

	// Output vertex local indices equal rivara node local indices.
	for e := range rm.SortedEdges() {
		if e.HasChildren() || e.Label() == 0 {
			continue
		}
		if lid, _, ok := out.EdgeLID(e.Endpoint(0).LocalIndex(), e.Endpoint(1).LocalIndex()); ok {
			out.SetLabel(1, lid, e.Label())
		}
	}
	if rm.SpatialDim() == 3 {
		for i := 0; i < rm.NumFaces(); i++ {
			f := rm.Face(i)
			if f.Label() == 0 {
				continue
			}
			lid, _, ok := out.FaceLID(f.Vertex(0).LocalIndex(), f.Vertex(1).LocalIndex(), f.Vertex(2).LocalIndex())
			if ok {
				out.SetLabel(2, lid, f.Label())
			}
		}
	}
	return out
}
