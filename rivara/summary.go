package rivara

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/notargets/rivara/tree"
)

// String returns a summary of the mesh and its refinement state
func (m *Mesh) String() string {
	var sb strings.Builder

	sb.WriteString("=== Rivara Mesh Summary ===\n")
	sb.WriteString(fmt.Sprintf("  Spatial dimension: %d\n", m.spatialDim))
	sb.WriteString(fmt.Sprintf("  Rank: %d\n", m.rank))

	sb.WriteString("\n--- Entities ---\n")
	sb.WriteString(fmt.Sprintf("  Nodes: %d (next global id %d)\n", len(m.nodes), m.nextGID))
	sb.WriteString(fmt.Sprintf("  Edges: %d\n", len(m.edges)))
	if m.spatialDim == 3 {
		sb.WriteString(fmt.Sprintf("  Faces: %d\n", len(m.faces)))
	}
	sb.WriteString(fmt.Sprintf("  Root elements: %d\n", len(m.roots)))
	sb.WriteString(fmt.Sprintf("  Leaf elements: %d\n", m.NumElements()))

	sb.WriteString("\n--- Refinement ---\n")
	sb.WriteString(fmt.Sprintf("  Bisections: %d\n", m.numBisections))
	sb.WriteString(fmt.Sprintf("  Pending requests: %d\n", len(m.queue)))
	if m.NumElements() > 0 {
		vMin, vMax, vSum := math.Inf(1), 0.0, 0.0
		depth := 0
		for el := range m.Elements() {
			v := el.Volume()
			vMin, vMax, vSum = math.Min(vMin, v), math.Max(vMax, v), vSum+v
			depth = max(depth, el.Depth())
		}
		sb.WriteString(fmt.Sprintf("  Leaf volume range: [%.4g, %.4g]\n", vMin, vMax))
		sb.WriteString(fmt.Sprintf("  Total volume: %.6g\n", vSum))
		sb.WriteString(fmt.Sprintf("  Max tree depth: %d\n", depth))
	}
	return sb.String()
}

// WriteDot writes the element refinement forest in Graphviz DOT format.
func (m *Mesh) WriteDot(w io.Writer) error {
	roots := make([]*tree.Node[*Element], len(m.roots))
	for i, r := range m.roots {
		roots[i] = &r.Node
	}
	return tree.WriteDot(w, roots, func(el *Element) string {
		return fmt.Sprintf("%s\nV=%.3g", el, el.Volume())
	})
}
