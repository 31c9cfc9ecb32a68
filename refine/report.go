package refine

import (
	"fmt"
	"strings"

	"github.com/notargets/rivara/partitions"
)

// Report summarises one refinement pass.
type Report struct {
	Requested      int // elements queued because their error was too large
	Bisections     int // includes bisections made to restore conformity
	ElementsBefore int
	ElementsAfter  int
	NodesBefore    int
	NodesAfter     int
	Partitions     partitions.PartitionStats // ownership of the output elements
}

func (r *Report) String() string {
	var sb strings.Builder
	sb.WriteString("=== Refinement Report ===\n")
	sb.WriteString(fmt.Sprintf("  Elements requested: %d\n", r.Requested))
	sb.WriteString(fmt.Sprintf("  Bisections: %d\n", r.Bisections))
	sb.WriteString(fmt.Sprintf("  Elements: %d -> %d\n", r.ElementsBefore, r.ElementsAfter))
	sb.WriteString(fmt.Sprintf("  Nodes: %d -> %d\n", r.NodesBefore, r.NodesAfter))
	sb.WriteString("\n--- Ownership ---\n")
	sb.WriteString(fmt.Sprintf("  Partitions: %d\n", r.Partitions.NumPartitions))
	sb.WriteString(fmt.Sprintf("  Elements per partition: min %d, max %d, avg %.2f\n",
		r.Partitions.MinElements, r.Partitions.MaxElements, r.Partitions.AvgElements))
	sb.WriteString(fmt.Sprintf("  Imbalance: %.3f\n", r.Partitions.Imbalance))
	return sb.String()
}
