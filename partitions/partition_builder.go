package partitions

import (
	"fmt"
	"math"

	"github.com/notargets/rivara/mesh"
)

// BuildLayout creates a partition layout from an element-to-owner array. The
// number of partitions is one more than the largest owner; ranks that own no
// element get an empty partition.
func BuildLayout(eToP []int) (*PartitionLayout, error) {
	numPartitions := 0
	for elem, part := range eToP {
		if part < 0 {
			return nil, fmt.Errorf("element %d has negative owner %d", elem, part)
		}
		numPartitions = max(numPartitions, part+1)
	}

	partitions := createPartitions(eToP, numPartitions)
	kpartMax := calculateKpartMax(partitions)
	for i := range partitions {
		partitions[i].MaxElements = kpartMax
	}

	layout := &PartitionLayout{
		Partitions:    partitions,
		KpartMax:      kpartMax,
		TotalElements: len(eToP),
		NumPartitions: numPartitions,
		EToP:          eToP,
	}

	// Validate the layout
	if err := layout.ValidateLayout(); err != nil {
		return nil, fmt.Errorf("invalid partition layout: %w", err)
	}
	return layout, nil
}

// FromMesh builds the layout of the top-dimensional cells of m from their
// owner ranks.
func FromMesh(m mesh.Mesh) (*PartitionLayout, error) {
	dim := m.SpatialDim()
	eToP := make([]int, m.NumCells(dim))
	for i := range eToP {
		eToP[i] = m.OwnerProcID(dim, i)
	}
	return BuildLayout(eToP)
}

// createPartitions builds partition structures from element assignments
func createPartitions(eToP []int, numPartitions int) []Partition {
	partitions := make([]Partition, numPartitions)
	for i := range partitions {
		partitions[i] = Partition{
			ID:       i,
			Elements: make([]int, 0),
		}
	}
	for elem, part := range eToP {
		partitions[part].Elements = append(partitions[part].Elements, elem)
		partitions[part].NumElements++
	}
	return partitions
}

// calculateKpartMax finds maximum elements across all partitions
func calculateKpartMax(partitions []Partition) int {
	kpartMax := 0
	for _, p := range partitions {
		if p.NumElements > kpartMax {
			kpartMax = p.NumElements
		}
	}
	return kpartMax
}

// PartitionStatistics computes load balance metrics
func (layout *PartitionLayout) PartitionStatistics() PartitionStats {
	if layout.NumPartitions == 0 {
		return PartitionStats{}
	}
	stats := PartitionStats{
		NumPartitions: layout.NumPartitions,
		MinElements:   math.MaxInt32,
		MaxElements:   0,
		AvgElements:   float64(layout.TotalElements) / float64(layout.NumPartitions),
	}

	for _, p := range layout.Partitions {
		if p.NumElements < stats.MinElements {
			stats.MinElements = p.NumElements
		}
		if p.NumElements > stats.MaxElements {
			stats.MaxElements = p.NumElements
		}
	}

	stats.Imbalance = float64(stats.MaxElements) / stats.AvgElements

	return stats
}

type PartitionStats struct {
	NumPartitions int
	MinElements   int
	MaxElements   int
	AvgElements   float64
	Imbalance     float64 // MaxElements / AvgElements
}
