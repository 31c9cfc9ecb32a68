package partitions

import (
	"fmt"
)

// Partition represents the elements owned by one process rank
type Partition struct {
	// Unique identifier for this partition (the owning rank)
	ID int

	// Element membership
	Elements    []int // Element indices in this partition
	NumElements int   // Actual number of elements
	MaxElements int   // KpartMax of the layout, for uniform per-partition sizing
}

// PartitionLayout manages the ownership decomposition of a mesh
type PartitionLayout struct {
	// All partitions in the mesh, indexed by ID
	Partitions []Partition

	// Global sizing information
	KpartMax      int // max(NumElements) across all partitions
	TotalElements int // Sum of all actual elements across partitions
	NumPartitions int // Total number of partitions

	// Element to partition mapping
	EToP []int // Length TotalElements: element k belongs to partition EToP[k]
}

// Methods for PartitionLayout

// GetPartition returns the partition containing element k
func (pl *PartitionLayout) GetPartition(elementID int) int {
	if elementID < 0 || elementID >= len(pl.EToP) {
		return -1
	}
	return pl.EToP[elementID]
}

// ValidateLayout checks partition consistency
func (pl *PartitionLayout) ValidateLayout() error {
	if len(pl.Partitions) != pl.NumPartitions {
		return fmt.Errorf("layout has %d partitions, NumPartitions is %d",
			len(pl.Partitions), pl.NumPartitions)
	}
	// Verify KpartMax
	actualMax, total := 0, 0
	for i, p := range pl.Partitions {
		if p.ID != i {
			return fmt.Errorf("partition at %d has ID %d", i, p.ID)
		}
		if p.NumElements != len(p.Elements) {
			return fmt.Errorf("partition %d: NumElements %d != %d listed elements",
				p.ID, p.NumElements, len(p.Elements))
		}
		if p.NumElements > actualMax {
			actualMax = p.NumElements
		}
		if p.MaxElements != pl.KpartMax {
			return fmt.Errorf("partition %d: MaxElements %d != KpartMax %d",
				p.ID, p.MaxElements, pl.KpartMax)
		}
		for _, elem := range p.Elements {
			if pl.GetPartition(elem) != p.ID {
				return fmt.Errorf("partition %d lists element %d owned by %d",
					p.ID, elem, pl.GetPartition(elem))
			}
		}
		total += p.NumElements
	}
	if actualMax != pl.KpartMax {
		return fmt.Errorf("computed KpartMax %d != stored KpartMax %d",
			actualMax, pl.KpartMax)
	}
	if total != pl.TotalElements || len(pl.EToP) != pl.TotalElements {
		return fmt.Errorf("partitions hold %d elements, EToP has %d, TotalElements is %d",
			total, len(pl.EToP), pl.TotalElements)
	}
	return nil
}
