package cluster

import (
	"cmp"
	"fmt"
	"slices"
)

// Sizes returns the size of every cluster in assign, largest first.
// Each Unassigned point counts as a cluster of its own, so the sizes
// always sum to len(assign).
//
// Complexity: O(N log N).
func Sizes(assign []ClusterID) []int {
	counts := make(map[ClusterID]int)
	singles := 0
	for _, id := range assign {
		if id == Unassigned {
			singles++
			continue
		}
		counts[id]++
	}

	sizes := make([]int, 0, len(counts)+singles)
	for _, c := range counts {
		sizes = append(sizes, c)
	}
	for i := 0; i < singles; i++ {
		sizes = append(sizes, 1)
	}
	slices.SortFunc(sizes, func(a, b int) int { return cmp.Compare(b, a) })

	return sizes
}

// Partition groups point indices by cluster. Groups are ordered by size
// (descending) and then by their smallest member; members ascend within a
// group. Unassigned points form singleton groups.
func Partition(assign []ClusterID) [][]int {
	index := make(map[ClusterID]int)
	var groups [][]int
	for i, id := range assign {
		if id == Unassigned {
			groups = append(groups, []int{i})
			continue
		}
		g, ok := index[id]
		if !ok {
			g = len(groups)
			index[id] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	slices.SortFunc(groups, func(a, b []int) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a[0], b[0])
	})

	return groups
}

// ProductOfLargest multiplies the k largest values of sizes. sizes need
// not be sorted and is not modified.
//
// Error Conditions:
//   - ErrOptionViolation      : if k < 1.
//   - ErrInsufficientClusters : if len(sizes) < k; no product over fewer
//     terms is ever returned.
func ProductOfLargest(sizes []int, k int) (uint64, error) {
	if k < 1 {
		return 0, fmt.Errorf("%w: k must be positive (%d)", ErrOptionViolation, k)
	}
	if len(sizes) < k {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrInsufficientClusters, k, len(sizes))
	}
	sorted := slices.Clone(sizes)
	slices.SortFunc(sorted, func(a, b int) int { return cmp.Compare(b, a) })

	product := uint64(1)
	for _, s := range sorted[:k] {
		product *= uint64(s)
	}

	return product, nil
}
