package cluster

import (
	"cmp"
	"slices"
)

// Compare orders edges by ascending Weight, then ascending A, then
// ascending B. Two edges compare equal only if all three fields match, so
// sorting with Compare yields one sequence for any permutation of its input.
func Compare(x, y Edge) int {
	if c := cmp.Compare(x.Weight, y.Weight); c != 0 {
		return c
	}
	if c := cmp.Compare(x.A, y.A); c != 0 {
		return c
	}

	return cmp.Compare(x.B, y.B)
}

// SortEdges sorts edges in place into processing order (see Compare).
// Edges are canonicalised to A < B first so the tie-break is always on
// (min index, max index).
//
// Complexity: O(E log E).
func SortEdges(edges []Edge) {
	for i, e := range edges {
		if e.A > e.B {
			edges[i].A, edges[i].B = e.B, e.A
		}
	}
	slices.SortFunc(edges, Compare)
}

// IsOrdered reports whether edges are already in processing order.
func IsOrdered(edges []Edge) bool {
	return slices.IsSortedFunc(edges, Compare)
}
