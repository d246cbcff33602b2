// Package cluster groups a fixed set of 3D points into connected components
// by merging them along their pairwise edges in ascending weight order, and
// reports the product of the three largest component sizes.
//
// 🚀 Pipeline
//
//	point.Set ─▶ Enumerate ─▶ SortEdges ─▶ Clusterer.Process (×E) ─▶ Sizes ─▶ ProductOfLargest
//
//   - Enumerate   — every unordered pair (i<j) with its weight; O(N²),
//     optionally fanned out over goroutines (WithWorkers).
//   - SortEdges   — ascending weight, ties by (min index, max index); a total
//     order, so any permutation of equal-weight edges sorts the same way.
//   - Clusterer   — the point→cluster registry. Edges are applied strictly
//     one at a time in sorted order; this step is never parallelised.
//   - Sizes / ProductOfLargest — cluster sizes, largest first, and the
//     product of the top k (k = 3 unless WithLargest says otherwise).
//
// ⚙️ Weight
//
// The default weight is the coordinate dot product ax*bx + ay*by + az*bz.
// It is not a distance; zero is simply the first weight processed.
// SquaredEuclidean and Manhattan are available through WithMetric.
//
// ⚙️ Merge strategies
//
// StrategyRescan relabels every point of the absorbed cluster, O(N) per
// merge. StrategyForest (default) is a disjoint-set forest with union by
// size and path compression whose roots carry the cluster label. The two
// produce identical Assignments for the same edge sequence: only the order
// of merges is observable.
//
// Every edge is processed unless WithEdgeLimit(k) asks for the k smallest
// only. Processing every pair always ends in a single cluster, so the
// default run reports ErrInsufficientClusters; the puzzle sample's product
// of 40 needs WithMetric(SquaredEuclidean) together with WithEdgeLimit(10).
//
// Weights are exact: a pair whose weight does not fit in uint64 fails the
// run with point.ErrWeightOverflow instead of wrapping into the wrong place
// in the order.
//
// Error Conditions:
//
//   - ErrTooFewPoints         — fewer than two points.
//   - point.ErrWeightOverflow — a pair weight exceeds uint64.
//   - ErrInsufficientClusters — fewer than three final clusters.
//   - ErrOptionViolation, ErrUnknownMetric, ErrUnknownStrategy — bad options.
//
// Usage:
//
//	pts, _ := point.ParseString(input)
//	res, err := cluster.Run(pts, cluster.WithMetric(cluster.SquaredEuclidean), cluster.WithEdgeLimit(10))
//	if err != nil {
//	  // errors.Is(err, cluster.ErrInsufficientClusters) …
//	}
//	fmt.Println(res.Product)
package cluster
