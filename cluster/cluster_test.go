package cluster_test

import (
	"testing"

	"github.com/katalvlaran/circuits/cluster"
	"github.com/katalvlaran/circuits/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestRun_WorkedExample reproduces the puzzle sample: the ten closest pairs
// by straight-line distance leave circuits of 5, 4 and 2 boxes → 40.
func TestRun_WorkedExample(t *testing.T) {
	pts := mustWorkedExample(t)
	u := cluster.Unassigned
	wantAssign := []cluster.ClusterID{0, u, 1, u, u, u, u, 0, 1, 3, u, 4, 3, 1, 0, u, 4, 1, 1, 0}

	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			res, err := cluster.Run(pts,
				cluster.WithMetric(cluster.SquaredEuclidean),
				cluster.WithEdgeLimit(10),
				cluster.WithStrategy(s),
			)
			require.NoError(t, err)
			assert.Equal(t, uint64(40), res.Product)
			assert.Equal(t, []int{5, 4, 2, 2, 1, 1, 1, 1, 1, 1, 1}, res.Sizes)
			assert.Equal(t, wantAssign, res.Assignment)
			assert.Equal(t, 190, res.Edges)
			assert.Equal(t, 10, res.Processed)
			assert.Equal(t, 1, res.Merges)
			assert.Equal(t, 11, res.Clusters)
		})
	}
}

// TestRun_WorkedExampleVariants pins the product for other metric/limit pairs.
func TestRun_WorkedExampleVariants(t *testing.T) {
	pts := mustWorkedExample(t)
	tests := []struct {
		metric cluster.Metric
		limit  int
		want   uint64
	}{
		{cluster.DotProduct, 10, 8},
		{cluster.SquaredEuclidean, 20, 45},
		{cluster.Manhattan, 10, 36},
		{cluster.Manhattan, 20, 126},
	}
	for _, tc := range tests {
		got, err := cluster.Cluster(pts, cluster.WithMetric(tc.metric), cluster.WithEdgeLimit(tc.limit))
		require.NoError(t, err, "%v/%d", tc.metric, tc.limit)
		assert.Equal(t, tc.want, got, "%v/%d", tc.metric, tc.limit)
	}
}

// TestRun_FullEdgeSetCollapses: with every pair processed the points form a
// complete graph, so a single cluster remains and the aggregator refuses.
func TestRun_FullEdgeSetCollapses(t *testing.T) {
	pts := mustWorkedExample(t)
	res, err := cluster.Run(pts)
	assert.ErrorIs(t, err, cluster.ErrInsufficientClusters)
	assert.Zero(t, res.Product)

	// A limit at or above C(N,2) is the same as no limit.
	_, err = cluster.Run(pts, cluster.WithEdgeLimit(190))
	assert.ErrorIs(t, err, cluster.ErrInsufficientClusters)

	// Asking only for the largest cluster succeeds.
	res, err = cluster.Run(pts, cluster.WithLargest(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(20), res.Product)
	assert.Equal(t, 190, res.Processed)
	assert.Equal(t, []int{20}, res.Sizes)
}

// TestRun_TooFewPoints verifies the precondition surfaces from Run.
func TestRun_TooFewPoints(t *testing.T) {
	_, err := cluster.Run(point.Set{point.New(1, 2, 3)})
	assert.ErrorIs(t, err, cluster.ErrTooFewPoints)

	// Two points → one cluster → insufficient.
	_, err = cluster.Run(point.Set{point.New(1, 2, 3), point.New(4, 5, 6)})
	assert.ErrorIs(t, err, cluster.ErrInsufficientClusters)
}

// TestRun_BadOptions surfaces each recorded violation.
func TestRun_BadOptions(t *testing.T) {
	pts := mustWorkedExample(t)
	tests := []struct {
		name string
		opt  cluster.Option
		want error
	}{
		{"negative limit", cluster.WithEdgeLimit(-1), cluster.ErrOptionViolation},
		{"negative workers", cluster.WithWorkers(-2), cluster.ErrOptionViolation},
		{"zero largest", cluster.WithLargest(0), cluster.ErrOptionViolation},
		{"unknown metric", cluster.WithMetric(cluster.Metric(-1)), cluster.ErrUnknownMetric},
		{"unknown strategy", cluster.WithStrategy(cluster.Strategy(7)), cluster.ErrUnknownStrategy},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cluster.Run(pts, tc.opt)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestRun_CoincidentPointsMergeFirst: two boxes at the origin share a
// weight-0 edge that sorts first and forms a 2-point cluster before
// anything else happens.
func TestRun_CoincidentPointsMergeFirst(t *testing.T) {
	pts := point.Set{point.New(0, 0, 0), point.New(0, 0, 0), point.New(5, 5, 5), point.New(7, 7, 7)}

	type step struct {
		e       cluster.Edge
		outcome cluster.Outcome
		active  int
	}
	var steps []step
	_, err := cluster.Run(pts, cluster.WithObserver(func(_ int, e cluster.Edge, o cluster.Outcome, active int) {
		steps = append(steps, step{e, o, active})
	}))
	assert.ErrorIs(t, err, cluster.ErrInsufficientClusters)

	require.Len(t, steps, 6)
	assert.Equal(t, step{cluster.Edge{A: 0, B: 1, Weight: 0}, cluster.OutcomeCreated, 1}, steps[0])
}

// TestRun_EquidistantTriple: three mutually tied points resolve the same way
// whatever order they are listed in.
func TestRun_EquidistantTriple(t *testing.T) {
	a, b, c := point.New(1, 0, 0), point.New(0, 1, 0), point.New(0, 0, 1)
	orders := []point.Set{{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a}}

	wantEdges := []cluster.Edge{{A: 0, B: 1}, {A: 0, B: 2}, {A: 1, B: 2}}
	wantOutcomes := []cluster.Outcome{cluster.OutcomeCreated, cluster.OutcomeJoined, cluster.OutcomeInternal}

	for i, pts := range orders {
		for rep := 0; rep < 2; rep++ {
			var edges []cluster.Edge
			var outcomes []cluster.Outcome
			res, err := cluster.Run(pts, cluster.WithLargest(1), cluster.WithObserver(
				func(_ int, e cluster.Edge, o cluster.Outcome, _ int) {
					edges = append(edges, e)
					outcomes = append(outcomes, o)
				}))
			require.NoError(t, err, "order %d", i)
			assert.Equal(t, wantEdges, edges, "order %d", i)
			assert.Equal(t, wantOutcomes, outcomes, "order %d", i)
			assert.Equal(t, []cluster.ClusterID{0, 0, 0}, res.Assignment, "order %d", i)
		}

		_, err := cluster.Run(pts)
		assert.ErrorIs(t, err, cluster.ErrInsufficientClusters)
	}
}

// TestRun_PartitionInvariant checks that the final groups cover every point
// exactly once, under limits that leave many clusters.
func TestRun_PartitionInvariant(t *testing.T) {
	pts := randomSet(21, 80, 100)
	for _, limit := range []int{15, 40, 120} {
		res, err := cluster.Run(pts,
			cluster.WithMetric(cluster.SquaredEuclidean),
			cluster.WithEdgeLimit(limit),
			cluster.WithLargest(1),
		)
		require.NoError(t, err, "limit %d", limit)

		seen := make(map[int]bool, pts.Len())
		total := 0
		for _, g := range cluster.Partition(res.Assignment) {
			for _, i := range g {
				assert.False(t, seen[i], "point %d in two groups", i)
				seen[i] = true
			}
			total += len(g)
		}
		assert.Equal(t, pts.Len(), total)
		assert.Len(t, seen, pts.Len())
	}
}

// TestRun_MonotonicConsolidation: counting untouched points as singletons,
// the number of groups never grows, and drops by exactly one whenever an
// edge creates, joins or merges.
func TestRun_MonotonicConsolidation(t *testing.T) {
	pts := randomSet(5, 50, 30)
	touched := make(map[int]bool)
	groups := pts.Len()
	lastActive := 0

	_, err := cluster.Run(pts, cluster.WithLargest(1), cluster.WithObserver(
		func(step int, e cluster.Edge, o cluster.Outcome, active int) {
			prev := groups
			touched[e.A], touched[e.B] = true, true
			groups = active + pts.Len() - len(touched)
			switch o {
			case cluster.OutcomeInternal:
				assert.Equal(t, prev, groups, "step %d", step)
				assert.Equal(t, lastActive, active, "step %d", step)
			case cluster.OutcomeMerged:
				assert.Equal(t, prev-1, groups, "step %d", step)
				assert.Equal(t, lastActive-1, active, "step %d", step)
			default:
				assert.Equal(t, prev-1, groups, "step %d", step)
			}
			lastActive = active
		}))
	require.NoError(t, err)
	assert.Equal(t, 1, groups)
	assert.Equal(t, 1, lastActive)
}

// TestRun_Idempotent runs the same input twice with different strategies and
// worker counts and expects identical results.
func TestRun_Idempotent(t *testing.T) {
	pts := randomSet(99, 70, 8)
	first, err := cluster.Run(pts, cluster.WithEdgeLimit(35))
	require.NoError(t, err)

	for _, opts := range [][]cluster.Option{
		{cluster.WithEdgeLimit(35)},
		{cluster.WithEdgeLimit(35), cluster.WithStrategy(cluster.StrategyRescan)},
		{cluster.WithEdgeLimit(35), cluster.WithWorkers(4)},
	} {
		again, err := cluster.Run(pts, opts...)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// TestRun_InputUntouched ensures Run does not reorder or mutate the points.
func TestRun_InputUntouched(t *testing.T) {
	pts := mustWorkedExample(t)
	orig := pts.Clone()
	_, _ = cluster.Run(pts, cluster.WithEdgeLimit(10))
	assert.Equal(t, orig, pts)
}

// TestRun_Logging checks the Debug stage summaries reach the logger.
func TestRun_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	_, err := cluster.Run(mustWorkedExample(t),
		cluster.WithMetric(cluster.SquaredEuclidean),
		cluster.WithEdgeLimit(10),
		cluster.WithLogger(zap.New(core)),
	)
	require.NoError(t, err)

	entries := logs.FilterMessage("edges processed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(20), fields["points"])
	assert.Equal(t, int64(1), fields["merges"])
	assert.Equal(t, int64(11), fields["clusters"])
	assert.Equal(t, "euclidean", fields["metric"])
	assert.Equal(t, 1, logs.FilterMessage("edges ordered").Len())
}

// TestParseNames round-trips metric and strategy names.
func TestParseNames(t *testing.T) {
	for _, m := range []cluster.Metric{cluster.DotProduct, cluster.SquaredEuclidean, cluster.Manhattan} {
		got, err := cluster.ParseMetric(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	for _, s := range strategies {
		got, err := cluster.ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := cluster.ParseMetric("cosine")
	assert.ErrorIs(t, err, cluster.ErrUnknownMetric)
	_, err = cluster.ParseStrategy("quick")
	assert.ErrorIs(t, err, cluster.ErrUnknownStrategy)
}
