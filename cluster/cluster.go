package cluster

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/circuits/point"
)

// Result is the outcome of a full clustering run.
type Result struct {
	// Product of the Options.Largest biggest cluster sizes.
	Product uint64
	// Sizes of every final cluster, largest first.
	Sizes []int
	// Assignment is the final point→cluster mapping.
	Assignment []ClusterID
	// Edges is the number of enumerated pairs, C(N,2).
	Edges int
	// Processed is the number of edges fed to the clusterer.
	Processed int
	// Merges counts OutcomeMerged steps.
	Merges int
	// Clusters is len(Sizes).
	Clusters int
}

// Run clusters points and returns the product of the largest cluster sizes.
//
// Steps:
//  1. Apply options; any recorded violation aborts the run.
//  2. Enumerate all C(N,2) weighted pairs.
//  3. Sort them by (Weight, A, B) ascending.
//  4. Truncate to EdgeLimit when one is set.
//  5. Feed every edge, in order, to a fresh Clusterer.
//  6. Aggregate sizes and multiply the Largest of them.
//
// Error Conditions:
//   - ErrOptionViolation, ErrUnknownMetric, ErrUnknownStrategy : invalid options.
//   - ErrTooFewPoints         : if points.Len() < 2.
//   - point.ErrWeightOverflow : if a pair weight does not fit in uint64.
//   - ErrInsufficientClusters : if fewer than Largest clusters remain.
//
// The run owns all of its state; concurrent calls to Run never interact.
// Complexity: O(N² log N) time, O(N²) memory.
func Run(points point.Set, opts ...Option) (Result, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return Result{}, err
	}
	log := o.Logger.With(
		zap.Int("points", points.Len()),
		zap.Stringer("metric", o.Metric),
		zap.Stringer("strategy", o.Strategy),
	)

	edges, err := enumerate(points, o)
	if err != nil {
		return Result{}, err
	}
	SortEdges(edges)
	total := len(edges)
	if o.EdgeLimit > 0 && o.EdgeLimit < total {
		edges = edges[:o.EdgeLimit]
	}
	log.Debug("edges ordered", zap.Int("edges", total), zap.Int("limit", o.EdgeLimit))

	c, err := NewClusterer(points.Len(), o.Strategy)
	if err != nil {
		return Result{}, err
	}
	merges, err := apply(c, edges, o.Observer)
	if err != nil {
		return Result{}, err
	}

	assign := c.Assignment()
	sizes := Sizes(assign)
	log.Debug("edges processed",
		zap.Int("processed", len(edges)),
		zap.Int("merges", merges),
		zap.Int("clusters", len(sizes)),
	)

	product, err := ProductOfLargest(sizes, o.Largest)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Product:    product,
		Sizes:      sizes,
		Assignment: assign,
		Edges:      total,
		Processed:  len(edges),
		Merges:     merges,
		Clusters:   len(sizes),
	}, nil
}

// apply feeds edges to c in order and returns the number of merges.
func apply(c Clusterer, edges []Edge, obs Observer) (int, error) {
	merges := 0
	for step, e := range edges {
		out := c.Process(e)
		switch out {
		case OutcomeInvalid:
			return merges, fmt.Errorf("%w: edge %v over %d points", ErrIndexOutOfRange, e, c.Len())
		case OutcomeMerged:
			merges++
		}
		if obs != nil {
			obs(step, e, out, c.Active())
		}
	}

	return merges, nil
}

// Cluster is a convenience wrapper around Run returning only the product.
func Cluster(points point.Set, opts ...Option) (uint64, error) {
	res, err := Run(points, opts...)
	if err != nil {
		return 0, err
	}

	return res.Product, nil
}
