package cluster

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/circuits/point"
)

// Enumerate returns every unordered pair of points as an Edge weighted by
// the configured Metric. Only WithMetric and WithWorkers affect it.
//
// Edges come out in row-major (A, B) order regardless of the worker count:
// row i occupies the fixed slot range [rowOffset(i), rowOffset(i+1)), so
// parallel rows never touch the same element. Coincident points still yield
// their own edge.
//
// Error Conditions:
//   - ErrTooFewPoints         : if points.Len() < 2.
//   - point.ErrWeightOverflow : if some pair weight does not fit in uint64;
//     no edges are returned rather than a wrapped, misordered weight.
//   - ErrOptionViolation, ErrUnknownMetric : for invalid options.
//
// Complexity: O(N²) time and memory.
func Enumerate(points point.Set, opts ...Option) ([]Edge, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return enumerate(points, o)
}

func enumerate(points point.Set, o Options) ([]Edge, error) {
	n := points.Len()
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, n)
	}

	edges := make([]Edge, pairCount(n))
	if o.Workers <= 1 {
		for i := 0; i < n-1; i++ {
			if err := fillRow(edges, points, o.Metric, i); err != nil {
				return nil, err
			}
		}

		return edges, nil
	}

	var g errgroup.Group
	g.SetLimit(o.Workers)
	for i := 0; i < n-1; i++ {
		i := i
		g.Go(func() error {
			return fillRow(edges, points, o.Metric, i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return edges, nil
}

// fillRow writes the edges (i, i+1) … (i, n-1) into their slots and stops
// at the first weight that cannot be computed.
func fillRow(dst []Edge, points point.Set, m Metric, i int) error {
	n := points.Len()
	base := rowOffset(n, i)
	a := points.At(i)
	for j := i + 1; j < n; j++ {
		w, err := m.Weight(a, points.At(j))
		if err != nil {
			return fmt.Errorf("cluster: edge %d-%d: %w", i, j, err)
		}
		dst[base+j-i-1] = Edge{A: i, B: j, Weight: w}
	}

	return nil
}

// pairCount is C(n, 2).
func pairCount(n int) int { return n * (n - 1) / 2 }

// rowOffset is the index of edge (i, i+1) in row-major pair order.
func rowOffset(n, i int) int { return i*n - i*(i+1)/2 }
