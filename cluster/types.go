// Package cluster defines the edge, identifier, option and error types used
// by the incremental clustering pipeline.
package cluster

import (
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/circuits/point"
)

// Sentinel errors for clustering.
var (
	// ErrTooFewPoints is returned when fewer than two points are supplied:
	// no pair exists, so there is nothing to enumerate or merge.
	ErrTooFewPoints = errors.New("cluster: at least two points are required")

	// ErrInsufficientClusters is returned when the final partition holds
	// fewer clusters than the aggregator has to multiply.
	ErrInsufficientClusters = errors.New("cluster: insufficient clusters")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("cluster: invalid option supplied")

	// ErrUnknownMetric is returned for a Metric value or name that is not defined.
	ErrUnknownMetric = errors.New("cluster: unknown metric")

	// ErrUnknownStrategy is returned for a Strategy value or name that is not defined.
	ErrUnknownStrategy = errors.New("cluster: unknown merge strategy")

	// ErrIndexOutOfRange is returned when an edge references a point the
	// clusterer does not track.
	ErrIndexOutOfRange = errors.New("cluster: edge endpoint out of range")
)

// DefaultLargest is how many of the largest cluster sizes are multiplied.
const DefaultLargest = 3

// ClusterID is an opaque cluster identifier. IDs are allocated from a
// monotonically increasing counter starting at 0.
type ClusterID int

// Unassigned marks a point that no processed edge has touched yet.
const Unassigned ClusterID = -1

// Edge is an unordered pair of point indices with its weight.
// Edges built by this package always satisfy A < B.
type Edge struct {
	A, B   int
	Weight uint64
}

// NewEdge returns the canonical edge between i and j (smaller index first).
func NewEdge(i, j int, w uint64) Edge {
	if i > j {
		i, j = j, i
	}

	return Edge{A: i, B: j, Weight: w}
}

// String renders the edge as "A-B(w)".
func (e Edge) String() string {
	return fmt.Sprintf("%d-%d(%d)", e.A, e.B, e.Weight)
}

// Metric selects the scalar weight assigned to a pair of points.
//
//   - DotProduct       — ax*bx + ay*by + az*bz. The default, and the literal
//     weight the pipeline is defined over; it is not a geometric distance.
//   - SquaredEuclidean — dx² + dy² + dz².
//   - Manhattan        — |dx| + |dy| + |dz|.
type Metric int

const (
	// DotProduct weighs a pair by its coordinate dot product.
	DotProduct Metric = iota
	// SquaredEuclidean weighs a pair by its squared straight-line distance.
	SquaredEuclidean
	// Manhattan weighs a pair by its L1 distance.
	Manhattan
)

var metricNames = map[Metric]string{
	DotProduct:       "dot",
	SquaredEuclidean: "euclidean",
	Manhattan:        "manhattan",
}

// String returns the metric's configuration name.
func (m Metric) String() string {
	if s, ok := metricNames[m]; ok {
		return s
	}

	return fmt.Sprintf("Metric(%d)", int(m))
}

// Valid reports whether m is a defined Metric.
func (m Metric) Valid() bool {
	_, ok := metricNames[m]

	return ok
}

// Weight computes the pair weight of a and b under m.
//
// Error Conditions:
//   - ErrUnknownMetric       : if m is not a defined Metric.
//   - point.ErrWeightOverflow : if the weight does not fit in uint64.
func (m Metric) Weight(a, b point.Point) (uint64, error) {
	switch m {
	case DotProduct:
		return a.Dot(b)
	case SquaredEuclidean:
		return a.SquaredDistance(b)
	case Manhattan:
		return a.ManhattanDistance(b), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownMetric, m)
	}
}

// ParseMetric maps a configuration name ("dot", "euclidean", "manhattan")
// to its Metric.
func ParseMetric(name string) (Metric, error) {
	for m, s := range metricNames {
		if s == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// Strategy selects how the clusterer relabels points on a merge.
//
//   - StrategyForest — union by size with path compression; O(α(N)) per edge.
//   - StrategyRescan — relabel every point of the absorbed cluster; O(N) per merge.
//
// Both strategies yield the same Assignment for the same edge sequence.
type Strategy int

const (
	// StrategyForest is a disjoint-set forest whose roots carry cluster labels.
	StrategyForest Strategy = iota
	// StrategyRescan relabels by scanning the whole registry on each merge.
	StrategyRescan
)

var strategyNames = map[Strategy]string{
	StrategyForest: "forest",
	StrategyRescan: "rescan",
}

// String returns the strategy's configuration name.
func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}

	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Valid reports whether s is a defined Strategy.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]

	return ok
}

// ParseStrategy maps a configuration name ("forest", "rescan") to its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Outcome describes what processing one edge did to the partition.
type Outcome int

const (
	// OutcomeInvalid: the edge referenced an untracked or identical endpoint; nothing changed.
	OutcomeInvalid Outcome = iota
	// OutcomeCreated: both endpoints were unassigned and now form a new cluster.
	OutcomeCreated
	// OutcomeJoined: one unassigned endpoint joined the other's cluster.
	OutcomeJoined
	// OutcomeInternal: both endpoints already shared a cluster.
	OutcomeInternal
	// OutcomeMerged: two distinct clusters became one.
	OutcomeMerged
)

// String returns a lower-case name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeJoined:
		return "joined"
	case OutcomeInternal:
		return "internal"
	case OutcomeMerged:
		return "merged"
	default:
		return "invalid"
	}
}

// Observer is called after every processed edge with its 0-based step,
// the edge itself, what it did, and the number of active clusters after it.
type Observer func(step int, e Edge, o Outcome, active int)

// Option configures Options via functional arguments.
// Invalid values are recorded and surfaced as an error when the pipeline runs.
type Option func(*Options)

// Options holds the tunables of a clustering run.
type Options struct {
	// Metric weighs each pair. Default DotProduct.
	Metric Metric

	// Strategy picks the merge mechanics. Default StrategyForest.
	Strategy Strategy

	// EdgeLimit, if > 0, processes only the EdgeLimit lowest-ordered edges.
	// 0 processes the full edge set.
	EdgeLimit int

	// Workers is the number of goroutines used to enumerate edges.
	// 1 enumerates sequentially.
	Workers int

	// Largest is how many of the biggest cluster sizes are multiplied.
	Largest int

	// Logger receives Debug-level stage summaries. Never nil.
	Logger *zap.Logger

	// Observer, if non-nil, is invoked after every processed edge.
	Observer Observer

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - Metric    = DotProduct
//   - Strategy  = StrategyForest
//   - EdgeLimit = 0 (all edges)
//   - Workers   = 1
//   - Largest   = DefaultLargest
//   - Logger    = zap.NewNop()
func DefaultOptions() Options {
	return Options{
		Metric:    DotProduct,
		Strategy:  StrategyForest,
		EdgeLimit: 0,
		Workers:   1,
		Largest:   DefaultLargest,
		Logger:    zap.NewNop(),
	}
}

// Err returns the first violation recorded while applying options.
func (o Options) Err() error { return o.err }

// fail records the first violation only.
func (o *Options) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

// WithMetric selects the pair weight. Undefined metrics → ErrUnknownMetric.
func WithMetric(m Metric) Option {
	return func(o *Options) {
		if !m.Valid() {
			o.fail(fmt.Errorf("%w: %v", ErrUnknownMetric, m))
			return
		}
		o.Metric = m
	}
}

// WithStrategy selects the merge mechanics. Undefined strategies → ErrUnknownStrategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		if !s.Valid() {
			o.fail(fmt.Errorf("%w: %v", ErrUnknownStrategy, s))
			return
		}
		o.Strategy = s
	}
}

// WithEdgeLimit restricts processing to the k lowest-ordered edges.
//
//	k > 0: process at most k edges
//	k == 0: process every edge (default)
//	k < 0: invalid option → ErrOptionViolation
func WithEdgeLimit(k int) Option {
	return func(o *Options) {
		if k < 0 {
			o.fail(fmt.Errorf("%w: EdgeLimit cannot be negative (%d)", ErrOptionViolation, k))
			return
		}
		o.EdgeLimit = k
	}
}

// WithWorkers sets the enumeration fan-out.
//
//	w > 0: use w goroutines
//	w == 0: use runtime.GOMAXPROCS(0)
//	w < 0: invalid option → ErrOptionViolation
func WithWorkers(w int) Option {
	return func(o *Options) {
		switch {
		case w < 0:
			o.fail(fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, w))
		case w == 0:
			o.Workers = runtime.GOMAXPROCS(0)
		default:
			o.Workers = w
		}
	}
}

// WithLargest sets how many of the largest cluster sizes are multiplied.
// k < 1 → ErrOptionViolation.
func WithLargest(k int) Option {
	return func(o *Options) {
		if k < 1 {
			o.fail(fmt.Errorf("%w: Largest must be positive (%d)", ErrOptionViolation, k))
			return
		}
		o.Largest = k
	}
}

// WithLogger routes stage summaries to l. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver registers a per-edge callback. A nil observer is ignored.
func WithObserver(fn Observer) Option {
	return func(o *Options) {
		if fn != nil {
			o.Observer = fn
		}
	}
}

// buildOptions applies opts over DefaultOptions and returns the first violation.
func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o, o.err
}
