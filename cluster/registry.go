package cluster

import "fmt"

// Clusterer maintains the point→cluster registry of one clustering run.
// It is not safe for concurrent use; each run owns its own instance.
//
// Process applies one edge:
//   - both endpoints unassigned      → new cluster id for both   (OutcomeCreated)
//   - exactly one endpoint assigned  → the other joins its id    (OutcomeJoined)
//   - both assigned, same id         → no change                 (OutcomeInternal)
//   - both assigned, different ids   → B's cluster takes A's id  (OutcomeMerged)
//
// Edges whose endpoints are equal or outside [0, Len()) are rejected with
// OutcomeInvalid and leave the registry untouched.
type Clusterer interface {
	// Process applies e to the registry.
	Process(e Edge) Outcome
	// Active returns the number of distinct clusters right now.
	Active() int
	// Assignment returns a fresh copy of the point→cluster mapping;
	// untouched points hold Unassigned.
	Assignment() []ClusterID
	// Len returns the number of points tracked.
	Len() int
}

// NewClusterer returns an empty registry over n points using strategy s.
//
// Error Conditions:
//   - ErrOptionViolation : if n < 0.
//   - ErrUnknownStrategy : if s is not defined.
func NewClusterer(n int, s Strategy) (Clusterer, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: point count cannot be negative (%d)", ErrOptionViolation, n)
	}
	switch s {
	case StrategyForest:
		return newForest(n), nil
	case StrategyRescan:
		return newRescan(n), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
	}
}

// validEdge reports whether e names two distinct tracked points.
func validEdge(e Edge, n int) bool {
	return e.A != e.B && e.A >= 0 && e.B >= 0 && e.A < n && e.B < n
}

// rescan stores the label of every point directly and relabels the whole
// slice on a merge.
type rescan struct {
	labels []ClusterID
	next   ClusterID
	active int
}

func newRescan(n int) *rescan {
	labels := make([]ClusterID, n)
	for i := range labels {
		labels[i] = Unassigned
	}

	return &rescan{labels: labels}
}

func (r *rescan) Process(e Edge) Outcome {
	if !validEdge(e, len(r.labels)) {
		return OutcomeInvalid
	}
	a, b := r.labels[e.A], r.labels[e.B]
	switch {
	case a == Unassigned && b == Unassigned:
		r.labels[e.A], r.labels[e.B] = r.next, r.next
		r.next++
		r.active++
		return OutcomeCreated
	case b == Unassigned:
		r.labels[e.B] = a
		return OutcomeJoined
	case a == Unassigned:
		r.labels[e.A] = b
		return OutcomeJoined
	case a == b:
		return OutcomeInternal
	}
	for i, l := range r.labels {
		if l == b {
			r.labels[i] = a
		}
	}
	r.active--

	return OutcomeMerged
}

func (r *rescan) Active() int { return r.active }

func (r *rescan) Len() int { return len(r.labels) }

func (r *rescan) Assignment() []ClusterID {
	out := make([]ClusterID, len(r.labels))
	copy(out, r.labels)

	return out
}

// forest is a disjoint-set forest with union by size and path compression.
// parent[i] == -1 marks an unassigned point, parent[i] == i a root.
// label and size are meaningful at roots only. On a merge the surviving
// root inherits the label of A's cluster, whichever root is physically
// kept, so Assignment matches rescan exactly.
type forest struct {
	parent []int
	size   []int
	label  []ClusterID
	next   ClusterID
	active int
}

func newForest(n int) *forest {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}

	return &forest{
		parent: parent,
		size:   make([]int, n),
		label:  make([]ClusterID, n),
	}
}

// find returns the root of an assigned point, halving the path as it goes.
func (f *forest) find(u int) int {
	for f.parent[u] != u {
		f.parent[u] = f.parent[f.parent[u]]
		u = f.parent[u]
	}

	return u
}

// attach hangs unassigned point u under root.
func (f *forest) attach(u, root int) {
	f.parent[u] = root
	f.size[root]++
}

func (f *forest) Process(e Edge) Outcome {
	if !validEdge(e, len(f.parent)) {
		return OutcomeInvalid
	}
	ua, ub := f.parent[e.A] < 0, f.parent[e.B] < 0
	switch {
	case ua && ub:
		f.parent[e.A] = e.A
		f.size[e.A] = 1
		f.label[e.A] = f.next
		f.attach(e.B, e.A)
		f.next++
		f.active++
		return OutcomeCreated
	case ub:
		f.attach(e.B, f.find(e.A))
		return OutcomeJoined
	case ua:
		f.attach(e.A, f.find(e.B))
		return OutcomeJoined
	}

	ra, rb := f.find(e.A), f.find(e.B)
	if ra == rb {
		return OutcomeInternal
	}
	keep := f.label[ra]
	if f.size[ra] < f.size[rb] {
		ra, rb = rb, ra
	}
	f.parent[rb] = ra
	f.size[ra] += f.size[rb]
	f.label[ra] = keep
	f.active--

	return OutcomeMerged
}

func (f *forest) Active() int { return f.active }

func (f *forest) Len() int { return len(f.parent) }

func (f *forest) Assignment() []ClusterID {
	out := make([]ClusterID, len(f.parent))
	for i, p := range f.parent {
		if p < 0 {
			out[i] = Unassigned
			continue
		}
		out[i] = f.label[f.find(i)]
	}

	return out
}
