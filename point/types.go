package point

import (
	"errors"
	"fmt"
	"math/bits"
)

// Sentinel errors for point parsing.
var (
	// ErrEmptyInput is returned when the input holds no records at all.
	ErrEmptyInput = errors.New("point: input contains no records")

	// ErrMalformedRecord is returned when a line is not three comma-separated
	// non-negative base-10 integers that fit in uint32.
	ErrMalformedRecord = errors.New("point: malformed record")

	// ErrWeightOverflow is returned when a pair weight does not fit in uint64.
	// Each single product of two uint32 values fits; only their sum can wrap.
	ErrWeightOverflow = errors.New("point: pair weight overflows uint64")
)

// Point is an immutable coordinate triple.
type Point struct {
	X, Y, Z uint32
}

// New returns the Point (x, y, z).
func New(x, y, z uint32) Point {
	return Point{X: x, Y: y, Z: z}
}

// String renders the point in its record form "x,y,z".
func (p Point) String() string {
	return fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z)
}

// Dot returns the coordinate dot product p·q.
// If the sum exceeds uint64 it returns ErrWeightOverflow instead of wrapping.
func (p Point) Dot(q Point) (uint64, error) {
	return sum3(p, q,
		uint64(p.X)*uint64(q.X),
		uint64(p.Y)*uint64(q.Y),
		uint64(p.Z)*uint64(q.Z),
	)
}

// SquaredDistance returns the squared Euclidean distance between p and q.
// If the sum exceeds uint64 it returns ErrWeightOverflow instead of wrapping.
func (p Point) SquaredDistance(q Point) (uint64, error) {
	dx, dy, dz := absDiff(p.X, q.X), absDiff(p.Y, q.Y), absDiff(p.Z, q.Z)

	return sum3(p, q, dx*dx, dy*dy, dz*dz)
}

// sum3 adds three terms, reporting a carry out of the top bit.
func sum3(p, q Point, a, b, c uint64) (uint64, error) {
	s, c1 := bits.Add64(a, b, 0)
	s, c2 := bits.Add64(s, c, 0)
	if c1|c2 != 0 {
		return 0, fmt.Errorf("%w: %v and %v", ErrWeightOverflow, p, q)
	}

	return s, nil
}

// ManhattanDistance returns |dx|+|dy|+|dz| between p and q.
// At most 3·(2³²−1), so it always fits.
func (p Point) ManhattanDistance(q Point) uint64 {
	return absDiff(p.X, q.X) + absDiff(p.Y, q.Y) + absDiff(p.Z, q.Z)
}

func absDiff(a, b uint32) uint64 {
	if a > b {
		return uint64(a - b)
	}

	return uint64(b - a)
}

// Set is an ordered, read-only sequence of points. The index of a point in
// the Set is its identity.
type Set []Point

// Len returns the number of points.
func (s Set) Len() int { return len(s) }

// At returns the point at index i. It panics if i is out of range, like a
// slice access.
func (s Set) At(i int) Point { return s[i] }

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	copy(out, s)

	return out
}
