package cluster_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/circuits/point"
	"github.com/stretchr/testify/require"
)

// workedExample is the 20-box puzzle sample.
const workedExample = `162,817,812
57,618,57
906,360,560
592,479,940
352,342,300
466,668,158
542,29,236
431,825,988
739,650,466
52,470,668
216,146,977
819,987,18
117,168,530
805,96,715
346,949,466
970,615,88
941,993,340
862,61,35
984,92,344
425,690,689
`

// mustWorkedExample parses workedExample or fails the test.
func mustWorkedExample(tb testing.TB) point.Set {
	tb.Helper()
	pts, err := point.ParseString(workedExample)
	require.NoError(tb, err)
	require.Equal(tb, 20, pts.Len())

	return pts
}

// randomSet returns n points with coordinates in [0, span), seeded for
// reproducibility. A small span forces many tied weights.
func randomSet(seed int64, n int, span int) point.Set {
	r := rand.New(rand.NewSource(seed))
	pts := make(point.Set, n)
	for i := range pts {
		pts[i] = point.New(uint32(r.Intn(span)), uint32(r.Intn(span)), uint32(r.Intn(span)))
	}

	return pts
}
