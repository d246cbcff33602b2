// Package circuits groups 3D junction boxes into circuits by connecting
// them pair by pair in ascending weight order, and reports the product of
// the three largest circuits.
//
// 🚀 What is circuits?
//
//	A small, deterministic batch engine:
//		• point/    — immutable integer points and the "x,y,z" record parser
//		• cluster/  — pair enumeration, edge ordering, incremental merging, size aggregation
//		• cmd/circuits — command-line wrapper with YAML config and structured logging
//
// ✨ Guarantees
//
//   - Deterministic – edges are totally ordered by (weight, min index, max index)
//   - Isolated – every run owns its registry; no globals
//   - Explicit failures – fewer than two points or three final circuits is an error
//
// Quick ASCII example (edges applied left to right):
//
//	0─1   2─3   1─2
//	{0,1} {2,3} {0,1,2,3}
//
//	go get github.com/katalvlaran/circuits
package circuits
