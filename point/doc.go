// Package point defines the immutable 3D integer points that feed the
// clustering engine, and a parser for the line-oriented "x,y,z" record
// format they usually arrive in.
//
// A Set is an ordered sequence of points; each point is identified by its
// 0-based position in the Set, never by its coordinates, so two coincident
// points remain two distinct members.
//
// Usage:
//
//	pts, err := point.ParseString("162,817,812\n57,618,57\n")
//	if err != nil {
//	  // handle point.ErrEmptyInput or point.ErrMalformedRecord
//	}
//	fmt.Println(pts.Len()) // 2
package point
