// Package recovery implements cross-frame recovery of corrupted Aztec
// symbols.
//
// A full-range Aztec symbol embeds a reference grid: rows and columns of
// known checkerboard modules every 16 modules. When a frame fails to
// decode, the sampled grid is partitioned into the rectangular sub-areas
// bounded by those grid lines, each sub-area is scored by how badly its
// grid-line edges disagree with the expected checkerboard, and the best
// version of every sub-area seen so far is kept in a Session. Once any
// sub-area improves, the best-known sub-areas are composited into a
// reconstructed grid and decoding is retried.
package recovery

// Point is an integer module coordinate in the sampled grid.
type Point struct {
	X, Y int
}

// Area names a rectangular sub-area of the grid by its four corner
// points (top-left, top-right, bottom-right, bottom-left), inclusive.
// Areas derived from equally sized symbols are structurally equal across
// frames, which makes Area usable as a cache key.
type Area struct {
	TopLeft     Point
	TopRight    Point
	BottomRight Point
	BottomLeft  Point
}

// Width returns the number of columns the area spans.
func (a Area) Width() int {
	return a.TopRight.X - a.TopLeft.X + 1
}

// Height returns the number of rows the area spans.
func (a Area) Height() int {
	return a.BottomRight.Y - a.TopRight.Y + 1
}

// ScoredArea pairs an Area with the alignment mismatch counts measured
// on the current sample.
type ScoredArea struct {
	Area   Area
	Errors int
	Total  int
}

// ErrorRatio returns the fraction of checked alignment cells that
// disagree with the expected checkerboard value. An area with no
// interior edges to check scores 0.
func (s ScoredArea) ErrorRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Total)
}
