package recovery

import "aztecscan/bitutil"

// ScoreLine counts mismatches against the expected reference-grid
// checkerboard along one grid line. For a horizontal line, fixed is the
// row and the range [from, to] runs over columns; for a vertical line,
// fixed is the column and the range runs over rows. The range is
// inclusive. The expected value at position c along the traversed axis
// of dimension dim is dark iff ((dim>>1)&1) == (c&1).
//
// Pure function of its inputs; repeated calls return identical counts.
func ScoreLine(m *bitutil.BitMatrix, horizontal bool, fixed, from, to int) (errors, total int) {
	dim := m.Height()
	if horizontal {
		dim = m.Width()
	}
	parity := (dim >> 1) & 1
	for c := from; c <= to; c++ {
		expected := parity == c&1
		var got bool
		if horizontal {
			got = m.Get(c, fixed)
		} else {
			got = m.Get(fixed, c)
		}
		if got != expected {
			errors++
		}
		total++
	}
	return errors, total
}
