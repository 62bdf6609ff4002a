package recovery

import "aztecscan/bitutil"

// gridSpacing is the distance between reference-grid lines in modules.
const gridSpacing = 16

// GridBorders returns the ascending list of boundary indices for one
// axis of the given dimension: the outer borders 0 and dim-1 plus every
// reference-grid line index, which start at (dim>>1)&0xF and repeat
// every gridSpacing modules.
func GridBorders(dim int) []int {
	borders := []int{0}
	for x := (dim >> 1) & (gridSpacing - 1); x < dim; x += gridSpacing {
		if x > borders[len(borders)-1] {
			borders = append(borders, x)
		}
	}
	if last := borders[len(borders)-1]; last != dim-1 {
		borders = append(borders, dim-1)
	}
	return borders
}

// Partition derives the grid-bounded sub-areas covering the sampled
// matrix and scores each one by the alignment mismatches along its
// interior edges. Edges lying on the outer matrix border are not
// scored: the symbol border is not a reference-grid line. The output
// order is row-major and stable across calls.
func Partition(m *bitutil.BitMatrix) []ScoredArea {
	bx := GridBorders(m.Width())
	by := GridBorders(m.Height())

	areas := make([]ScoredArea, 0, (len(bx)-1)*(len(by)-1))
	for j := 0; j+1 < len(by); j++ {
		for i := 0; i+1 < len(bx); i++ {
			area := Area{
				TopLeft:     Point{bx[i], by[j]},
				TopRight:    Point{bx[i+1], by[j]},
				BottomRight: Point{bx[i+1], by[j+1]},
				BottomLeft:  Point{bx[i], by[j+1]},
			}
			errors, total := scoreEdges(m, area)
			areas = append(areas, ScoredArea{Area: area, Errors: errors, Total: total})
		}
	}
	return areas
}

// scoreEdges sums alignment mismatches over the area's four edges,
// skipping edges on the outer border of the matrix.
func scoreEdges(m *bitutil.BitMatrix, a Area) (errors, total int) {
	left, right := a.TopLeft.X, a.TopRight.X
	top, bottom := a.TopLeft.Y, a.BottomLeft.Y

	if top != 0 {
		e, n := ScoreLine(m, true, top, left, right)
		errors, total = errors+e, total+n
	}
	if bottom != m.Height()-1 {
		e, n := ScoreLine(m, true, bottom, left, right)
		errors, total = errors+e, total+n
	}
	if left != 0 {
		e, n := ScoreLine(m, false, left, top, bottom)
		errors, total = errors+e, total+n
	}
	if right != m.Width()-1 {
		e, n := ScoreLine(m, false, right, top, bottom)
		errors, total = errors+e, total+n
	}
	return errors, total
}
