package decoder

import (
	"aztecscan/aztec/detector"
	"aztecscan/bitutil"
)

// extractBits reads all data modules from the sampled grid in stream
// order: layers from outermost to innermost, four sides per layer, two
// modules per position.
func extractBits(det *detector.Result) []bool {
	compact := det.Compact
	layers := det.NbLayers
	matrix := det.Bits

	baseMatrixSize := layers*4 + 11
	if !compact {
		baseMatrixSize = layers*4 + 14
	}

	alignmentMap := buildAlignmentMap(baseMatrixSize, compact)

	rawbits := make([]bool, totalBitsInLayer(layers, compact))

	rowOffset := 0
	for i := 0; i < layers; i++ {
		rowSize := (layers-i)*4 + 9
		if !compact {
			rowSize = (layers-i)*4 + 12
		}
		low := i * 2
		high := baseMatrixSize - 1 - low

		for j := 0; j < rowSize; j++ {
			columnOffset := j * 2
			for k := 0; k < 2; k++ {
				// left column
				rawbits[rowOffset+columnOffset+k] =
					readModule(matrix, alignmentMap, low+k, low+j)
				// bottom row
				rawbits[rowOffset+2*rowSize+columnOffset+k] =
					readModule(matrix, alignmentMap, low+j, high-k)
				// right column
				rawbits[rowOffset+4*rowSize+columnOffset+k] =
					readModule(matrix, alignmentMap, high-k, high-j)
				// top row
				rawbits[rowOffset+6*rowSize+columnOffset+k] =
					readModule(matrix, alignmentMap, high-j, low+k)
			}
		}
		rowOffset += rowSize * 8
	}

	return rawbits
}

// buildAlignmentMap maps abstract data-layer coordinates to sampled-grid
// coordinates. Full-range symbols insert a reference-grid line every 16
// modules, which the map skips over; compact symbols map one-to-one.
func buildAlignmentMap(baseMatrixSize int, compact bool) []int {
	alignmentMap := make([]int, baseMatrixSize)
	if compact {
		for i := range alignmentMap {
			alignmentMap[i] = i
		}
		return alignmentMap
	}
	matrixSize := baseMatrixSize + 1 + 2*((baseMatrixSize/2-1)/15)
	origCenter := baseMatrixSize / 2
	center := matrixSize / 2
	for i := 0; i < origCenter; i++ {
		newOffset := i + i/15
		alignmentMap[origCenter-i-1] = center - newOffset - 1
		alignmentMap[origCenter+i] = center + newOffset + 1
	}
	return alignmentMap
}

// readModule reads a single module through the alignment map. The x, y
// arguments are abstract coordinates; BitMatrix.Get expects x=column,
// y=row.
func readModule(matrix *bitutil.BitMatrix, alignmentMap []int, x, y int) bool {
	if x < 0 || x >= len(alignmentMap) || y < 0 || y >= len(alignmentMap) {
		return false
	}
	mx := alignmentMap[x]
	my := alignmentMap[y]
	if mx < 0 || mx >= matrix.Width() || my < 0 || my >= matrix.Height() {
		return false
	}
	return matrix.Get(mx, my)
}
