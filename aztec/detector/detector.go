// Package detector defines the contract between the Aztec reader and
// the geometric detector. Locating the bullseye, reading the mode
// message and sampling the grid are the detector's job and live with
// the image pipeline, outside this module.
package detector

import (
	"aztecscan"
	"aztecscan/bitutil"
)

// Result carries the sampled symbol grid together with the geometry and
// structural parameters read from the mode message. The reader consumes
// it without mutating it.
type Result struct {
	// Bits is the normalized sampled grid, one cell per module.
	Bits *bitutil.BitMatrix

	// Points are the symbol's boundary points in image coordinates.
	Points []aztecscan.ResultPoint

	// Compact reports the compact symbol variant.
	Compact bool

	// NbDataBlocks is the number of data codewords.
	NbDataBlocks int

	// NbLayers is the number of data layers.
	NbLayers int
}

// Detector locates an Aztec symbol in a binarized image and samples its
// grid. Implementations return aztecscan.ErrNotFound when no symbol is
// present; mirror requests a mirrored-image detection pass.
type Detector interface {
	Detect(matrix *bitutil.BitMatrix, mirror bool) (*Result, error)
}
