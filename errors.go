package aztecscan

import "errors"

// Expected decode outcomes are reported through sentinel errors so that
// callers can tell "no symbol present" apart from "symbol present but
// corrupted beyond what error correction (and cross-frame recovery) can
// repair". Structural failures from collaborators propagate as their
// own error values.
var (
	// ErrNotFound is returned when no barcode is found in the image.
	ErrNotFound = errors.New("barcode not found")

	// ErrChecksum is returned when error correction cannot validate or
	// repair the sampled data.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when the sampled data violates the symbology
	// format and cannot be decoded.
	ErrFormat = errors.New("format error")
)
