package aztecscan

// DecodeOptions configures barcode decoding behavior.
type DecodeOptions struct {
	// TryHarder enables spending more time looking for barcodes.
	TryHarder bool

	// CharacterSet overrides the character set to use when decoding.
	CharacterSet string

	// ResultPointCallback, when set, is invoked once per located
	// boundary point, in point order, before Decode returns a result.
	ResultPointCallback func(ResultPoint)
}

// Reader decodes barcodes from a BinaryBitmap.
type Reader interface {
	// Decode attempts to decode a barcode from the image.
	Decode(image *BinaryBitmap, opts *DecodeOptions) (*Result, error)

	// Reset resets any internal per-call state.
	Reset()
}
