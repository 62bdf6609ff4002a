// Package internal provides result types shared between the payload
// decoder and the reader.
package internal

// DecoderResult encapsulates the result of decoding a sampled symbol.
type DecoderResult struct {
	// RawBytes is the corrected data bit stream packed MSB-first; the
	// final byte is zero-padded when NumBits is not a multiple of 8.
	RawBytes []byte

	// NumBits is the exact number of valid bits in RawBytes.
	NumBits int

	// Text is the decoded text content.
	Text string

	// ByteSegments holds the raw bytes of each binary-mode run, in
	// stream order. Empty when the symbol contains no binary runs.
	ByteSegments [][]byte

	// ECLevel describes the error-correction level applied to the
	// symbol, or "" if not reported.
	ECLevel string

	// ErrorsCorrected is the number of codewords repaired by error
	// correction.
	ErrorsCorrected int
}

// NewDecoderResult creates a DecoderResult with the basic fields.
func NewDecoderResult(rawBytes []byte, numBits int, text string, byteSegments [][]byte, ecLevel string) *DecoderResult {
	return &DecoderResult{
		RawBytes:     rawBytes,
		NumBits:      numBits,
		Text:         text,
		ByteSegments: byteSegments,
		ECLevel:      ecLevel,
	}
}
