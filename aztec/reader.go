// Package aztec provides Aztec barcode reading with multi-frame
// recovery of partially corrupted symbols.
package aztec

import (
	"errors"

	"aztecscan"
	"aztecscan/aztec/decoder"
	"aztecscan/aztec/detector"
	"aztecscan/aztec/recovery"
	"aztecscan/internal"
)

// errNoImprovement reports that a recovery pass produced no sub-area
// better than the accumulated evidence, so recomposition would replay
// an already failed attempt.
var errNoImprovement = errors.New("aztec: no sub-area improved")

// PayloadDecoder turns a sampled symbol into decoded data. The default
// is the decoder package; tests substitute deterministic fakes.
type PayloadDecoder interface {
	Decode(det *detector.Result) (*internal.DecoderResult, error)
}

// decoderFunc adapts a plain function to PayloadDecoder.
type decoderFunc func(det *detector.Result) (*internal.DecoderResult, error)

func (f decoderFunc) Decode(det *detector.Result) (*internal.DecoderResult, error) {
	return f(det)
}

// SymbolInfo reports the structural parameters of a decoded symbol. It
// is attached to results under aztecscan.MetadataAztecSymbol.
type SymbolInfo struct {
	Compact      bool
	NbLayers     int
	NbDataBlocks int
}

// Config configures an Aztec Reader.
type Config struct {
	// Detector locates and samples the symbol. Required.
	Detector detector.Detector

	// Decoder decodes the sampled symbol. Defaults to the built-in
	// payload decoder.
	Decoder PayloadDecoder

	// Session holds cross-frame recovery evidence. One session per
	// physical scanning session; a fresh one is created when nil.
	Session *recovery.Session

	// AttemptMirrored enables one extra detect+decode pass on the
	// mirrored image after both the direct and the recovered decode
	// fail. No recovery evidence is collected from the mirrored pass.
	AttemptMirrored bool
}

// Reader decodes Aztec barcodes from binary images, accumulating
// recovery evidence across frames of the same physical symbol.
type Reader struct {
	detector detector.Detector
	decoder  PayloadDecoder
	session  *recovery.Session
	mirrored bool
}

// NewReader creates a Reader from the given configuration.
func NewReader(cfg Config) *Reader {
	dec := cfg.Decoder
	if dec == nil {
		dec = decoderFunc(decoder.Decode)
	}
	session := cfg.Session
	if session == nil {
		session = recovery.NewSession()
	}
	return &Reader{
		detector: cfg.Detector,
		decoder:  dec,
		session:  session,
		mirrored: cfg.AttemptMirrored,
	}
}

// Session returns the recovery session the reader accumulates evidence
// in.
func (r *Reader) Session() *recovery.Session {
	return r.session
}

// Decode locates and decodes an Aztec barcode in the given image.
//
// When the direct decode of the sampled grid fails, the grid is scored
// against the symbol's reference grid, the best-known version of every
// grid-bounded sub-area is updated in the session, and, if any area
// improved on the accumulated evidence, a composite of the best areas
// is decoded instead. Failed frames leave their evidence behind, so
// successive frames of the same symbol converge on a decodable
// composite.
func (r *Reader) Decode(image *aztecscan.BinaryBitmap, opts *aztecscan.DecodeOptions) (*aztecscan.Result, error) {
	matrix, err := image.BlackMatrix()
	if err != nil {
		return nil, err
	}

	det, err := r.detector.Detect(matrix, false)
	if err != nil {
		return nil, err
	}
	if det == nil {
		return nil, aztecscan.ErrNotFound
	}

	dr, decodeErr := r.decoder.Decode(det)
	if decodeErr != nil {
		if recovered, err := r.recoverDecode(det); err == nil {
			dr, decodeErr = recovered, nil
		}
	}
	if decodeErr != nil && r.mirrored {
		if mdet, err := r.detector.Detect(matrix, true); err == nil && mdet != nil {
			if mdr, err := r.decoder.Decode(mdet); err == nil {
				det, dr, decodeErr = mdet, mdr, nil
			}
		}
	}
	if decodeErr != nil {
		return nil, decodeErr
	}

	result := aztecscan.NewResult(dr.Text, dr.RawBytes, det.Points, aztecscan.FormatAztec)
	result.NumBits = dr.NumBits
	result.PutMetadata(aztecscan.MetadataSymbologyIdentifier, "]z0")
	if len(dr.ByteSegments) > 0 {
		result.PutMetadata(aztecscan.MetadataByteSegments, dr.ByteSegments)
	}
	if dr.ECLevel != "" {
		result.PutMetadata(aztecscan.MetadataErrorCorrectionLevel, dr.ECLevel)
	}
	if dr.ErrorsCorrected > 0 {
		result.PutMetadata(aztecscan.MetadataErrorsCorrected, dr.ErrorsCorrected)
	}
	result.PutMetadata(aztecscan.MetadataAztecSymbol, SymbolInfo{
		Compact:      det.Compact,
		NbLayers:     det.NbLayers,
		NbDataBlocks: det.NbDataBlocks,
	})

	if opts != nil && opts.ResultPointCallback != nil {
		for _, p := range det.Points {
			opts.ResultPointCallback(p)
		}
	}

	return result, nil
}

// recoverDecode diagnoses the failed sample, folds it into the session,
// and retries the decode on a composite of the best-known sub-areas.
// The session is cleared only when the composited decode succeeds.
func (r *Reader) recoverDecode(det *detector.Result) (*internal.DecoderResult, error) {
	areas := recovery.Partition(det.Bits)

	improved := false
	for _, sa := range areas {
		if r.session.Update(sa, det.Bits) {
			improved = true
		}
	}
	if !improved {
		return nil, errNoImprovement
	}

	composite := &detector.Result{
		Bits:         r.session.Compose(det.Bits.Width(), areas),
		Points:       det.Points,
		Compact:      det.Compact,
		NbDataBlocks: det.NbDataBlocks,
		NbLayers:     det.NbLayers,
	}
	dr, err := r.decoder.Decode(composite)
	if err != nil {
		return nil, err
	}
	r.session.Reset()
	return dr, nil
}

// Reset implements aztecscan.Reader. It deliberately does not clear the
// recovery session: its evidence is meant to outlive individual decode
// calls. Use Session().Reset() to discard evidence explicitly.
func (r *Reader) Reset() {}

// Compile-time check.
var _ aztecscan.Reader = (*Reader)(nil)
