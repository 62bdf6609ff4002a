package aztec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aztecscan"
	"aztecscan/aztec/detector"
	"aztecscan/aztec/recovery"
	"aztecscan/bitutil"
	"aztecscan/internal"
)

// matrixBinarizer exposes a prebuilt matrix as a Binarizer.
type matrixBinarizer struct {
	m *bitutil.BitMatrix
}

func (b matrixBinarizer) Width() int  { return b.m.Width() }
func (b matrixBinarizer) Height() int { return b.m.Height() }

func (b matrixBinarizer) BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error) {
	return b.m.Row(y, row), nil
}

func (b matrixBinarizer) BlackMatrix() (*bitutil.BitMatrix, error) {
	return b.m, nil
}

func bitmapOf(m *bitutil.BitMatrix) *aztecscan.BinaryBitmap {
	return aztecscan.NewBinaryBitmap(matrixBinarizer{m: m})
}

// stubDetector wraps whatever matrix it is given in a fixed full-range
// geometry. A separate matrix can be served for mirrored passes.
type stubDetector struct {
	err         error
	mirrored    *bitutil.BitMatrix
	mirrorCalls int
}

var stubPoints = []aztecscan.ResultPoint{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}, {X: 7, Y: 8}}

func (d *stubDetector) Detect(matrix *bitutil.BitMatrix, mirror bool) (*detector.Result, error) {
	if mirror {
		d.mirrorCalls++
		if d.mirrored == nil {
			return nil, aztecscan.ErrNotFound
		}
		matrix = d.mirrored
	}
	if d.err != nil {
		return nil, d.err
	}
	return &detector.Result{
		Bits:         matrix,
		Points:       stubPoints,
		Compact:      false,
		NbDataBlocks: 17,
		NbLayers:     4,
	}, nil
}

// matchDecoder succeeds only when the sampled grid equals the reference
// symbol, which makes composite convergence observable.
type matchDecoder struct {
	want  *bitutil.BitMatrix
	calls int
}

func (d *matchDecoder) Decode(det *detector.Result) (*internal.DecoderResult, error) {
	d.calls++
	if det.Bits.Equals(d.want) {
		r := internal.NewDecoderResult([]byte{0x4f, 0x4b}, 16, "OK", nil, "64%")
		r.ErrorsCorrected = 2
		return r, nil
	}
	return nil, aztecscan.ErrChecksum
}

// referenceGrid builds a 23x23 symbol whose reference-grid lines carry
// the expected checkerboard.
func referenceGrid() *bitutil.BitMatrix {
	m := bitutil.NewBitMatrix(23)
	for c := 0; c < 23; c++ {
		if c&1 == 1 {
			m.Set(c, 11)
			m.Set(11, c)
		}
	}
	return m
}

func TestReaderDirectDecode(t *testing.T) {
	clean := referenceGrid()
	dec := &matchDecoder{want: clean}
	r := NewReader(Config{Detector: &stubDetector{}, Decoder: dec})

	var seen []aztecscan.ResultPoint
	opts := &aztecscan.DecodeOptions{
		ResultPointCallback: func(p aztecscan.ResultPoint) { seen = append(seen, p) },
	}

	result, err := r.Decode(bitmapOf(clean), opts)
	require.NoError(t, err)

	assert.Equal(t, "OK", result.Text)
	assert.Equal(t, []byte{0x4f, 0x4b}, result.RawBytes)
	assert.Equal(t, 16, result.NumBits)
	assert.Equal(t, aztecscan.FormatAztec, result.Format)
	assert.Equal(t, stubPoints, result.Points)
	assert.Equal(t, stubPoints, seen)

	assert.Equal(t, "]z0", result.Metadata[aztecscan.MetadataSymbologyIdentifier])
	assert.Equal(t, "64%", result.Metadata[aztecscan.MetadataErrorCorrectionLevel])
	assert.Equal(t, 2, result.Metadata[aztecscan.MetadataErrorsCorrected])
	assert.Equal(t, SymbolInfo{Compact: false, NbLayers: 4, NbDataBlocks: 17},
		result.Metadata[aztecscan.MetadataAztecSymbol])
	assert.NotContains(t, result.Metadata, aztecscan.MetadataByteSegments)

	// A successful direct decode leaves no recovery evidence behind.
	assert.Equal(t, 1, dec.calls)
	assert.Equal(t, 0, r.Session().Len())
}

func TestReaderNotFound(t *testing.T) {
	r := NewReader(Config{
		Detector: &stubDetector{err: aztecscan.ErrNotFound},
		Decoder:  &matchDecoder{want: referenceGrid()},
	})

	_, err := r.Decode(bitmapOf(bitutil.NewBitMatrix(23)), nil)
	assert.ErrorIs(t, err, aztecscan.ErrNotFound)
	assert.Equal(t, 0, r.Session().Len())
}

func TestReaderFirstFailureKeepsEvidence(t *testing.T) {
	clean := referenceGrid()
	dec := &matchDecoder{want: clean}
	r := NewReader(Config{Detector: &stubDetector{}, Decoder: dec})

	corrupt := clean.Clone()
	corrupt.Flip(1, 11)
	corrupt.Flip(3, 11)

	_, err := r.Decode(bitmapOf(corrupt), nil)
	assert.ErrorIs(t, err, aztecscan.ErrChecksum)

	// Baseline evidence for every sub-area, but no composite retry on
	// first sight.
	assert.Equal(t, 4, r.Session().Len())
	assert.Equal(t, 1, dec.calls)
}

func TestReaderRepeatedFrameDoesNotRetry(t *testing.T) {
	clean := referenceGrid()
	dec := &matchDecoder{want: clean}
	r := NewReader(Config{Detector: &stubDetector{}, Decoder: dec})

	corrupt := clean.Clone()
	corrupt.Flip(1, 11)

	_, err := r.Decode(bitmapOf(corrupt), nil)
	require.ErrorIs(t, err, aztecscan.ErrChecksum)
	_, err = r.Decode(bitmapOf(corrupt), nil)
	require.ErrorIs(t, err, aztecscan.ErrChecksum)

	// The identical frame improves nothing, so the decoder never sees
	// a composite.
	assert.Equal(t, 2, dec.calls)
	assert.Equal(t, 4, r.Session().Len())
}

func TestReaderCompositeRecovery(t *testing.T) {
	clean := referenceGrid()
	dec := &matchDecoder{want: clean}
	session := recovery.NewSession()
	r := NewReader(Config{Detector: &stubDetector{}, Decoder: dec, Session: session})

	// Frame one corrupts the left-hand areas, frame two the right-hand
	// ones. Together the best-known sub-areas form the clean symbol.
	frame1 := clean.Clone()
	frame1.Flip(1, 11)
	frame1.Flip(3, 11)
	frame2 := clean.Clone()
	frame2.Flip(13, 11)
	frame2.Flip(15, 11)

	_, err := r.Decode(bitmapOf(frame1), nil)
	require.ErrorIs(t, err, aztecscan.ErrChecksum)
	require.Equal(t, 4, session.Len())

	result, err := r.Decode(bitmapOf(frame2), nil)
	require.NoError(t, err)
	assert.Equal(t, "OK", result.Text)

	// Direct decode of each frame plus one composite decode.
	assert.Equal(t, 3, dec.calls)
	// A composited success clears the session.
	assert.Equal(t, 0, session.Len())
}

func TestReaderMirroredRetry(t *testing.T) {
	clean := referenceGrid()
	corrupt := clean.Clone()
	corrupt.Flip(1, 11)

	det := &stubDetector{mirrored: clean}
	dec := &matchDecoder{want: clean}
	r := NewReader(Config{Detector: det, Decoder: dec, AttemptMirrored: true})

	result, err := r.Decode(bitmapOf(corrupt), nil)
	require.NoError(t, err)
	assert.Equal(t, "OK", result.Text)
	assert.Equal(t, 1, det.mirrorCalls)
}

func TestReaderMirroredOffByDefault(t *testing.T) {
	clean := referenceGrid()
	corrupt := clean.Clone()
	corrupt.Flip(1, 11)

	det := &stubDetector{mirrored: clean}
	r := NewReader(Config{Detector: det, Decoder: &matchDecoder{want: clean}})

	_, err := r.Decode(bitmapOf(corrupt), nil)
	assert.ErrorIs(t, err, aztecscan.ErrChecksum)
	assert.Equal(t, 0, det.mirrorCalls)
}

func TestReaderResetKeepsSession(t *testing.T) {
	clean := referenceGrid()
	r := NewReader(Config{Detector: &stubDetector{}, Decoder: &matchDecoder{want: clean}})

	corrupt := clean.Clone()
	corrupt.Flip(1, 11)
	_, err := r.Decode(bitmapOf(corrupt), nil)
	require.Error(t, err)
	require.Equal(t, 4, r.Session().Len())

	// Reset is scoped to per-decode state; accumulated evidence is the
	// session's to keep.
	r.Reset()
	assert.Equal(t, 4, r.Session().Len())
}

func TestReaderSharedSession(t *testing.T) {
	clean := referenceGrid()
	session := recovery.NewSession()
	dec := &matchDecoder{want: clean}

	r1 := NewReader(Config{Detector: &stubDetector{}, Decoder: dec, Session: session})
	r2 := NewReader(Config{Detector: &stubDetector{}, Decoder: dec, Session: session})

	frame1 := clean.Clone()
	frame1.Flip(1, 11)
	frame1.Flip(3, 11)
	frame2 := clean.Clone()
	frame2.Flip(13, 11)
	frame2.Flip(15, 11)

	_, err := r1.Decode(bitmapOf(frame1), nil)
	require.ErrorIs(t, err, aztecscan.ErrChecksum)

	// A second reader sharing the session benefits from the first
	// reader's evidence.
	result, err := r2.Decode(bitmapOf(frame2), nil)
	require.NoError(t, err)
	assert.Equal(t, "OK", result.Text)
	assert.Equal(t, 0, session.Len())
}

func TestReaderDetectorError(t *testing.T) {
	boom := errors.New("sampling failed")
	r := NewReader(Config{Detector: &stubDetector{err: boom}, Decoder: &matchDecoder{}})

	_, err := r.Decode(bitmapOf(bitutil.NewBitMatrix(23)), nil)
	assert.ErrorIs(t, err, boom)
}
