// Package decoder implements the Aztec payload decoder.
//
// It takes the detector's sampled grid along with the symbol's
// structural parameters (compact mode, layer count, data-block count)
// and produces the decoded payload:
//  1. Extract raw bits from the concentric data layers.
//  2. Correct errors using Reed-Solomon over the appropriate Galois field.
//  3. Unstuff the corrected codewords into the data bit stream.
//  4. Decode the bit stream using the Aztec five-mode encoding tables.
package decoder

import (
	"fmt"

	"aztecscan"
	"aztecscan/aztec/detector"
	"aztecscan/internal"
	"aztecscan/reedsolomon"
)

// Decode decodes the Aztec symbol described by the given detector result.
func Decode(det *detector.Result) (*internal.DecoderResult, error) {
	rawbits := extractBits(det)

	corr, err := correctBits(det, rawbits)
	if err != nil {
		return nil, err
	}

	text, segments, err := decodeBitStream(corr.bits)
	if err != nil {
		return nil, err
	}

	res := internal.NewDecoderResult(packBits(corr.bits), len(corr.bits), text, segments, corr.ecLevel)
	res.ErrorsCorrected = corr.corrected
	return res, nil
}

// codewordSize returns the number of bits per codeword for the symbol.
func codewordSize(nbLayers int) int {
	switch {
	case nbLayers <= 2:
		return 6
	case nbLayers <= 8:
		return 8
	case nbLayers <= 22:
		return 10
	default:
		return 12
	}
}

// totalBitsInLayer returns the number of data-layer bits in the symbol.
func totalBitsInLayer(layers int, compact bool) int {
	base := 112
	if compact {
		base = 88
	}
	return (base + 16*layers) * layers
}

// correction is the outcome of Reed-Solomon correction and unstuffing.
type correction struct {
	bits      []bool
	corrected int
	ecLevel   string
}

// correctBits applies Reed-Solomon error correction to the raw bit
// stream and unstuffs the data codewords.
func correctBits(det *detector.Result, rawbits []bool) (correction, error) {
	cwSize := codewordSize(det.NbLayers)
	numCodewords := len(rawbits) / cwSize

	if det.NbDataBlocks > numCodewords {
		return correction{}, aztecscan.ErrFormat
	}

	offset := len(rawbits) % cwSize
	numDataCodewords := det.NbDataBlocks
	numECCodewords := numCodewords - numDataCodewords

	// Raw bits to codeword integers, MSB first, skipping the offset bits.
	words := make([]int, numCodewords)
	for i := 0; i < numCodewords; i++ {
		w := 0
		for j := 0; j < cwSize; j++ {
			w <<= 1
			if rawbits[offset+i*cwSize+j] {
				w |= 1
			}
		}
		words[i] = w
	}

	var gf *reedsolomon.GF
	switch cwSize {
	case 6:
		gf = reedsolomon.AztecData6
	case 8:
		gf = reedsolomon.AztecData8
	case 10:
		gf = reedsolomon.AztecData10
	default:
		gf = reedsolomon.AztecData12
	}

	corrected, err := reedsolomon.NewDecoder(gf).Decode(words, numECCodewords)
	if err != nil {
		return correction{}, aztecscan.ErrChecksum
	}

	// Unstuff the corrected data codewords. All-zeros and all-ones
	// codewords are illegal after stuffing; a value of 1 stands for
	// cwSize-1 zero bits and mask-1 for cwSize-1 one bits.
	mask := (1 << uint(cwSize)) - 1
	stuffed := 0
	for i := 0; i < numDataCodewords; i++ {
		w := words[i]
		if w == 0 || w == mask {
			return correction{}, aztecscan.ErrFormat
		}
		if w == 1 || w == mask-1 {
			stuffed++
		}
	}

	bits := make([]bool, numDataCodewords*cwSize-stuffed)
	idx := 0
	for i := 0; i < numDataCodewords; i++ {
		w := words[i]
		if w == 1 || w == mask-1 {
			fill := w > 1
			for j := 0; j < cwSize-1; j++ {
				bits[idx] = fill
				idx++
			}
		} else {
			for bit := cwSize - 1; bit >= 0; bit-- {
				bits[idx] = (w & (1 << uint(bit))) != 0
				idx++
			}
		}
	}

	return correction{
		bits:      bits,
		corrected: corrected,
		ecLevel:   fmt.Sprintf("%d%%", 100*numECCodewords/numCodewords),
	}, nil
}

// packBits packs a bit stream into bytes, MSB first; the final byte is
// zero-padded.
func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return out
}
