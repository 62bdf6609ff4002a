// Package reedsolomon implements Reed-Solomon error correction over the
// Galois fields used by the Aztec symbology.
package reedsolomon

import "fmt"

// GF represents a Galois field GF(2^n) for Reed-Solomon coding.
type GF struct {
	expTable      []int
	logTable      []int
	zero          *GFPoly
	one           *GFPoly
	size          int
	primitive     int
	generatorBase int
}

// Aztec data fields, one per codeword size. The field is selected by the
// symbol's layer count (6-bit codewords up to 2 layers, 8 up to 8, 10 up
// to 22, 12 beyond).
var (
	AztecData6  = NewGF(0x43, 64, 1)     // x^6 + x + 1
	AztecData8  = NewGF(0x12D, 256, 1)   // x^8 + x^5 + x^3 + x^2 + 1
	AztecData10 = NewGF(0x409, 1024, 1)  // x^10 + x^3 + 1
	AztecData12 = NewGF(0x1069, 4096, 1) // x^12 + x^6 + x^5 + x^3 + 1
)

// NewGF creates a GF(size) using the given primitive polynomial.
func NewGF(primitive, size, generatorBase int) *GF {
	gf := &GF{
		primitive:     primitive,
		size:          size,
		generatorBase: generatorBase,
		expTable:      make([]int, size),
		logTable:      make([]int, size),
	}

	x := 1
	for i := 0; i < size; i++ {
		gf.expTable[i] = x
		x *= 2
		if x >= size {
			x ^= primitive
			x &= size - 1
		}
	}
	for i := 0; i < size-1; i++ {
		gf.logTable[gf.expTable[i]] = i
	}

	gf.zero = newGFPoly(gf, []int{0})
	gf.one = newGFPoly(gf, []int{1})

	return gf
}

// Zero returns the zero polynomial.
func (gf *GF) Zero() *GFPoly { return gf.zero }

// One returns the one polynomial.
func (gf *GF) One() *GFPoly { return gf.one }

// BuildMonomial returns coefficient * x^degree.
func (gf *GF) BuildMonomial(degree, coefficient int) *GFPoly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return gf.zero
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return newGFPoly(gf, coefficients)
}

// AddOrSubtract computes a XOR b (addition and subtraction are the same in GF(2^n)).
func AddOrSubtract(a, b int) int {
	return a ^ b
}

// Exp returns 2^a in this field.
func (gf *GF) Exp(a int) int {
	return gf.expTable[a]
}

// Log returns log2(a) in this field.
func (gf *GF) Log(a int) int {
	if a == 0 {
		panic("reedsolomon: log(0)")
	}
	return gf.logTable[a]
}

// Inverse returns the multiplicative inverse of a.
func (gf *GF) Inverse(a int) int {
	if a == 0 {
		panic("reedsolomon: inverse(0)")
	}
	return gf.expTable[gf.size-gf.logTable[a]-1]
}

// Multiply returns a * b in this field.
func (gf *GF) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return gf.expTable[(gf.logTable[a]+gf.logTable[b])%(gf.size-1)]
}

// Size returns the size of the field.
func (gf *GF) Size() int { return gf.size }

// GeneratorBase returns the generator base.
func (gf *GF) GeneratorBase() int { return gf.generatorBase }

// String returns a string representation.
func (gf *GF) String() string {
	return fmt.Sprintf("GF(0x%x,%d)", gf.primitive, gf.size)
}
