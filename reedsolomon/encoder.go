package reedsolomon

// Encoder performs Reed-Solomon encoding. It is used by tests to build
// valid Aztec codeword streams for the decoder.
type Encoder struct {
	field            *GF
	cachedGenerators []*GFPoly
}

// NewEncoder creates a new Encoder for the given field.
func NewEncoder(field *GF) *Encoder {
	e := &Encoder{
		field:            field,
		cachedGenerators: make([]*GFPoly, 1),
	}
	e.cachedGenerators[0] = newGFPoly(field, []int{1})
	return e
}

func (e *Encoder) buildGenerator(degree int) *GFPoly {
	if degree < len(e.cachedGenerators) {
		return e.cachedGenerators[degree]
	}
	lastGenerator := e.cachedGenerators[len(e.cachedGenerators)-1]
	for d := len(e.cachedGenerators); d <= degree; d++ {
		nextGenerator := lastGenerator.MultiplyPoly(
			newGFPoly(e.field, []int{1, e.field.Exp(d - 1 + e.field.GeneratorBase())}))
		e.cachedGenerators = append(e.cachedGenerators, nextGenerator)
		lastGenerator = nextGenerator
	}
	return e.cachedGenerators[degree]
}

// Encode appends ecWords error-correction codewords to the data in
// toEncode. toEncode must have space for data + ecWords values.
func (e *Encoder) Encode(toEncode []int, ecWords int) {
	if ecWords == 0 {
		panic("reedsolomon: no error correction codewords")
	}
	dataWords := len(toEncode) - ecWords
	if dataWords <= 0 {
		panic("reedsolomon: no data codewords provided")
	}
	generator := e.buildGenerator(ecWords)
	infoCoefficients := make([]int, dataWords)
	copy(infoCoefficients, toEncode[:dataWords])
	info := newGFPoly(e.field, infoCoefficients)
	info = info.MultiplyByMonomial(ecWords, 1)
	remainder := info.Divide(generator)[1]
	coefficients := remainder.Coefficients()
	numZero := ecWords - len(coefficients)
	for i := 0; i < numZero; i++ {
		toEncode[dataWords+i] = 0
	}
	copy(toEncode[dataWords+numZero:], coefficients)
}
