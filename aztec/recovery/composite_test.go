package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aztecscan/bitutil"
)

func TestComposeReassemblesSingleFrame(t *testing.T) {
	// With every area cached from the same frame, the composite is that
	// frame.
	sample := cleanGrid(23)
	sample.SetRegion(2, 2, 5, 5)
	areas := Partition(sample)

	s := NewSession()
	for _, sa := range areas {
		s.Update(sa, sample)
	}

	composite := s.Compose(23, areas)
	assert.True(t, composite.Equals(sample))
}

func TestComposeMergesFrames(t *testing.T) {
	frameA := cleanGrid(23)
	frameA.SetRegion(1, 1, 4, 4)
	frameB := cleanGrid(23)
	frameB.SetRegion(13, 13, 4, 4)
	areas := Partition(frameA)

	s := NewSession()
	s.Update(areas[0], frameA) // top-left from A
	s.Update(areas[3], frameB) // bottom-right from B

	composite := s.Compose(23, areas)
	assert.True(t, composite.Get(1, 1), "top-left evidence from frame A")
	assert.True(t, composite.Get(14, 14), "bottom-right evidence from frame B")
}

func TestComposeLeavesUncachedAreasUnset(t *testing.T) {
	sample := cleanGrid(23)
	areas := Partition(sample)

	s := NewSession()
	s.Update(areas[0], sample)

	composite := s.Compose(23, areas)
	require.Equal(t, 23, composite.Width())

	// Cached region matches the evidence.
	assert.True(t, composite.Extract(0, 0, 12, 12).Equals(sample.Extract(0, 0, 12, 12)))
	// The region covered only by uncached areas stays blank.
	assert.True(t, composite.Extract(12, 12, 11, 11).Equals(bitutil.NewBitMatrixWithSize(11, 11)))
}

func TestComposeIdempotent(t *testing.T) {
	sample := cleanGrid(23)
	areas := Partition(sample)

	s := NewSession()
	for _, sa := range areas {
		s.Update(sa, sample)
	}

	first := s.Compose(23, areas)
	second := s.Compose(23, areas)
	assert.True(t, first.Equals(second))
}

func TestComposeIgnoresForeignEvidence(t *testing.T) {
	// Evidence cached for a differently sized symbol must not leak into
	// a composite restricted to this symbol's areas.
	small := cleanGrid(23)
	smallAreas := Partition(small)
	large := bitutil.NewBitMatrix(41)
	large.SetRegion(0, 0, 5, 5)

	s := NewSession()
	for _, sa := range Partition(large) {
		s.Update(sa, large)
	}

	composite := s.Compose(23, smallAreas)
	assert.True(t, composite.Equals(bitutil.NewBitMatrix(23)))
}
