package recovery

import "aztecscan/bitutil"

// Compose assembles a square matrix of the given dimension from the
// best-known sub-areas. Only identities present in areas are consulted,
// so evidence from a differently sized symbol can never leak in; areas
// without a cached entry leave their region at the default unset value.
// Composing twice from an unchanged session yields equal matrices.
func (s *Session) Compose(dimension int, areas []ScoredArea) *bitutil.BitMatrix {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := bitutil.NewBitMatrix(dimension)
	for _, sa := range areas {
		e, ok := s.entries[sa.Area]
		if !ok {
			continue
		}
		out.Paste(e.bits, sa.Area.TopLeft.X, sa.Area.TopLeft.Y)
	}
	return out
}
