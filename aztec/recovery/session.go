package recovery

import (
	"sync"

	"aztecscan/bitutil"
)

// Session accumulates the best observed version of every sub-area
// across repeated decode attempts against one physical symbol. It is
// owned by the caller and injected into the reader: evidence persists
// across frames until a composited decode succeeds, at which point the
// reader calls Reset. Safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	entries map[Area]*entry
}

// entry is the best-known sub-matrix for one area. The bits are a
// snapshot owned by the session.
type entry struct {
	bits   *bitutil.BitMatrix
	errors int
	total  int
}

func (e *entry) ratio() float64 {
	if e.total == 0 {
		return 0
	}
	return float64(e.errors) / float64(e.total)
}

// NewSession creates an empty recovery session.
func NewSession() *Session {
	return &Session{entries: make(map[Area]*entry)}
}

// Update records the current sample of the scored area when it is the
// best seen so far. The sub-matrix is snapshotted out of sample, so the
// stored bits are independent of the caller's matrix.
//
// The return value reports an improvement: true only when an existing
// entry was replaced by a strictly lower error ratio. The first
// insertion for an area establishes baseline evidence and returns
// false.
func (s *Session) Update(scored ScoredArea, sample *bitutil.BitMatrix) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.entries[scored.Area]
	if ok && cur.ratio() <= scored.ErrorRatio() {
		return false
	}
	a := scored.Area
	s.entries[a] = &entry{
		bits:   sample.Extract(a.TopLeft.X, a.TopLeft.Y, a.Width(), a.Height()),
		errors: scored.Errors,
		total:  scored.Total,
	}
	return ok
}

// Best returns a copy of the best-known sub-matrix for the area and its
// error ratio.
func (s *Session) Best(area Area) (*bitutil.BitMatrix, float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[area]
	if !ok {
		return nil, 0, false
	}
	return e.bits.Clone(), e.ratio(), true
}

// Len returns the number of cached areas.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Reset drops all accumulated evidence. Called after a composited
// decode succeeds, so that the next scan does not inherit sub-areas
// from an unrelated symbol of the same size.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[Area]*entry)
}
