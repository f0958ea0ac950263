package component

import "github.com/jakecoffman/cp"

const (
	// DefaultStallEpsilon is the masked displacement that counts as progress.
	DefaultStallEpsilon = 0.01
)

// HorizontalMask keeps x and drops y, so jumping or bobbing never counts as
// progress.
var HorizontalMask = cp.Vector{X: 1, Y: 0}

// StallTracker counts consecutive updates in which an entity failed to move
// further than Epsilon along the masked axes from its reference position.
type StallTracker struct {
	Mask    cp.Vector
	Epsilon float64

	Ref   cp.Vector
	Count int
}

// NewStallTracker creates a horizontal tracker anchored at pos.
func NewStallTracker(pos cp.Vector) *StallTracker {
	s := &StallTracker{Mask: HorizontalMask, Epsilon: DefaultStallEpsilon}
	s.ResetAt(pos)
	return s
}

func (s *StallTracker) mask(pos cp.Vector) cp.Vector {
	return cp.Vector{X: pos.X * s.Mask.X, Y: pos.Y * s.Mask.Y}
}

// ResetAt zeroes the count and moves the reference to pos (masked).
func (s *StallTracker) ResetAt(pos cp.Vector) {
	if s == nil {
		return
	}
	s.Count = 0
	s.Ref = s.mask(pos)
}

// Reset zeroes the count. When ref is nil, current is used as the new
// reference.
func (s *StallTracker) Reset(ref *cp.Vector, current cp.Vector) {
	if ref != nil {
		s.ResetAt(*ref)
		return
	}
	s.ResetAt(current)
}

// Update records one tick at pos.
func (s *StallTracker) Update(pos cp.Vector) {
	if s == nil {
		return
	}
	masked := s.mask(pos)
	if masked.Distance(s.Ref) > s.Epsilon {
		s.ResetAt(pos)
		return
	}
	s.Count++
}

// Stalled reports whether more than threshold updates passed without progress.
func (s *StallTracker) Stalled(threshold int) bool {
	return s != nil && s.Count > threshold
}
