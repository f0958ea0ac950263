package component

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStallTrackerCountsIdleTicks(t *testing.T) {
	for _, n := range []int{0, 1, 6, 60} {
		s := NewStallTracker(cp.Vector{X: 3, Y: 1})
		for i := 0; i < n; i++ {
			s.Update(cp.Vector{X: 3, Y: 1})
		}
		assert.Equal(t, n, s.Count)
	}
}

func TestStallTrackerIgnoresVerticalMotion(t *testing.T) {
	s := NewStallTracker(cp.Vector{})
	for i := 0; i < 10; i++ {
		s.Update(cp.Vector{X: 0, Y: float64(i) * 0.3})
	}
	assert.Equal(t, 10, s.Count)
	assert.True(t, s.Stalled(5))
}

func TestStallTrackerResetsOnProgress(t *testing.T) {
	s := NewStallTracker(cp.Vector{})
	steps := []struct {
		x    float64
		want int
	}{
		{0.005, 1}, // under epsilon
		{0.01, 2},  // exactly epsilon is not progress
		{0.02, 0},  // progress, reference moves to 0.02
		{0.025, 1}, // measured from the new reference
		{-0.5, 0},  // direction does not matter
		{-0.5, 1},
	}
	for i, step := range steps {
		s.Update(cp.Vector{X: step.x, Y: 9})
		require.Equal(t, step.want, s.Count, "step %d", i)
	}
	assert.Equal(t, cp.Vector{X: -0.5, Y: 0}, s.Ref)
}

func TestStallTrackerReset(t *testing.T) {
	s := NewStallTracker(cp.Vector{})
	for i := 0; i < 4; i++ {
		s.Update(cp.Vector{})
	}

	ref := cp.Vector{X: 2, Y: 5}
	s.Reset(&ref, cp.Vector{X: 9, Y: 9})
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, cp.Vector{X: 2}, s.Ref)

	s.Update(cp.Vector{X: 2})
	s.Reset(nil, cp.Vector{X: 7, Y: 1})
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, cp.Vector{X: 7}, s.Ref)
}
