package enemy

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	swellAmount = 0.1
	renderStep  = 1.0 / ticksPerSecond
)

// DrawBox returns the pulsing box the enemy is drawn with. The bottom edge
// stays level with the collider.
func (e *Enemy) DrawBox() (center, size cp.Vector) {
	s := math.Sin(e.swell * e.Variant.Spec.SwellSpeed)
	size = cp.Vector{X: 1 - swellAmount*s, Y: 1 + swellAmount*s}
	center = e.Body.Pos.Add(cp.Vector{Y: (size.Y - e.Body.Size.Y) / 2})
	return center, size
}

// Render advances the swell timer and draws the enemy. It never touches the
// collider.
func (e *Enemy) Render(c Canvas) {
	if e.destroyed {
		return
	}
	e.swell += renderStep
	center, size := e.DrawBox()
	e.DrawSize = size
	if c != nil {
		c.FillRect(center, size, e.Color)
	}
}
