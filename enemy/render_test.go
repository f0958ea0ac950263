package enemy

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/prefabs"
	"github.com/stretchr/testify/assert"
)

func TestRenderKeepsBottomFlush(t *testing.T) {
	f := newFixture(t, prefabs.EnemySpec{})
	e := f.enemy
	e.Body.Pos = cp.Vector{X: 2, Y: 3}
	canvas := &fakeCanvas{}

	for i := 0; i < 90; i++ {
		e.Render(canvas)
		center, size := canvas.last[0], canvas.last[1]

		assert.GreaterOrEqual(t, size.X, 0.9-1e-9)
		assert.LessOrEqual(t, size.X, 1.1+1e-9)
		assert.InDelta(t, 2, size.X+size.Y, 1e-9)
		assert.InDelta(t, e.Body.Pos.Y-e.Body.Size.Y/2, center.Y-size.Y/2, 1e-9)
		assert.Equal(t, size, e.DrawSize)
	}
	assert.Equal(t, 90, canvas.rects)
	assert.Equal(t, cp.Vector{X: 0.9, Y: 0.9}, e.Body.Size)
	assert.Equal(t, cp.Vector{X: 2, Y: 3}, e.Body.Pos)
}

func TestRenderPulses(t *testing.T) {
	f := newFixture(t, prefabs.EnemySpec{})
	e := f.enemy

	seen := map[bool]bool{}
	for i := 0; i < 120; i++ {
		e.Render(nil)
		seen[e.DrawSize.Y > 1] = true
	}
	assert.True(t, seen[true])
	assert.True(t, seen[false])
}

func TestRenderSkipsDestroyed(t *testing.T) {
	f := newFixture(t, prefabs.EnemySpec{})
	f.enemy.Kill()
	canvas := &fakeCanvas{}
	f.enemy.Render(canvas)
	assert.Zero(t, canvas.rects)
}
