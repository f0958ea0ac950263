package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/levels"
)

const (
	// DefaultGravity is applied to vertical velocity every tick (y-up).
	DefaultGravity = -0.01
	// DefaultMaxFall caps downward speed per tick.
	DefaultMaxFall = 1.0
	// DefaultFriction damps horizontal speed while grounded.
	DefaultFriction = 0.8

	queryInset      = 1e-4
	groundProbe     = 0.05
	sweepIterations = 10
)

const collisionTypeSolid cp.CollisionType = 1

// Body is the kinematic state the physics world integrates. Positions are the
// centre of an axis-aligned box of Size. Units are tiles and ticks.
type Body struct {
	Pos      cp.Vector
	Vel      cp.Vector
	Size     cp.Vector
	OnGround bool

	// GravityScale multiplies world gravity; zero means 1.
	GravityScale float64
	// Ghost bodies pass through tiles.
	Ghost bool
}

// NewBody creates a body centred at pos.
func NewBody(pos, size cp.Vector) *Body {
	return &Body{Pos: pos, Size: size}
}

// World owns the Chipmunk space holding static tile shapes. Tile queries go
// through the space's spatial index; bodies are integrated here rather than
// by the Chipmunk solver so velocities stay in per-tick units.
type World struct {
	space *cp.Space

	Width    int
	Height   int
	Gravity  float64
	MaxFall  float64
	Friction float64
}

// NewWorld builds a world of width x height tiles where solid(x, row)
// reports a filled tile. Rows are counted from the top.
func NewWorld(width, height int, solid func(x, row int) bool) *World {
	space := cp.NewSpace()
	w := &World{
		space:    space,
		Width:    width,
		Height:   height,
		Gravity:  DefaultGravity,
		MaxFall:  DefaultMaxFall,
		Friction: DefaultFriction,
	}
	w.buildStaticShapes(solid)
	return w
}

// NewWorldFromLevel builds a world from a level's physics layers.
func NewWorldFromLevel(lvl *levels.Level) *World {
	if lvl == nil {
		return NewWorld(0, 0, func(int, int) bool { return false })
	}
	return NewWorld(lvl.Width, lvl.Height, lvl.Solid)
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// buildStaticShapes merges runs of solid tiles into rectangles and adds
// walls on the sides and floor of the map.
func (w *World) buildStaticShapes(solid func(x, row int) bool) {
	if w.Width <= 0 || w.Height <= 0 {
		return
	}
	processed := make([]bool, w.Width*w.Height)
	for row := 0; row < w.Height; row++ {
		for x := 0; x < w.Width; x++ {
			idx := row*w.Width + x
			if processed[idx] {
				continue
			}
			if !solid(x, row) {
				processed[idx] = true
				continue
			}

			width := 1
			for x+width < w.Width {
				idx2 := row*w.Width + x + width
				if processed[idx2] || !solid(x+width, row) {
					break
				}
				width++
			}

			height := 1
		heightLoop:
			for row+height < w.Height {
				for xi := x; xi < x+width; xi++ {
					idx2 := (row+height)*w.Width + xi
					if processed[idx2] || !solid(xi, row+height) {
						break heightLoop
					}
				}
				height++
			}

			top := float64(w.Height - row)
			bb := cp.BB{L: float64(x), B: top - float64(height), R: float64(x + width), T: top}
			w.addStatic(bb)

			for yy := row; yy < row+height; yy++ {
				for xx := x; xx < x+width; xx++ {
					processed[yy*w.Width+xx] = true
				}
			}
		}
	}

	worldW := float64(w.Width)
	worldH := float64(w.Height)
	w.addStatic(cp.BB{L: -1, B: -1, R: 0, T: worldH + 1})
	w.addStatic(cp.BB{L: worldW, B: -1, R: worldW + 1, T: worldH + 1})
	w.addStatic(cp.BB{L: -1, B: -1, R: worldW + 1, T: 0})
}

func (w *World) addStatic(bb cp.BB) {
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	w.space.AddShape(shape)
}

// TileCollisionTest reports whether a box of size centred at pos overlaps
// any static shape. Touching edges do not count.
func (w *World) TileCollisionTest(pos, size cp.Vector) bool {
	if w == nil || w.space == nil {
		return false
	}
	hw := size.X/2 - queryInset
	hh := size.Y/2 - queryInset
	if hw < 0 {
		hw = 0
	}
	if hh < 0 {
		hh = 0
	}
	bb := cp.NewBBForExtents(pos, hw, hh)
	hit := false
	w.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		if shape.Body() == w.space.StaticBody {
			hit = true
		}
	}, nil)
	return hit
}

// IsGrounded probes just below the body for standing geometry.
func (w *World) IsGrounded(b *Body) bool {
	if w == nil || b == nil {
		return false
	}
	probe := b.Pos.Sub(cp.Vector{X: 0, Y: groundProbe})
	return w.TileCollisionTest(probe, cp.Vector{X: b.Size.X * 0.9, Y: b.Size.Y})
}

// Integrate applies gravity and moves the body one tick, one axis at a time,
// stopping it against tiles.
func (w *World) Integrate(b *Body) {
	if w == nil || b == nil {
		return
	}
	scale := b.GravityScale
	if scale == 0 {
		scale = 1
	}
	b.Vel.Y += w.Gravity * scale
	if b.Vel.Y < -w.MaxFall {
		b.Vel.Y = -w.MaxFall
	}

	if b.Ghost {
		b.Pos = b.Pos.Add(b.Vel)
		b.OnGround = false
		return
	}

	dx, blockedX := w.sweep(b, cp.Vector{X: b.Vel.X})
	b.Pos = b.Pos.Add(dx)
	if blockedX {
		b.Vel.X = 0
	}

	dy, blockedY := w.sweep(b, cp.Vector{Y: b.Vel.Y})
	b.Pos = b.Pos.Add(dy)
	if blockedY {
		b.Vel.Y = 0
	}

	b.OnGround = w.IsGrounded(b)
	if b.OnGround {
		b.Vel.X *= w.Friction
	}
}

// sweep returns how far the body can move along delta before touching a
// tile, and whether it was blocked.
func (w *World) sweep(b *Body, delta cp.Vector) (cp.Vector, bool) {
	if delta.X == 0 && delta.Y == 0 {
		return delta, false
	}
	if !w.TileCollisionTest(b.Pos.Add(delta), b.Size) {
		return delta, false
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < sweepIterations; i++ {
		mid := (lo + hi) / 2
		if w.TileCollisionTest(b.Pos.Add(delta.Mult(mid)), b.Size) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return delta.Mult(lo), true
}

// Overlaps reports whether two centred boxes intersect.
func Overlaps(aPos, aSize, bPos, bSize cp.Vector) bool {
	a := cp.NewBBForExtents(aPos, aSize.X/2, aSize.Y/2)
	b := cp.NewBBForExtents(bPos, bSize.X/2, bSize.Y/2)
	return a.Intersects(b)
}
