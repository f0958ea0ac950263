package system

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/ecs"
)

const (
	debrisCount   = 24
	debrisLife    = 60
	debrisSpeed   = 0.15
	debrisGravity = -0.008
	debrisSize    = 0.15
)

type particle struct {
	pos   cp.Vector
	vel   cp.Vector
	life  int
	color color.Color
}

// DebrisField is the burst of particles left behind by a kill. It is a
// system so it ticks and draws with the world.
type DebrisField struct {
	Rand      common.Rand
	particles []particle
}

func NewDebrisField(r common.Rand) *DebrisField {
	if r == nil {
		r = common.NewRand(1)
	}
	return &DebrisField{Rand: r}
}

func (d *DebrisField) SpawnDebris(pos cp.Vector, c color.Color) {
	for i := 0; i < debrisCount; i++ {
		angle := common.Range(d.Rand, 0, 2*math.Pi)
		speed := common.Range(d.Rand, debrisSpeed/4, debrisSpeed)
		d.particles = append(d.particles, particle{
			pos:   pos,
			vel:   cp.ForAngle(angle).Mult(speed),
			life:  debrisLife,
			color: c,
		})
	}
}

// Len returns the number of live particles.
func (d *DebrisField) Len() int {
	return len(d.particles)
}

func (d *DebrisField) Update(*ecs.World) {
	live := d.particles[:0]
	for _, p := range d.particles {
		p.life--
		if p.life <= 0 {
			continue
		}
		p.vel.Y += debrisGravity
		p.pos = p.pos.Add(p.vel)
		live = append(live, p)
	}
	d.particles = live
}

func (d *DebrisField) Render(_ *ecs.World, c common.Canvas) {
	for _, p := range d.particles {
		scale := float64(p.life) / debrisLife
		c.FillRect(p.pos, cp.Vector{X: debrisSize * scale, Y: debrisSize * scale}, p.color)
	}
}
