package player

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/physics"
	"golang.org/x/image/colornames"
)

const (
	bulletSpeed = 0.5
	bulletLife  = 90
	bulletPower = 1
)

// Bullet flies straight until it hits a tile, a target or runs out of time.
type Bullet struct {
	Pos  cp.Vector
	Vel  cp.Vector
	Size cp.Vector

	owner     any
	physics   *physics.World
	life      int
	destroyed bool
}

func NewBullet(pos, vel cp.Vector, owner any, phys *physics.World) *Bullet {
	return &Bullet{
		Pos:     pos,
		Vel:     vel,
		Size:    cp.Vector{X: 0.3, Y: 0.15},
		owner:   owner,
		physics: phys,
		life:    bulletLife,
	}
}

func (b *Bullet) Update() {
	if b.destroyed {
		return
	}
	b.Pos = b.Pos.Add(b.Vel)
	b.life--
	if b.life <= 0 || (b.physics != nil && b.physics.TileCollisionTest(b.Pos, b.Size)) {
		b.destroyed = true
	}
}

func (b *Bullet) Render(c common.Canvas) {
	if b.destroyed {
		return
	}
	c.FillRect(b.Pos, b.Size, colornames.Gold)
}

func (b *Bullet) Damage(int, any)  {}
func (b *Bullet) Collide(any) bool { return false }
func (b *Bullet) Destroyed() bool  { return b.destroyed }

// Hitbox returns the bullet's box.
func (b *Bullet) Hitbox() (pos, size cp.Vector) { return b.Pos, b.Size }

func (b *Bullet) Owner() any { return b.owner }
func (b *Bullet) Power() int { return bulletPower }
func (b *Bullet) Expire()    { b.destroyed = true }
