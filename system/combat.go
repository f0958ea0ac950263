package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/ecs"
	"github.com/milk9111/patrolai/physics"
)

// Projectile is an actor that damages the first target it overlaps.
type Projectile interface {
	ecs.Actor
	Hitbox() (pos, size cp.Vector)
	Owner() any
	Power() int
	Expire()
}

// CombatSystem resolves projectile hits for the frame. Targets are bodied
// actors other than the projectile's owner that collide with it.
type CombatSystem struct{}

func (CombatSystem) Update(w *ecs.World) {
	actors := w.Actors()
	for _, a := range actors {
		proj, ok := a.(Projectile)
		if !ok || proj.Destroyed() {
			continue
		}
		pos, size := proj.Hitbox()
		for _, target := range actors {
			if target == a || target == proj.Owner() || target.Destroyed() {
				continue
			}
			bodied, ok := target.(ecs.Bodied)
			if !ok || !target.Collide(proj) {
				continue
			}
			body := bodied.PhysicsBody()
			if !physics.Overlaps(pos, size, body.Pos, body.Size) {
				continue
			}
			target.Damage(proj.Power(), proj)
			proj.Expire()
			break
		}
	}
}
