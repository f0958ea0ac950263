package system

import (
	"github.com/milk9111/patrolai/ecs"
	"github.com/milk9111/patrolai/physics"
)

// PhysicsSystem integrates every bodied actor against the tile world.
type PhysicsSystem struct {
	World *physics.World
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if s == nil || s.World == nil || w == nil {
		return
	}
	for _, a := range w.Actors() {
		if a.Destroyed() {
			continue
		}
		bodied, ok := a.(ecs.Bodied)
		if !ok {
			continue
		}
		s.World.Integrate(bodied.PhysicsBody())
	}
}

// ActorSystem runs each live actor's Update once per tick.
type ActorSystem struct{}

func (ActorSystem) Update(w *ecs.World) {
	for _, a := range w.Actors() {
		if !a.Destroyed() {
			a.Update()
		}
	}
}
