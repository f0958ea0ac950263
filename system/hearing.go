package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/ecs"
)

// Listener is an actor that reacts to gunshots.
type Listener interface {
	HearShot(pos cp.Vector)
	Position() cp.Vector
	HearingRange() float64
}

// HearingSystem forwards this tick's shot events to every listener in range.
// A zero hearing range hears everything.
type HearingSystem struct{}

func (HearingSystem) Update(w *ecs.World) {
	shots := w.Events().Peek(ecs.EventShot)
	if len(shots) == 0 {
		return
	}
	actors := w.Actors()
	for _, evt := range shots {
		shot, ok := evt.Data.(ecs.ShotEvent)
		if !ok {
			continue
		}
		for _, a := range actors {
			l, ok := a.(Listener)
			if !ok || a.Destroyed() {
				continue
			}
			if r := l.HearingRange(); r > 0 && l.Position().Distance(shot.Pos) > r {
				continue
			}
			l.HearShot(shot.Pos)
		}
	}
}
