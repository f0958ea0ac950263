package system

import (
	"github.com/milk9111/patrolai/ecs"
	"github.com/sirupsen/logrus"
)

// CleanupSystem despawns destroyed actors at the end of the tick.
type CleanupSystem struct {
	Log      *logrus.Entry
	OnRemove func(a ecs.Actor)
}

func (s *CleanupSystem) Update(w *ecs.World) {
	for _, a := range w.Actors() {
		if !a.Destroyed() {
			continue
		}
		e, ok := w.EntityOf(a)
		if !ok {
			continue
		}
		w.Despawn(e)
		if s.OnRemove != nil {
			s.OnRemove(a)
		}
		if s.Log != nil {
			s.Log.WithField("entity", e.String()).Trace("system: despawned")
		}
	}
}
