package ecs

import "github.com/milk9111/patrolai/common"

// RenderSystem is a system that also draws, such as particle effects.
type RenderSystem interface {
	Render(w *World, c common.Canvas)
}

// Render draws every actor, then every render-capable system. Call it only
// after Update for the same frame.
func (w *World) Render(c common.Canvas) {
	if w == nil || c == nil {
		return
	}
	for _, a := range w.Actors() {
		a.Render(c)
	}
	for _, s := range w.scheduler.systems {
		if rs, ok := s.(RenderSystem); ok {
			rs.Render(w, c)
		}
	}
}
