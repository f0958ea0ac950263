package ecs

import (
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/physics"
)

// Actor is anything the simulation loop drives polymorphically.
type Actor interface {
	Update()
	Render(c common.Canvas)
	Damage(amount int, source any)
	Collide(other any) bool
	Destroyed() bool
}

// Bodied actors are integrated by the physics system.
type Bodied interface {
	PhysicsBody() *physics.Body
}

// World owns actors, their entity handles and the system order.
type World struct {
	entities  entityStore
	actors    SparseSet[Actor]
	handles   map[Actor]Entity
	scheduler *Scheduler
	events    EventQueue
	tick      uint64
}

// NewWorld creates an empty world running systems in the given order.
func NewWorld(systems ...System) *World {
	return &World{
		handles:   map[Actor]Entity{},
		scheduler: NewScheduler(systems...),
	}
}

// Spawn registers an actor and returns its handle.
func (w *World) Spawn(a Actor) Entity {
	if a == nil {
		return 0
	}
	if e, ok := w.handles[a]; ok {
		return e
	}
	e := w.entities.create()
	w.actors.Set(e.id(), a)
	w.handles[a] = e
	return e
}

// Despawn removes an actor. It reports whether the handle was alive.
func (w *World) Despawn(e Entity) bool {
	a, ok := w.Actor(e)
	if !ok {
		return false
	}
	w.actors.Remove(e.id())
	delete(w.handles, a)
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Actor returns the actor behind a live handle.
func (w *World) Actor(e Entity) (Actor, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	return w.actors.Get(e.id())
}

// EntityOf returns the handle of a spawned actor.
func (w *World) EntityOf(a Actor) (Entity, bool) {
	e, ok := w.handles[a]
	return e, ok
}

// Actors returns a snapshot of every actor, safe to hold while spawning or
// despawning.
func (w *World) Actors() []Actor {
	values := w.actors.Values()
	out := make([]Actor, len(values))
	copy(out, values)
	return out
}

// Len returns the number of live actors.
func (w *World) Len() int {
	return w.actors.Len()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	w.scheduler.Add(s)
}

// Systems returns the update order.
func (w *World) Systems() []System {
	return w.scheduler.Systems()
}

// Update runs all systems once, then drops this tick's events.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.scheduler.Update(w)
	w.events.flush()
	w.tick++
}

// Tick is the number of completed updates.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
