package ecs

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubActor struct {
	name      string
	updates   int
	renders   int
	damage    int
	destroyed bool
}

func (a *stubActor) Update()                       { a.updates++ }
func (a *stubActor) Render(common.Canvas)          { a.renders++ }
func (a *stubActor) Damage(amount int, source any) { a.damage += amount }
func (a *stubActor) Collide(any) bool              { return true }
func (a *stubActor) Destroyed() bool               { return a.destroyed }

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }

type drawingSystem struct{ draws int }

func (s *drawingSystem) Update(*World)                {}
func (s *drawingSystem) Render(*World, common.Canvas) { s.draws++ }

type nullCanvas struct{}

func (nullCanvas) FillRect(cp.Vector, cp.Vector, color.Color) {}

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				e := w.Spawn(&stubActor{})
				require.True(t, e.Valid())
				ents = append(ents, e)
			}
			require.Equal(t, c.create, w.Len())
			if c.destroyIndex >= 0 {
				e := ents[c.destroyIndex]
				assert.True(t, w.Despawn(e))
				assert.False(t, w.IsAlive(e))
				assert.False(t, w.Despawn(e))
				_, ok := w.Actor(e)
				assert.False(t, ok)
				assert.Equal(t, c.create-1, w.Len())
			}
		})
	}
}

func TestWorldReusesSlotsWithNewGeneration(t *testing.T) {
	w := NewWorld()
	a := &stubActor{name: "a"}
	e1 := w.Spawn(a)
	require.True(t, w.Despawn(e1))

	b := &stubActor{name: "b"}
	e2 := w.Spawn(b)
	assert.Equal(t, e1.id(), e2.id())
	assert.NotEqual(t, e1.generation(), e2.generation())
	assert.False(t, w.IsAlive(e1))

	got, ok := w.Actor(e2)
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = w.Actor(e1)
	assert.False(t, ok)
}

func TestWorldSpawnIsIdempotentPerActor(t *testing.T) {
	w := NewWorld()
	a := &stubActor{}
	assert.Equal(t, w.Spawn(a), w.Spawn(a))
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, Entity(0), w.Spawn(nil))

	e, ok := w.EntityOf(a)
	assert.True(t, ok)
	assert.True(t, w.IsAlive(e))
}

func TestWorldUpdateOrderAndEvents(t *testing.T) {
	var order []string
	var seen []Event
	w := NewWorld(
		systemFunc(func(w *World) {
			order = append(order, "first")
			w.Events().Push(Event{Type: EventShot, Data: ShotEvent{Pos: cp.Vector{X: 1}}})
		}),
		systemFunc(func(w *World) {
			order = append(order, "second")
			seen = append(seen, w.Events().Peek(EventShot)...)
		}),
	)

	w.Update()
	assert.Equal(t, []string{"first", "second"}, order)
	require.Len(t, seen, 1)
	assert.Equal(t, cp.Vector{X: 1}, seen[0].Data.(ShotEvent).Pos)
	assert.Nil(t, w.Events().Drain())
	assert.Equal(t, uint64(1), w.Tick())
}

func TestWorldActorsSnapshot(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 3; i++ {
		w.Spawn(&stubActor{})
	}
	snapshot := w.Actors()
	for _, a := range snapshot {
		e, _ := w.EntityOf(a)
		w.Despawn(e)
	}
	assert.Len(t, snapshot, 3)
	assert.Zero(t, w.Len())
}

func TestWorldRender(t *testing.T) {
	drawer := &drawingSystem{}
	w := NewWorld(drawer)
	a := &stubActor{}
	w.Spawn(a)

	w.Render(nullCanvas{})
	w.Render(nil)
	assert.Equal(t, 1, a.renders)
	assert.Equal(t, 1, drawer.draws)
}

func TestSparseSet(t *testing.T) {
	var s SparseSet[string]
	s.Set(3, "c")
	s.Set(1, "a")
	s.Set(2, "b")
	require.Equal(t, 3, s.Len())

	s.Set(1, "A")
	v, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "A", v)

	s.Remove(3)
	assert.False(t, s.Has(3))
	assert.ElementsMatch(t, []string{"A", "b"}, s.Values())

	s.Remove(3)
	s.Set(0, "zero")
	assert.Equal(t, 2, s.Len())
	_, ok = s.Get(9)
	assert.False(t, ok)
}

func TestEventQueue(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: EventShot})
	q.Push(Event{Type: "other"})
	assert.Len(t, q.Peek(EventShot), 1)
	assert.Len(t, q.Drain(), 2)
	assert.Nil(t, q.Drain())

	var nilQueue *EventQueue
	nilQueue.Push(Event{})
	assert.Nil(t, nilQueue.Drain())
}
