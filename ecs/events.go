package ecs

import "github.com/jakecoffman/cp"

// Event is a world event payload.
type Event struct {
	Type string
	Data any
}

// EventShot carries a ShotEvent.
const EventShot = "shot"

// ShotEvent is pushed when a gun fires.
type ShotEvent struct {
	Pos    cp.Vector
	Source Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Peek returns queued events of type typ without removing anything.
func (q *EventQueue) Peek(typ string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
