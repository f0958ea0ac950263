package ai

import (
	"github.com/sirupsen/logrus"
)

// StateID identifies an FSM state.
type StateID string

// EventID identifies an FSM event.
type EventID string

const (
	EventDo         EventID = "do"
	EventDamaged    EventID = "damaged"
	EventHeardShot  EventID = "heard_shot"
	EventPlayerDead EventID = "player_dead"
)

// AnyState is the transitions key whose rules apply to every non-terminal
// state after the state's own rules.
const AnyState StateID = "*"

// Actor is the agent an FSM drives. Actions and guards only reach the agent
// through this interface.
type Actor interface {
	JumpAround()
	PatrolMarch()
	PatrolTurn()
	ResetStall()
	HuntPlayer()
	JumpTowardsPlayer()
	SmallVerticalHop()
	DamageReaction()
	StopX()
	Kill()

	IsPatrolEnd() bool
	Aggro(ev EventID) bool
	IsDead() bool
	IsGrounded() bool
	PlayerDistance() (float64, bool)
	Chance(p float64) bool
	Senses(ev EventID) Senses
}

// Context is handed to every action and guard for one dispatch.
type Context struct {
	Actor Actor
	Event EventID
	State StateID
	Log   *logrus.Entry
}

type Action func(ctx *Context)

type Guard func(ctx *Context) bool

type StateDef struct {
	OnEnter  []Action
	While    []Action
	OnExit   []Action
	Terminal bool
}

// Rule is one transition. An empty Event matches EventDo and is checked after
// the state's While actions. An empty To makes the rule an internal reaction:
// its actions run without leaving the state.
type Rule struct {
	Name    string
	Event   EventID
	Guard   Guard
	To      StateID
	Actions []Action
}

func (r Rule) matches(ctx *Context) bool {
	ev := r.Event
	if ev == "" {
		ev = EventDo
	}
	if ev != ctx.Event {
		return false
	}
	return r.Guard == nil || r.Guard(ctx)
}

type FSMDef struct {
	Initial StateID
	States  map[StateID]StateDef
	Rules   map[StateID][]Rule
}

// Machine is one running instance of an FSMDef.
type Machine struct {
	def     *FSMDef
	current StateID
	started bool
	log     *logrus.Entry
}

// NewMachine creates a machine positioned at def.Initial. The initial
// OnEnter actions run on Start or on the first Dispatch.
func NewMachine(def *FSMDef, log *logrus.Entry) *Machine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	m := &Machine{def: def, log: log}
	if def != nil {
		m.current = def.Initial
	}
	return m
}

// Current returns the current state.
func (m *Machine) Current() StateID {
	if m == nil {
		return ""
	}
	return m.current
}

// Terminal reports whether the current state has no way out.
func (m *Machine) Terminal() bool {
	if m == nil || m.def == nil {
		return true
	}
	return m.def.States[m.current].Terminal
}

// Start enters the initial state. It is a no-op once started.
func (m *Machine) Start(actor Actor) {
	if m == nil || m.def == nil || actor == nil || m.started {
		return
	}
	m.started = true
	ctx := &Context{Actor: actor, State: m.current, Log: m.log}
	applyActions(m.def.States[m.current].OnEnter, ctx)
}

// Dispatch delivers one event. On EventDo the current state's While actions
// run first. Then the first matching rule fires, if any. Everything completes
// before Dispatch returns. It reports whether a rule fired.
func (m *Machine) Dispatch(actor Actor, ev EventID) bool {
	if m == nil || m.def == nil || actor == nil || ev == "" {
		return false
	}
	m.Start(actor)

	ctx := &Context{Actor: actor, Event: ev, State: m.current, Log: m.log}
	state := m.def.States[m.current]
	if ev == EventDo {
		applyActions(state.While, ctx)
	}

	for _, r := range m.rules(m.current, state.Terminal) {
		if !r.matches(ctx) {
			continue
		}
		m.fire(r, ctx)
		return true
	}
	return false
}

func (m *Machine) rules(state StateID, terminal bool) []Rule {
	own := m.def.Rules[state]
	if terminal {
		return own
	}
	shared := m.def.Rules[AnyState]
	if len(shared) == 0 {
		return own
	}
	out := make([]Rule, 0, len(own)+len(shared))
	out = append(out, own...)
	return append(out, shared...)
}

func (m *Machine) fire(r Rule, ctx *Context) {
	if r.To == "" {
		applyActions(r.Actions, ctx)
		return
	}
	from := m.current
	applyActions(m.def.States[from].OnExit, ctx)
	applyActions(r.Actions, ctx)
	m.current = r.To
	ctx.State = r.To
	m.log.WithFields(logrus.Fields{
		"from":  from,
		"to":    r.To,
		"event": ctx.Event,
		"rule":  r.Name,
	}).Debug("ai: transition")
	applyActions(m.def.States[r.To].OnEnter, ctx)
}

func applyActions(actions []Action, ctx *Context) {
	for _, a := range actions {
		if a != nil {
			a(ctx)
		}
	}
}
