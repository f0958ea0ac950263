package enemy

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/ai"
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/component"
	"github.com/milk9111/patrolai/physics"
	"github.com/milk9111/patrolai/prefabs"
	"github.com/milk9111/patrolai/sfx"
	"github.com/sirupsen/logrus"
)

// Enemy is one patrolling agent. It owns its body, health, stall tracker and
// state machine; everything else comes through Env.
type Enemy struct {
	ID      uuid.UUID
	Variant *Variant

	Body     *physics.Body
	Health   *component.Health
	SpawnPos cp.Vector

	PatrolVec   cp.Vector
	PatrolRange float64
	Stall       *component.StallTracker

	Color    color.Color
	DrawSize cp.Vector
	swell    float64

	env       Env
	fsm       *ai.Machine
	script    *ai.ScriptGuard
	log       *logrus.Entry
	destroyed bool
}

var _ ai.Actor = (*Enemy)(nil)

// New spawns an enemy centred at pos and starts its state machine.
func New(pos cp.Vector, v *Variant, env Env) *Enemy {
	if v == nil {
		v = DefaultVariant()
	}
	env = env.withDefaults()
	spec := v.Spec

	e := &Enemy{
		ID:          uuid.New(),
		Variant:     v,
		Body:        physics.NewBody(pos, cp.Vector{X: spec.Collider.Width, Y: spec.Collider.Height}),
		Health:      component.NewHealth(spec.Health),
		SpawnPos:    pos,
		PatrolVec:   cp.Vector{X: spec.Patrol.Speed},
		PatrolRange: spec.Patrol.Range,
		Stall:       component.NewStallTracker(pos),
		DrawSize:    cp.Vector{X: 1, Y: 1},
		env:         env,
		script:      v.script.Clone(),
	}
	e.log = env.Log.WithFields(logrus.Fields{"enemy": e.ID.String(), "variant": v.Name()})

	if spec.Color != nil && spec.Color.Color != nil {
		e.Color = spec.Color.Color
	} else {
		e.Color = common.HSL(env.Rand.Float64(), 1, 0.7)
	}
	e.swell = common.Range(env.Rand, 0, 1000)
	if spec.Patrol.RandomStart && common.Chance(env.Rand, 0.5) {
		e.PatrolVec.X = -e.PatrolVec.X
	}

	e.Health.OnDeath = func(_ *component.Health, source any) {
		e.log.WithField("source", source).Debug("enemy: died")
	}

	e.fsm = ai.NewMachine(v.FSM, e.log)
	e.fsm.Start(e)
	return e
}

// State returns the current FSM state.
func (e *Enemy) State() ai.StateID {
	return e.fsm.Current()
}

func (e *Enemy) player() Player {
	if e.env.Player == nil {
		return nil
	}
	return e.env.Player()
}

// Update runs one simulation tick. Nothing happens without a player.
func (e *Enemy) Update() {
	if e.destroyed || e.IsDead() {
		return
	}
	p := e.player()
	if p == nil {
		return
	}

	e.Stall.Update(e.Body.Pos)
	e.fsm.Dispatch(e, ai.EventDo)
	if e.destroyed {
		return
	}

	if physics.Overlaps(e.Body.Pos, e.Body.Size, p.Position(), p.Size()) {
		p.Damage(e.Variant.Spec.ContactDamage, e)
	}

	if p.IsDead() {
		e.fsm.Dispatch(e, ai.EventPlayerDead)
	}
}

// Damage applies damage and lets the state machine react. Terminal states
// ignore the damaged event, so a lethal hit there kills directly.
func (e *Enemy) Damage(amount int, source any) {
	if e.destroyed {
		return
	}
	e.Health.ApplyDamage(amount, source)
	e.fsm.Dispatch(e, ai.EventDamaged)
	if e.IsDead() && !e.destroyed {
		e.Kill()
	}
}

// HearShot reacts to a gunshot at pos.
func (e *Enemy) HearShot(pos cp.Vector) {
	if e.destroyed || e.IsDead() || e.player() == nil {
		return
	}
	e.log.WithField("shot", pos).Trace("enemy: heard shot")
	e.fsm.Dispatch(e, ai.EventHeardShot)
}

// Kill scores the enemy, leaves debris and marks it destroyed. Repeated
// calls do nothing.
func (e *Enemy) Kill() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	if e.env.Score != nil {
		e.env.Score.IncrementScore()
	}
	e.env.Sound.Play(sfx.Score, e.Body.Pos, 1, 1)
	if e.env.Debris != nil {
		e.env.Debris.SpawnDebris(e.Body.Pos, e.Color)
	}
	e.log.Debug("enemy: killed")
}

// Destroyed reports whether the enemy has been killed and should be removed.
func (e *Enemy) Destroyed() bool {
	return e.destroyed
}

// Collide reports whether other blocks this enemy. Enemies pass through
// each other.
func (e *Enemy) Collide(other any) bool {
	_, isEnemy := other.(*Enemy)
	return !isEnemy
}

func (e *Enemy) IsDead() bool {
	return e.Health.IsDead()
}

func (e *Enemy) IsGrounded() bool {
	if e.env.Physics == nil {
		return e.Body.OnGround
	}
	return e.env.Physics.IsGrounded(e.Body)
}

// Chance rolls against p.
func (e *Enemy) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return common.Chance(e.env.Rand, p)
}

// PlayerDistance returns the distance to the player, if there is one.
func (e *Enemy) PlayerDistance() (float64, bool) {
	p := e.player()
	if p == nil {
		return 0, false
	}
	return e.Body.Pos.Distance(p.Position()), true
}

// Aggro applies the variant's aggro policy to an event.
func (e *Enemy) Aggro(ev ai.EventID) bool {
	p := e.player()
	if p == nil || p.IsDead() {
		return false
	}
	aggro := e.Variant.Spec.Aggro
	switch aggro.Trigger {
	case prefabs.AggroAlways:
		return true
	case prefabs.AggroDistance:
		d, _ := e.PlayerDistance()
		return d <= aggro.Range
	case prefabs.AggroSound:
		return ev == ai.EventHeardShot
	case prefabs.AggroScript:
		if e.script == nil {
			return false
		}
		ok, err := e.script.Eval(e.Senses(ev))
		if err != nil {
			e.log.WithError(err).Warn("enemy: aggro script failed")
			return false
		}
		return ok
	default:
		return false
	}
}

// Senses snapshots what scripts may read.
func (e *Enemy) Senses(ev ai.EventID) ai.Senses {
	d, ok := e.PlayerDistance()
	return ai.Senses{
		Event:     ev,
		HasPlayer: ok,
		Distance:  d,
		Grounded:  e.IsGrounded(),
		Stall:     e.Stall.Count,
		Health:    e.Health.Current,
	}
}

// PhysicsBody exposes the body for integration.
func (e *Enemy) PhysicsBody() *physics.Body {
	return e.Body
}

// Position is the body centre.
func (e *Enemy) Position() cp.Vector {
	return e.Body.Pos
}

// HearingRange is how far away a shot can be heard. Zero means anywhere.
func (e *Enemy) HearingRange() float64 {
	return e.Variant.Spec.HearingRange
}
