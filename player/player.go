package player

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/component"
	"github.com/milk9111/patrolai/ecs"
	"github.com/milk9111/patrolai/physics"
	"github.com/milk9111/patrolai/sfx"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

const (
	DefaultHealth = 10

	runSpeed         = 0.12
	jumpSpeed        = 0.3
	jumpBufferFrames = 10 // frames
	coyoteTimeFrames = 6  // allow jump within this many frames after leaving ground
	contactIFrames   = 30
	shootCooldown    = 12
)

// Input is the player's intent for one tick.
type Input struct {
	MoveX float64
	Jump  bool
	Shoot bool
}

// Player is a small controllable character: it runs, jumps, shoots and
// takes contact damage.
type Player struct {
	Body   *physics.Body
	Health *component.Health
	Input  Input

	state      playerState
	prevJump   bool
	prevShoot  bool
	coyote     int
	jumpBuffer int
	cooldown   int
	facing     float64

	world   *ecs.World
	physics *physics.World
	sound   sfx.Player
	log     *logrus.Entry

	Shots int
}

// New creates a player centred at pos. Bullets and shot events go to world.
func New(pos cp.Vector, world *ecs.World, phys *physics.World, sound sfx.Player, log *logrus.Entry) *Player {
	if sound == nil {
		sound = sfx.Nop{}
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	p := &Player{
		Body:    physics.NewBody(pos, cp.Vector{X: 0.8, Y: 0.9}),
		Health:  component.NewHealth(DefaultHealth),
		facing:  1,
		world:   world,
		physics: phys,
		sound:   sound,
		log:     log.WithField("entity", "player"),
	}
	p.Health.OnDamage = func(h *component.Health, amount int, _ any) {
		p.sound.Play(sfx.Hit, p.Body.Pos, 0.8, 1)
		p.log.WithFields(logrus.Fields{"amount": amount, "health": h.Current}).Debug("player: hit")
	}
	p.Health.OnDeath = func(_ *component.Health, source any) {
		p.log.WithField("source", source).Info("player: died")
	}
	p.setState(stateIdle)
	return p
}

func (p *Player) setState(s playerState) {
	if p.state == s {
		return
	}
	p.state = s
	p.log.WithField("state", s.Name()).Trace("player: state")
}

// State names the current movement state.
func (p *Player) State() string {
	return p.state.Name()
}

func (p *Player) Update() {
	if p.IsDead() {
		p.Body.Vel.X = 0
		return
	}
	p.Health.Tick()
	if p.cooldown > 0 {
		p.cooldown--
	}

	if p.Body.OnGround {
		p.coyote = coyoteTimeFrames
	} else if p.coyote > 0 {
		p.coyote--
	}

	in := p.Input
	p.Body.Vel.X = common.Clamp(in.MoveX, -1, 1) * runSpeed
	if in.MoveX != 0 {
		p.facing = common.Sign(in.MoveX)
	}

	if in.Jump && !p.prevJump {
		p.jumpBuffer = jumpBufferFrames
	} else if p.jumpBuffer > 0 {
		p.jumpBuffer--
	}
	if p.jumpBuffer > 0 && p.coyote > 0 {
		p.Body.Vel.Y = jumpSpeed
		p.jumpBuffer = 0
		p.coyote = 0
		p.sound.Play(sfx.Jump, p.Body.Pos, 0.5, 1)
		p.setState(stateJumping)
	}

	if in.Shoot && !p.prevShoot && p.cooldown == 0 {
		p.shoot()
	}

	p.prevJump = in.Jump
	p.prevShoot = in.Shoot
	p.state.OnPhysics(p)
}

func (p *Player) shoot() {
	p.cooldown = shootCooldown
	p.Shots++
	muzzle := p.Body.Pos.Add(cp.Vector{X: p.facing * p.Body.Size.X / 2})
	if p.world != nil {
		e, _ := p.world.EntityOf(p)
		p.world.Spawn(NewBullet(muzzle, cp.Vector{X: p.facing * bulletSpeed}, p, p.physics))
		p.world.Events().Push(ecs.Event{Type: ecs.EventShot, Data: ecs.ShotEvent{Pos: muzzle, Source: e}})
	}
	p.sound.Play(sfx.Shot, muzzle, 0.6, 1)
}

// Damage applies damage unless the player is flashing from a recent hit.
func (p *Player) Damage(amount int, source any) {
	if !p.Health.ApplyDamage(amount, source) {
		return
	}
	p.Health.StartIFrames(contactIFrames)
}

func (p *Player) Render(c common.Canvas) {
	if p.IsDead() {
		return
	}
	// flash while invulnerable
	if p.Health.IFrames > 0 && p.Health.IFrames/4%2 == 0 {
		return
	}
	var clr color.Color = colornames.Deepskyblue
	c.FillRect(p.Body.Pos, p.Body.Size, clr)
}

func (p *Player) Position() cp.Vector        { return p.Body.Pos }
func (p *Player) Size() cp.Vector            { return p.Body.Size }
func (p *Player) IsDead() bool               { return p.Health.IsDead() }
func (p *Player) Collide(any) bool           { return true }
func (p *Player) Destroyed() bool            { return false }
func (p *Player) PhysicsBody() *physics.Body { return p.Body }
func (p *Player) Facing() float64            { return p.facing }

// playerState is the interface each movement state implements.
type playerState interface {
	OnPhysics(p *Player)
	Name() string
}

var (
	stateIdle    playerState = idleState{}
	stateRunning playerState = runningState{}
	stateJumping playerState = jumpingState{}
	stateFalling playerState = fallingState{}
)

type idleState struct{}

func (idleState) Name() string { return "idle" }
func (idleState) OnPhysics(p *Player) {
	switch {
	case !p.Body.OnGround:
		p.setState(stateFalling)
	case p.Input.MoveX != 0:
		p.setState(stateRunning)
	}
}

type runningState struct{}

func (runningState) Name() string { return "running" }
func (runningState) OnPhysics(p *Player) {
	switch {
	case !p.Body.OnGround:
		p.setState(stateFalling)
	case p.Input.MoveX == 0:
		p.setState(stateIdle)
	}
}

type jumpingState struct{}

func (jumpingState) Name() string { return "jumping" }
func (jumpingState) OnPhysics(p *Player) {
	if p.Body.Vel.Y <= 0 {
		p.setState(stateFalling)
	}
}

type fallingState struct{}

func (fallingState) Name() string { return "falling" }
func (fallingState) OnPhysics(p *Player) {
	if p.Body.OnGround && p.Body.Vel.Y <= 0 {
		p.setState(stateIdle)
	}
}
