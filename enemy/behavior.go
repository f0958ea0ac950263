package enemy

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/prefabs"
	"github.com/milk9111/patrolai/sfx"
)

const (
	huntMarchSpeed   = 0.07
	huntAirDrift     = 0.001
	huntJumpChance   = 0.01
	maxJumpSpeed     = 0.4
	jumpMinY         = 0.2
	jumpMaxY         = 0.4
	jumpMinX         = 0.07
	jumpMaxX         = 0.2
	jumpAroundMaxX   = 0.1
	hopSpeed         = 0.1
	jumpSoundVolume  = 0.4
	jumpSoundPitch   = 2
	stallBoostPerSec = 0.1 / 2
	ticksPerSecond   = 60
)

func (e *Enemy) playJump() {
	e.env.Sound.Play(sfx.Jump, e.Body.Pos, jumpSoundVolume, jumpSoundPitch)
}

// JumpAround occasionally jumps in a random direction while grounded.
func (e *Enemy) JumpAround() {
	if !e.IsGrounded() || !common.Chance(e.env.Rand, e.Variant.Spec.JumpChance) {
		return
	}
	e.Body.Vel = cp.Vector{
		X: common.Range(e.env.Rand, -jumpAroundMaxX, jumpAroundMaxX),
		Y: common.Range(e.env.Rand, jumpMinY, jumpMaxY),
	}
	e.playJump()
}

// PatrolMarch walks along the patrol vector. Vertical speed is untouched.
func (e *Enemy) PatrolMarch() {
	e.Body.Vel.X = e.PatrolVec.X
}

// PatrolTurn reverses the patrol direction.
func (e *Enemy) PatrolTurn() {
	e.PatrolVec.X = -e.PatrolVec.X
}

// ResetStall measures progress from the current position again.
func (e *Enemy) ResetStall() {
	e.Stall.Reset(nil, e.Body.Pos)
}

// StopX halts horizontal movement.
func (e *Enemy) StopX() {
	e.Body.Vel.X = 0
}

// DirectionToPlayer is the unit vector towards the player, or zero when
// there is no player or the two positions coincide.
func (e *Enemy) DirectionToPlayer() cp.Vector {
	p := e.player()
	if p == nil {
		return cp.Vector{}
	}
	delta := p.Position().Sub(e.Body.Pos)
	if delta.LengthSq() < 1e-12 {
		return cp.Vector{}
	}
	return delta.Normalize()
}

// StallBoost is the extra jump chance and jump speed earned by being stuck.
func (e *Enemy) StallBoost() float64 {
	return float64(e.Stall.Count) / ticksPerSecond * stallBoostPerSec
}

// HuntPlayer chases the player: drift while airborne, otherwise march or
// jump towards them. Jumps get likelier and higher the longer the enemy has
// been stuck.
func (e *Enemy) HuntPlayer() {
	if e.player() == nil {
		return
	}
	dir := e.DirectionToPlayer()
	if !e.IsGrounded() {
		e.Body.Vel.X += dir.X * huntAirDrift
		return
	}
	boost := e.StallBoost()
	if common.Chance(e.env.Rand, huntJumpChance+boost) {
		e.JumpTowards(&dir, boost)
		return
	}
	e.Body.Vel = cp.Vector{X: dir.X * huntMarchSpeed, Y: 0}
}

// JumpTowardsPlayer leaps at the player with no boost.
func (e *Enemy) JumpTowardsPlayer() {
	e.JumpTowards(nil, 0)
}

// JumpTowards leaps along dir, or towards the player when dir is nil. The
// vertical speed never exceeds maxJumpSpeed however large boost is.
func (e *Enemy) JumpTowards(dir *cp.Vector, boost float64) {
	if e.player() == nil {
		return
	}
	d := e.DirectionToPlayer()
	if dir != nil {
		d = *dir
	}
	y := common.Clamp(common.Range(e.env.Rand, jumpMinY, jumpMaxY)+boost, 0, maxJumpSpeed)
	x := common.Range(e.env.Rand, jumpMinX, jumpMaxX)
	e.Body.Vel = cp.Vector{X: d.X * x, Y: y}
	e.playJump()
}

// SmallVerticalHop is the cheap damage flinch.
func (e *Enemy) SmallVerticalHop() {
	e.Body.Vel = cp.Vector{X: 0, Y: hopSpeed}
	e.playJump()
}

// DamageReaction runs the variant's flinch after a hit, if still alive and
// standing on something.
func (e *Enemy) DamageReaction() {
	if e.IsDead() || e.player() == nil || !e.IsGrounded() {
		return
	}
	reaction := e.Variant.Spec.Damage
	switch reaction.Kind {
	case prefabs.ReactJump:
		if e.Chance(reaction.Chance) {
			e.JumpTowardsPlayer()
		}
	case prefabs.ReactHop:
		e.SmallVerticalHop()
	}
}
