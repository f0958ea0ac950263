package player

import (
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/component"
)

// Bot drives the player in headless runs: it walks back and forth, turning
// when stuck, hops now and then and fires at a steady rate.
type Bot struct {
	Rand       common.Rand
	ShootEvery int
	JumpChance float64

	dir   float64
	tick  int
	stall *component.StallTracker
}

func NewBot(r common.Rand) *Bot {
	return &Bot{Rand: r, ShootEvery: 45, JumpChance: 0.02, dir: 1}
}

// Next computes the input for this tick.
func (b *Bot) Next(p *Player) Input {
	b.tick++
	if b.stall == nil {
		b.stall = component.NewStallTracker(p.Body.Pos)
	}
	b.stall.Update(p.Body.Pos)
	if b.stall.Stalled(20) {
		b.dir = -b.dir
		b.stall.ResetAt(p.Body.Pos)
	}

	in := Input{MoveX: b.dir}
	if b.Rand != nil && common.Chance(b.Rand, b.JumpChance) {
		in.Jump = true
	}
	if b.ShootEvery > 0 && b.tick%b.ShootEvery == 0 {
		in.Shoot = true
	}
	return in
}
