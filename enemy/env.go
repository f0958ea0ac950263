package enemy

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/physics"
	"github.com/milk9111/patrolai/sfx"
	"github.com/sirupsen/logrus"
)

// Physics answers the world queries enemies need.
type Physics interface {
	IsGrounded(b *physics.Body) bool
	TileCollisionTest(pos, size cp.Vector) bool
}

// Player is the target enemies chase and hurt.
type Player interface {
	Position() cp.Vector
	Size() cp.Vector
	IsDead() bool
	Damage(amount int, source any)
}

// PlayerLocator returns the current player, or nil when there is none.
type PlayerLocator func() Player

type Scoreboard interface {
	IncrementScore()
}

type DebrisSpawner interface {
	SpawnDebris(pos cp.Vector, c color.Color)
}

// Canvas receives enemy draw calls.
type Canvas = common.Canvas

// Env bundles the collaborators shared by every enemy in a world.
type Env struct {
	Physics Physics
	Player  PlayerLocator
	Rand    common.Rand
	Sound   sfx.Player
	Score   Scoreboard
	Debris  DebrisSpawner
	Log     *logrus.Entry
}

func (env Env) withDefaults() Env {
	if env.Rand == nil {
		env.Rand = common.NewRand(1)
	}
	if env.Sound == nil {
		env.Sound = sfx.Nop{}
	}
	if env.Log == nil {
		env.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	return env
}
