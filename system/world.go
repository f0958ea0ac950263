package system

import (
	"fmt"
	"math"

	"github.com/milk9111/patrolai/ai"
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/ecs"
	"github.com/milk9111/patrolai/enemy"
	"github.com/milk9111/patrolai/levels"
	"github.com/milk9111/patrolai/physics"
	"github.com/milk9111/patrolai/player"
	"github.com/milk9111/patrolai/prefabs"
	"github.com/milk9111/patrolai/sfx"
	"github.com/sirupsen/logrus"
)

// Options are the collaborators a World is built with. Zero values get
// headless defaults.
type Options struct {
	Rand     common.Rand
	Sound    sfx.Player
	Log      *logrus.Entry
	Variants *enemy.Registry
}

// World owns level loading, the actor world and spawn logic.
type World struct {
	LevelName string
	Level     *levels.Level
	Physics   *physics.World
	ECS       *ecs.World
	Player    *player.Player
	Enemies   []*enemy.Enemy
	Score     *Score
	Debris    *DebrisField
	Variants  *enemy.Registry

	rand  common.Rand
	sound sfx.Player
	log   *logrus.Entry
}

// NewWorld creates a new world and loads the requested level.
func NewWorld(levelName string, opts Options) (*World, error) {
	if opts.Rand == nil {
		opts.Rand = common.NewRand(1)
	}
	if opts.Sound == nil {
		opts.Sound = sfx.Nop{}
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.Variants == nil {
		opts.Variants = enemy.NewRegistry(opts.Log)
	}
	w := &World{
		Score:    &Score{},
		Variants: opts.Variants,
		rand:     opts.Rand,
		sound:    opts.Sound,
		log:      opts.Log,
	}
	if err := w.Load(levelName); err != nil {
		return nil, err
	}
	return w, nil
}

// Load loads a level, rebuilds the physics and actor worlds and spawns the
// level's entities. The score survives reloads.
func (w *World) Load(levelName string) error {
	if w == nil {
		return fmt.Errorf("world is nil")
	}
	lvl, err := levels.Load(levelName)
	if err != nil {
		return err
	}
	w.LevelName = levelName
	w.Level = lvl
	w.Physics = physics.NewWorldFromLevel(lvl)
	w.Debris = NewDebrisField(w.rand)
	w.ECS = ecs.NewWorld(
		&PhysicsSystem{World: w.Physics},
		ActorSystem{},
		CombatSystem{},
		HearingSystem{},
		&CleanupSystem{Log: w.log, OnRemove: w.forget},
		w.Debris,
	)
	w.Player = nil
	w.Enemies = nil
	w.SpawnEntities()
	w.log.WithFields(logrus.Fields{
		"level":   levelName,
		"enemies": len(w.Enemies),
		"player":  w.Player != nil,
	}).Info("system: level loaded")
	return nil
}

// Restart reloads the current level.
func (w *World) Restart() error {
	return w.Load(w.LevelName)
}

// Reload applies a prefab change and restarts the level so every enemy picks
// up the new definitions.
func (w *World) Reload(c prefabs.Change) error {
	w.Variants.Reload(c)
	if c.Kind == prefabs.ChangeOther {
		return nil
	}
	return w.Restart()
}

func (w *World) Update() {
	w.ECS.Update()
}

// RunStats summarizes a Run.
type RunStats struct {
	Ticks  int
	DiedAt int // -1 while the player lives
}

// Run updates the world up to ticks times, taking player input from next.
// After the player dies it keeps going for settle more ticks so enemies can
// react to the death, then stops.
func (w *World) Run(ticks, settle int, next func(*player.Player) player.Input) RunStats {
	stats := RunStats{DiedAt: -1}
	for ; stats.Ticks < ticks; stats.Ticks++ {
		if w.Player != nil && !w.Player.IsDead() && next != nil {
			w.Player.Input = next(w.Player)
		}
		w.Update()
		if stats.DiedAt < 0 && w.Player != nil && w.Player.IsDead() {
			stats.DiedAt = stats.Ticks
			w.log.WithField("tick", stats.Ticks).Info("world: player died")
		}
		if stats.DiedAt >= 0 && stats.Ticks-stats.DiedAt >= settle {
			stats.Ticks++
			break
		}
	}
	return stats
}

func (w *World) Render(c common.Canvas) {
	w.ECS.Render(c)
}

func (w *World) env() enemy.Env {
	return enemy.Env{
		Physics: w.Physics,
		Player:  w.currentPlayer,
		Rand:    w.rand,
		Sound:   w.sound,
		Score:   w.Score,
		Debris:  w.Debris,
		Log:     w.log,
	}
}

// currentPlayer never returns a typed nil.
func (w *World) currentPlayer() enemy.Player {
	if w.Player == nil {
		return nil
	}
	return w.Player
}

func (w *World) forget(a ecs.Actor) {
	e, ok := a.(*enemy.Enemy)
	if !ok {
		return
	}
	for i, other := range w.Enemies {
		if other == e {
			w.Enemies = append(w.Enemies[:i], w.Enemies[i+1:]...)
			return
		}
	}
}

// EnemyStates counts live enemies per FSM state.
func (w *World) EnemyStates() map[ai.StateID]int {
	out := map[ai.StateID]int{}
	for _, e := range w.Enemies {
		out[e.State()]++
	}
	return out
}

// ClosestEnemy returns the live enemy nearest the player within maxDist.
func (w *World) ClosestEnemy(maxDist float64) (*enemy.Enemy, float64) {
	var best *enemy.Enemy
	bestDist := math.Inf(1)
	for _, e := range w.Enemies {
		d, ok := e.PlayerDistance()
		if !ok || d >= maxDist || d >= bestDist {
			continue
		}
		best, bestDist = e, d
	}
	return best, bestDist
}
