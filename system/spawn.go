package system

import (
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/enemy"
	"github.com/milk9111/patrolai/levels"
	"github.com/milk9111/patrolai/player"
	"github.com/sirupsen/logrus"
)

// DefaultVariant is used for enemies placed without a variant prop.
const DefaultVariant = "walker"

// SpawnEntities spawns the player and enemies placed in the level.
func (w *World) SpawnEntities() {
	if w == nil || w.Level == nil || len(w.Level.Entities) == 0 {
		return
	}
	remaining := w.Level.Entities
	remaining = w.spawnPlayerFromEntities(remaining)
	w.Enemies, remaining = w.spawnEnemiesFromEntities(remaining)
	for _, pe := range remaining {
		w.log.WithField("type", pe.Type).Warn("system: unknown level entity")
	}
}

func (w *World) spawnPlayerFromEntities(entities []levels.Entity) []levels.Entity {
	remaining := make([]levels.Entity, 0, len(entities))
	for _, pe := range entities {
		if !isPlayerEntity(pe) {
			remaining = append(remaining, pe)
			continue
		}
		if w.Player != nil {
			w.log.Warn("system: level places more than one player")
			continue
		}
		w.Player = player.New(w.entityPos(pe), w.ECS, w.Physics, w.sound, w.log)
		w.ECS.Spawn(w.Player)
	}
	return remaining
}

func (w *World) spawnEnemiesFromEntities(entities []levels.Entity) ([]*enemy.Enemy, []levels.Entity) {
	if w == nil || len(entities) == 0 {
		return nil, entities
	}

	enemies := make([]*enemy.Enemy, 0)
	remaining := make([]levels.Entity, 0, len(entities))
	env := w.env()
	for _, pe := range entities {
		if !isEnemyEntity(pe) {
			remaining = append(remaining, pe)
			continue
		}

		name := pe.Prop("variant", DefaultVariant)
		v, err := w.Variants.Get(name)
		if err != nil {
			w.log.WithError(err).WithField("variant", name).Error("system: skipping enemy")
			continue
		}
		e := enemy.New(w.entityPos(pe), v, env)
		w.ECS.Spawn(e)
		enemies = append(enemies, e)
		w.log.WithFields(logrus.Fields{"enemy": e.ID.String(), "variant": name, "pos": e.Body.Pos}).Debug("system: enemy spawned")
	}

	return enemies, remaining
}

func (w *World) entityPos(pe levels.Entity) cp.Vector {
	x, y := w.Level.WorldPos(pe.X, pe.Y)
	return cp.Vector{X: x, Y: y}
}

func isPlayerEntity(pe levels.Entity) bool {
	return strings.EqualFold(strings.TrimSpace(pe.Type), "player")
}

func isEnemyEntity(pe levels.Entity) bool {
	return strings.EqualFold(strings.TrimSpace(pe.Type), "enemy")
}
