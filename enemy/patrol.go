package enemy

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/prefabs"
)

// IsPatrolEnd reports whether the patrol should turn around. Each enabled
// strategy may end it early; the range check always applies and only fires
// while walking away from the spawn point.
func (e *Enemy) IsPatrolEnd() bool {
	patrol := e.Variant.Spec.Patrol
	if patrol.EndsOn(prefabs.PatrolEndStall) && e.Stall.Stalled(patrol.StallThreshold) {
		return true
	}
	if patrol.EndsOn(prefabs.PatrolEndTile) && e.WillHitTile(e.PatrolVec) {
		return true
	}
	return e.beyondPatrolRange()
}

func (e *Enemy) beyondPatrolRange() bool {
	dist := e.Body.Pos.Distance(e.SpawnPos)
	next := e.Body.Pos.Add(e.PatrolVec).Distance(e.SpawnPos)
	return dist >= e.PatrolRange && next >= dist
}

// WillHitTile probes one step along vec, pushed out by half the body width so
// the leading edge is tested.
func (e *Enemy) WillHitTile(vec cp.Vector) bool {
	if e.env.Physics == nil {
		return false
	}
	vec.X += common.Sign(vec.X) * e.Body.Size.X / 2
	return e.env.Physics.TileCollisionTest(e.Body.Pos.Add(vec), e.Body.Size)
}
