package ai

const (
	StatePatrol StateID = "patrol"
	StateHunt   StateID = "hunt"
	StateIdle   StateID = "idle"
	StateDead   StateID = "dead"
)

// DefaultEnemyFSM builds the stock enemy brain without touching prefabs. It
// matches prefabs/fsm_enemy.yaml and is the fallback when that file fails to
// load.
func DefaultEnemyFSM() *FSMDef {
	return &FSMDef{
		Initial: StatePatrol,
		States: map[StateID]StateDef{
			StatePatrol: {While: []Action{mustAction("jump_around"), mustAction("patrol_march")}},
			StateHunt:   {While: []Action{mustAction("hunt_player")}},
			StateIdle:   {OnEnter: []Action{mustAction("stop_x")}, Terminal: true},
			StateDead:   {OnEnter: []Action{mustAction("kill")}, Terminal: true},
		},
		Rules: map[StateID][]Rule{
			StatePatrol: {
				{
					Name:    "turn",
					Event:   EventDo,
					Guard:   mustGuard("patrol_end"),
					Actions: []Action{mustAction("patrol_turn"), mustAction("reset_stall")},
				},
				{Name: "spot", Event: EventDo, Guard: mustGuard("aggro"), To: StateHunt},
				{Name: "hear", Event: EventHeardShot, Guard: mustGuard("aggro"), To: StateHunt},
			},
			AnyState: {
				{Name: "die", Event: EventDamaged, Guard: mustGuard("is_dead"), To: StateDead},
				{Name: "flinch", Event: EventDamaged, Actions: []Action{mustAction("damage_reaction")}},
				{Name: "player_gone", Event: EventPlayerDead, To: StateIdle},
			},
		},
	}
}
