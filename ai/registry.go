package ai

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAction = errors.New("fsm: unknown action")
	ErrUnknownGuard  = errors.New("fsm: unknown guard")
)

var actionRegistry = map[string]func(any) (Action, error){
	"log": func(arg any) (Action, error) {
		msg := fmt.Sprint(arg)
		return func(ctx *Context) {
			if ctx.Log != nil {
				ctx.Log.WithField("state", ctx.State).Debug("ai: ", msg)
			}
		}, nil
	},
	"jump_around":         actorAction(Actor.JumpAround),
	"patrol_march":        actorAction(Actor.PatrolMarch),
	"patrol_turn":         actorAction(Actor.PatrolTurn),
	"reset_stall":         actorAction(Actor.ResetStall),
	"hunt_player":         actorAction(Actor.HuntPlayer),
	"jump_towards_player": actorAction(Actor.JumpTowardsPlayer),
	"small_vertical_hop":  actorAction(Actor.SmallVerticalHop),
	"damage_reaction":     actorAction(Actor.DamageReaction),
	"stop_x":              actorAction(Actor.StopX),
	"kill":                actorAction(Actor.Kill),
}

func actorAction(fn func(Actor)) func(any) (Action, error) {
	return func(any) (Action, error) {
		return func(ctx *Context) {
			if ctx == nil || ctx.Actor == nil {
				return
			}
			fn(ctx.Actor)
		}, nil
	}
}

var guardRegistry = map[string]func(any) (Guard, error){
	"always": func(any) (Guard, error) {
		return func(*Context) bool { return true }, nil
	},
	"patrol_end": actorGuard(Actor.IsPatrolEnd),
	"is_dead":    actorGuard(Actor.IsDead),
	"grounded":   actorGuard(Actor.IsGrounded),
	"aggro": func(any) (Guard, error) {
		return func(ctx *Context) bool {
			return ctx != nil && ctx.Actor != nil && ctx.Actor.Aggro(ctx.Event)
		}, nil
	},
	"chance": func(arg any) (Guard, error) {
		p, ok := asFloat(arg)
		if !ok {
			return nil, fmt.Errorf("fsm: chance needs a probability, got %v", arg)
		}
		return func(ctx *Context) bool {
			return ctx != nil && ctx.Actor != nil && ctx.Actor.Chance(p)
		}, nil
	},
	"sees_player": func(arg any) (Guard, error) {
		r, ok := asFloat(arg)
		if !ok || r <= 0 {
			return nil, fmt.Errorf("fsm: sees_player needs a positive range, got %v", arg)
		}
		return func(ctx *Context) bool {
			if ctx == nil || ctx.Actor == nil {
				return false
			}
			d, found := ctx.Actor.PlayerDistance()
			return found && d <= r
		}, nil
	},
	"script": func(arg any) (Guard, error) {
		path, ok := arg.(string)
		if !ok || path == "" {
			return nil, fmt.Errorf("fsm: script needs a script path, got %v", arg)
		}
		sg, err := LoadScriptGuard(path)
		if err != nil {
			return nil, err
		}
		return func(ctx *Context) bool {
			if ctx == nil || ctx.Actor == nil {
				return false
			}
			ok, err := sg.Eval(ctx.Actor.Senses(ctx.Event))
			if err != nil {
				if ctx.Log != nil {
					ctx.Log.WithError(err).Warn("ai: script guard failed")
				}
				return false
			}
			return ok
		}, nil
	},
}

func actorGuard(fn func(Actor) bool) func(any) (Guard, error) {
	return func(any) (Guard, error) {
		return func(ctx *Context) bool {
			return ctx != nil && ctx.Actor != nil && fn(ctx.Actor)
		}, nil
	}
}

// LookupAction builds a registered action by name.
func LookupAction(name string, arg any) (Action, error) {
	build, ok := actionRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAction, name)
	}
	return build(arg)
}

// LookupGuard builds a registered guard by name.
func LookupGuard(name string, arg any) (Guard, error) {
	build, ok := guardRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGuard, name)
	}
	return build(arg)
}

func mustAction(name string) Action {
	a, err := LookupAction(name, nil)
	if err != nil {
		panic(err)
	}
	return a
}

func mustGuard(name string) Guard {
	g, err := LookupGuard(name, nil)
	if err != nil {
		panic(err)
	}
	return g
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	default:
		return 0, false
	}
}
