package ai

import (
	"fmt"
	"sort"

	"github.com/milk9111/patrolai/prefabs"
)

// CompileFSMSpec turns a YAML FSM spec into a definition the Machine can run.
func CompileFSMSpec(spec prefabs.FSMSpec) (*FSMDef, error) {
	if spec.Initial == "" {
		return nil, fmt.Errorf("fsm: missing initial state")
	}
	if _, ok := spec.States[spec.Initial]; !ok {
		return nil, fmt.Errorf("fsm: initial state %q is not defined", spec.Initial)
	}

	def := &FSMDef{
		Initial: StateID(spec.Initial),
		States:  make(map[StateID]StateDef, len(spec.States)),
		Rules:   make(map[StateID][]Rule, len(spec.Transitions)),
	}

	for name, s := range spec.States {
		if StateID(name) == AnyState {
			return nil, fmt.Errorf("fsm: %q is reserved and cannot be a state", name)
		}
		onEnter, err := buildActions(s.OnEnter)
		if err != nil {
			return nil, fmt.Errorf("fsm: state %s on_enter: %w", name, err)
		}
		while, err := buildActions(s.While)
		if err != nil {
			return nil, fmt.Errorf("fsm: state %s while: %w", name, err)
		}
		onExit, err := buildActions(s.OnExit)
		if err != nil {
			return nil, fmt.Errorf("fsm: state %s on_exit: %w", name, err)
		}
		def.States[StateID(name)] = StateDef{
			OnEnter:  onEnter,
			While:    while,
			OnExit:   onExit,
			Terminal: s.Terminal,
		}
	}

	for from, raws := range spec.Transitions {
		fromID := StateID(from)
		if _, ok := def.States[fromID]; !ok && fromID != AnyState {
			return nil, fmt.Errorf("fsm: transitions from unknown state %q", from)
		}
		rules := make([]Rule, 0, len(raws))
		for i, raw := range raws {
			r, err := buildRule(raw)
			if err != nil {
				return nil, fmt.Errorf("fsm: %s rule %d: %w", from, i, err)
			}
			if r.To != "" {
				if _, ok := def.States[r.To]; !ok {
					return nil, fmt.Errorf("fsm: %s rule %d: unknown target state %q", from, i, r.To)
				}
			}
			rules = append(rules, r)
		}
		def.Rules[fromID] = rules
	}

	return def, nil
}

// LoadFSM loads and compiles an FSM prefab by filename.
func LoadFSM(filename string) (*FSMDef, error) {
	spec, err := prefabs.LoadFSMSpec(filename)
	if err != nil {
		return nil, err
	}
	def, err := CompileFSMSpec(*spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return def, nil
}

func buildActions(list []map[string]any) ([]Action, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]Action, 0, len(list))
	for _, entry := range list {
		for _, name := range sortedKeys(entry) {
			a, err := LookupAction(name, entry[name])
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
	}
	return out, nil
}

func buildRule(raw prefabs.FSMRuleSpec) (Rule, error) {
	r := Rule{
		Name:  raw.Name,
		Event: EventID(raw.Event),
		To:    StateID(raw.To),
	}
	if r.Event == "" {
		r.Event = EventDo
	}

	guard, err := buildGuard(raw.When)
	if err != nil {
		return Rule{}, err
	}
	r.Guard = guard

	r.Actions, err = buildActions(raw.Do)
	if err != nil {
		return Rule{}, err
	}
	if r.To == "" && len(r.Actions) == 0 {
		return Rule{}, fmt.Errorf("rule %q has neither a target nor actions", raw.Name)
	}
	return r, nil
}

// buildGuard accepts nothing (always), a guard name, or a map of guard name
// to argument where every guard must pass.
func buildGuard(when any) (Guard, error) {
	switch w := when.(type) {
	case nil:
		return nil, nil
	case string:
		return LookupGuard(w, nil)
	case map[string]any:
		guards := make([]Guard, 0, len(w))
		for _, name := range sortedKeys(w) {
			g, err := LookupGuard(name, w[name])
			if err != nil {
				return nil, err
			}
			guards = append(guards, g)
		}
		return allOf(guards...), nil
	default:
		return nil, fmt.Errorf("fsm: when must be a guard name or a map, got %T", when)
	}
}

func allOf(guards ...Guard) Guard {
	if len(guards) == 1 {
		return guards[0]
	}
	return func(ctx *Context) bool {
		for _, g := range guards {
			if !g(ctx) {
				return false
			}
		}
		return true
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
