package ai

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/patrolai/prefabs"
)

// Senses is what a scripted guard can read about its agent.
type Senses struct {
	Event     EventID
	HasPlayer bool
	Distance  float64
	Grounded  bool
	Stall     int
	Health    int
}

// ScriptGuard evaluates a tengo script that assigns a boolean to `aggro`.
// The script sees event, has_player, distance, grounded, stall and health.
type ScriptGuard struct {
	path     string
	compiled *tengo.Compiled
}

// LoadScriptGuard compiles a script from the prefab scripts.
func LoadScriptGuard(path string) (*ScriptGuard, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return NewScriptGuard(path, src)
}

// NewScriptGuard compiles src and runs it once with zero senses, so a
// script that never assigns aggro fails here rather than mid-game.
func NewScriptGuard(path string, src []byte) (*ScriptGuard, error) {
	script := tengo.NewScript(src)
	for name, zero := range map[string]any{
		"event":      "",
		"has_player": false,
		"distance":   0.0,
		"grounded":   false,
		"stall":      0,
		"health":     0,
	} {
		if err := script.Add(name, zero); err != nil {
			return nil, fmt.Errorf("script: %s: %w", path, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", path, err)
	}
	// globals stay undefined until the first run
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("script: %s: %w", path, err)
	}
	if !compiled.IsDefined("aggro") {
		return nil, fmt.Errorf("script: %s does not define aggro", path)
	}
	return &ScriptGuard{path: path, compiled: compiled}, nil
}

// Clone returns an independent copy for another agent.
func (g *ScriptGuard) Clone() *ScriptGuard {
	if g == nil {
		return nil
	}
	return &ScriptGuard{path: g.path, compiled: g.compiled.Clone()}
}

// Eval runs the script against s.
func (g *ScriptGuard) Eval(s Senses) (bool, error) {
	if g == nil || g.compiled == nil {
		return false, fmt.Errorf("script: nil guard")
	}
	values := map[string]any{
		"event":      string(s.Event),
		"has_player": s.HasPlayer,
		"distance":   s.Distance,
		"grounded":   s.Grounded,
		"stall":      s.Stall,
		"health":     s.Health,
	}
	for name, v := range values {
		if err := g.compiled.Set(name, v); err != nil {
			return false, fmt.Errorf("script: %s: set %s: %w", g.path, name, err)
		}
	}
	if err := g.compiled.Run(); err != nil {
		return false, fmt.Errorf("script: %s: %w", g.path, err)
	}
	if !g.compiled.IsDefined("aggro") {
		return false, fmt.Errorf("script: %s does not define aggro", g.path)
	}
	return g.compiled.Get("aggro").Bool(), nil
}
