package enemy

import (
	"fmt"

	"github.com/milk9111/patrolai/ai"
	"github.com/milk9111/patrolai/prefabs"
	"github.com/sirupsen/logrus"
)

// Variant is a loaded enemy kind: its tuning plus a compiled brain.
type Variant struct {
	Spec   prefabs.EnemySpec
	FSM    *ai.FSMDef
	script *ai.ScriptGuard
}

func (v *Variant) Name() string {
	if v == nil {
		return ""
	}
	return v.Spec.Name
}

// NewVariant wires a spec to a compiled FSM. A nil fsm means the built-in
// enemy brain.
func NewVariant(spec prefabs.EnemySpec, fsm *ai.FSMDef) (*Variant, error) {
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if fsm == nil {
		fsm = ai.DefaultEnemyFSM()
	}
	v := &Variant{Spec: spec, FSM: fsm}
	if spec.Aggro.Trigger == prefabs.AggroScript {
		sg, err := ai.LoadScriptGuard(spec.Aggro.Script)
		if err != nil {
			return nil, fmt.Errorf("enemy: variant %s: %w", spec.Name, err)
		}
		v.script = sg
	}
	return v, nil
}

// DefaultVariant is the stock patroller with no prefab behind it.
func DefaultVariant() *Variant {
	spec := prefabs.EnemySpec{Name: "default", JumpChance: 0.02}
	v, err := NewVariant(spec, nil)
	if err != nil {
		panic(err)
	}
	return v
}

// Registry loads variants from prefabs on first use and caches them along
// with their compiled FSMs.
type Registry struct {
	variants map[string]*Variant
	fsms     map[string]*ai.FSMDef
	log      *logrus.Entry
}

func NewRegistry(log *logrus.Entry) *Registry {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Registry{
		variants: map[string]*Variant{},
		fsms:     map[string]*ai.FSMDef{},
		log:      log,
	}
}

// Get returns the named variant, loading it if needed.
func (r *Registry) Get(name string) (*Variant, error) {
	if v, ok := r.variants[name]; ok {
		return v, nil
	}
	spec, err := prefabs.LoadEnemySpec(name)
	if err != nil {
		return nil, err
	}
	fsm, err := r.fsm(spec.FSM)
	if err != nil {
		return nil, fmt.Errorf("enemy: variant %s: %w", name, err)
	}
	v, err := NewVariant(*spec, fsm)
	if err != nil {
		return nil, err
	}
	r.variants[name] = v
	r.log.WithFields(logrus.Fields{"variant": name, "fsm": spec.FSM}).Debug("enemy: variant loaded")
	return v, nil
}

func (r *Registry) fsm(file string) (*ai.FSMDef, error) {
	if def, ok := r.fsms[file]; ok {
		return def, nil
	}
	def, err := ai.LoadFSM(file)
	if err != nil {
		return nil, err
	}
	r.fsms[file] = def
	return def, nil
}

// Reload drops cached entries touched by a prefab change. Enemies already
// spawned keep the variant they were built with.
func (r *Registry) Reload(c prefabs.Change) {
	switch c.Kind {
	case prefabs.ChangeVariant:
		delete(r.variants, c.Variant)
	case prefabs.ChangeFSM, prefabs.ChangeScript:
		r.variants = map[string]*Variant{}
		r.fsms = map[string]*ai.FSMDef{}
	default:
		return
	}
	r.log.WithFields(logrus.Fields{"path": c.Path, "kind": c.Kind.String()}).Info("enemy: prefabs reloaded")
}

// Preload loads every embedded variant and reports the first failure.
func (r *Registry) Preload() error {
	for _, name := range prefabs.EnemyVariants() {
		if _, err := r.Get(name); err != nil {
			return err
		}
	}
	return nil
}
