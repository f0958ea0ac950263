package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownVariant is returned when no prefab exists for an enemy variant.
var ErrUnknownVariant = errors.New("prefabs: unknown enemy variant")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Aggro triggers.
const (
	AggroAlways   = "always"
	AggroDistance = "distance"
	AggroSound    = "sound"
	AggroScript   = "script"
)

// Damage reactions.
const (
	ReactJump = "jump"
	ReactHop  = "hop"
	ReactNone = "none"
)

// Patrol-end strategies.
const (
	PatrolEndStall = "stall"
	PatrolEndTile  = "tile"
)

// EnemySpec is one enemy variant. Everything that differs between enemy
// kinds lives here; the behaviour code is shared.
type EnemySpec struct {
	Name          string             `yaml:"name"`
	FSM           string             `yaml:"fsm"`
	Health        int                `yaml:"health"`
	ContactDamage int                `yaml:"contact_damage"`
	Collider      ColliderSpec       `yaml:"collider"`
	Color         *YAMLColor         `yaml:"color"`
	SwellSpeed    float64            `yaml:"swell_speed"`
	JumpChance    float64            `yaml:"jump_chance"`
	HearingRange  float64            `yaml:"hearing_range"`
	Patrol        PatrolSpec         `yaml:"patrol"`
	Aggro         AggroSpec          `yaml:"aggro"`
	Damage        DamageReactionSpec `yaml:"damage_reaction"`
}

type PatrolSpec struct {
	Speed          float64  `yaml:"speed"`
	Range          float64  `yaml:"range"`
	RandomStart    bool     `yaml:"random_start"`
	EndOn          []string `yaml:"end_on"`
	StallThreshold int      `yaml:"stall_threshold"`
}

type AggroSpec struct {
	Trigger string  `yaml:"trigger"`
	Range   float64 `yaml:"range"`
	Script  string  `yaml:"script"`
}

type DamageReactionSpec struct {
	Kind   string  `yaml:"kind"`
	Chance float64 `yaml:"chance"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ApplyDefaults fills zero fields with the stock enemy tuning.
func (s *EnemySpec) ApplyDefaults() {
	if s.FSM == "" {
		s.FSM = DefaultFSMFile
	}
	if s.Health <= 0 {
		s.Health = 5
	}
	if s.ContactDamage <= 0 {
		s.ContactDamage = 1
	}
	if s.Collider.Width <= 0 {
		s.Collider.Width = 0.9
	}
	if s.Collider.Height <= 0 {
		s.Collider.Height = 0.9
	}
	if s.SwellSpeed == 0 {
		s.SwellSpeed = 6
	}
	if s.Patrol.Speed == 0 {
		s.Patrol.Speed = 0.05
	}
	if s.Patrol.Range <= 0 {
		s.Patrol.Range = 7
	}
	if s.Patrol.StallThreshold <= 0 {
		s.Patrol.StallThreshold = 5
	}
	if s.Aggro.Trigger == "" {
		s.Aggro.Trigger = AggroAlways
	}
	if s.Damage.Kind == "" {
		s.Damage.Kind = ReactJump
	}
	// an unset jump chance means always; use kind none to disable the flinch
	if s.Damage.Kind == ReactJump && s.Damage.Chance == 0 {
		s.Damage.Chance = 1
	}
}

// Validate reports the first inconsistent field.
func (s *EnemySpec) Validate() error {
	if s.JumpChance < 0 || s.JumpChance > 1 {
		return fmt.Errorf("prefabs: %s: jump_chance %v out of [0,1]", s.Name, s.JumpChance)
	}
	if s.Damage.Chance < 0 || s.Damage.Chance > 1 {
		return fmt.Errorf("prefabs: %s: damage_reaction.chance %v out of [0,1]", s.Name, s.Damage.Chance)
	}
	switch s.Aggro.Trigger {
	case AggroAlways, AggroSound:
	case AggroDistance:
		if s.Aggro.Range <= 0 {
			return fmt.Errorf("prefabs: %s: distance aggro needs a positive range", s.Name)
		}
	case AggroScript:
		if s.Aggro.Script == "" {
			return fmt.Errorf("prefabs: %s: script aggro needs a script", s.Name)
		}
	default:
		return fmt.Errorf("prefabs: %s: unknown aggro trigger %q", s.Name, s.Aggro.Trigger)
	}
	switch s.Damage.Kind {
	case ReactJump, ReactHop, ReactNone:
	default:
		return fmt.Errorf("prefabs: %s: unknown damage reaction %q", s.Name, s.Damage.Kind)
	}
	for _, e := range s.Patrol.EndOn {
		if e != PatrolEndStall && e != PatrolEndTile {
			return fmt.Errorf("prefabs: %s: unknown patrol end strategy %q", s.Name, e)
		}
	}
	return nil
}

// EndsOn reports whether a patrol-end strategy is enabled.
func (p PatrolSpec) EndsOn(strategy string) bool {
	for _, e := range p.EndOn {
		if e == strategy {
			return true
		}
	}
	return false
}

func enemyFile(variant string) string {
	return "enemy_" + variant + ".yaml"
}

// LoadEnemySpec loads, defaults and validates the prefab for a variant.
func LoadEnemySpec(variant string) (*EnemySpec, error) {
	data, err := Load(enemyFile(variant))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w %q", ErrUnknownVariant, variant)
		}
		return nil, fmt.Errorf("prefabs: load %s: %w", enemyFile(variant), err)
	}
	return ParseEnemySpec(variant, data)
}

// ParseEnemySpec decodes a variant prefab.
func ParseEnemySpec(variant string, data []byte) (*EnemySpec, error) {
	var spec EnemySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", enemyFile(variant), err)
	}
	if spec.Name == "" {
		spec.Name = variant
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// EnemyVariants lists the embedded enemy variants.
func EnemyVariants() []string {
	matches, err := fs.Glob(PrefabsFS, "enemy_*.yaml")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(strings.TrimPrefix(path.Base(m), "enemy_"), ".yaml")
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// VariantFromPath maps a prefab file name back to its variant, if it is one.
func VariantFromPath(p string) (string, bool) {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	if !strings.HasPrefix(base, "enemy_") || !isSpecFile(base) {
		return "", false
	}
	name := strings.TrimPrefix(base, "enemy_")
	return strings.TrimSuffix(name, path.Ext(name)), true
}

// DefaultFSMFile is the FSM shared by the stock enemies.
const DefaultFSMFile = "fsm_enemy.yaml"

type FSMSpec struct {
	Initial     string                   `yaml:"initial"`
	States      map[string]FSMStateSpec  `yaml:"states"`
	Transitions map[string][]FSMRuleSpec `yaml:"transitions"`
}

type FSMStateSpec struct {
	OnEnter  []map[string]any `yaml:"on_enter"`
	While    []map[string]any `yaml:"while"`
	OnExit   []map[string]any `yaml:"on_exit"`
	Terminal bool             `yaml:"terminal"`
}

// FSMRuleSpec is one transition entry. When is either a guard name or a map
// of guard name to argument; every guard in the map must pass.
type FSMRuleSpec struct {
	Name  string           `yaml:"name"`
	Event string           `yaml:"event"`
	When  any              `yaml:"when"`
	To    string           `yaml:"to"`
	Do    []map[string]any `yaml:"do"`
}

func LoadFSMSpec(filename string) (*FSMSpec, error) {
	spec, err := LoadSpec[FSMSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
