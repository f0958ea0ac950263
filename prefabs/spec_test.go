package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnemySpecStockVariants(t *testing.T) {
	variants := EnemyVariants()
	require.ElementsMatch(t, []string{"ambusher", "hopper", "listener", "stalker", "walker"}, variants)

	for _, v := range variants {
		t.Run(v, func(t *testing.T) {
			spec, err := LoadEnemySpec(v)
			require.NoError(t, err)
			assert.Equal(t, v, spec.Name)
			assert.Equal(t, DefaultFSMFile, spec.FSM)
			assert.Positive(t, spec.Health)
			assert.Equal(t, 1, spec.ContactDamage)
			assert.InDelta(t, 0.9, spec.Collider.Width, 1e-9)
			assert.NotEmpty(t, spec.Patrol.EndOn)
		})
	}
}

func TestLoadEnemySpecVariantTuning(t *testing.T) {
	walker, err := LoadEnemySpec("walker")
	require.NoError(t, err)
	assert.Equal(t, AggroDistance, walker.Aggro.Trigger)
	assert.True(t, walker.Patrol.EndsOn(PatrolEndTile))
	assert.False(t, walker.Patrol.EndsOn(PatrolEndStall))
	assert.InDelta(t, 0.02, walker.JumpChance, 1e-9)

	hopper, err := LoadEnemySpec("hopper")
	require.NoError(t, err)
	assert.Equal(t, ReactHop, hopper.Damage.Kind)
	require.NotNil(t, hopper.Color)
	r, g, b, _ := hopper.Color.RGBA()
	assert.Equal(t, uint32(0x9f), r>>8)
	assert.Equal(t, uint32(0xe8), g>>8)
	assert.Equal(t, uint32(0x70), b>>8)

	listener, err := LoadEnemySpec("listener")
	require.NoError(t, err)
	assert.Equal(t, AggroSound, listener.Aggro.Trigger)
	assert.True(t, listener.Patrol.RandomStart)
}

func TestLoadEnemySpecUnknown(t *testing.T) {
	_, err := LoadEnemySpec("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownVariant))
}

func TestParseEnemySpecDefaults(t *testing.T) {
	spec, err := ParseEnemySpec("blank", []byte("jump_chance: 0.1\n"))
	require.NoError(t, err)
	assert.Equal(t, "blank", spec.Name)
	assert.Equal(t, 5, spec.Health)
	assert.Equal(t, 5, spec.Patrol.StallThreshold)
	assert.InDelta(t, 7, spec.Patrol.Range, 1e-9)
	assert.InDelta(t, 0.05, spec.Patrol.Speed, 1e-9)
	assert.Equal(t, AggroAlways, spec.Aggro.Trigger)
	assert.Equal(t, ReactJump, spec.Damage.Kind)
	assert.InDelta(t, 1, spec.Damage.Chance, 1e-9)

	spec, err = ParseEnemySpec("jumper", []byte("damage_reaction:\n  kind: jump\n"))
	require.NoError(t, err)
	assert.Equal(t, ReactJump, spec.Damage.Kind)
	assert.InDelta(t, 1, spec.Damage.Chance, 1e-9)

	spec, err = ParseEnemySpec("shy", []byte("damage_reaction: {kind: jump, chance: 0.25}\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.25, spec.Damage.Chance, 1e-9)

	spec, err = ParseEnemySpec("hopper", []byte("damage_reaction: {kind: hop}\n"))
	require.NoError(t, err)
	assert.Zero(t, spec.Damage.Chance)
}

func TestParseEnemySpecValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"jump chance", "jump_chance: 1.5\n"},
		{"reaction chance", "damage_reaction: {kind: jump, chance: -1}\n"},
		{"distance without range", "aggro: {trigger: distance}\n"},
		{"script without file", "aggro: {trigger: script}\n"},
		{"unknown trigger", "aggro: {trigger: telepathy}\n"},
		{"unknown reaction", "damage_reaction: {kind: explode}\n"},
		{"unknown end", "patrol: {end_on: [cliff]}\n"},
		{"bad yaml", "patrol: [\n"},
		{"bad color", "color: \"#12\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnemySpec("x", []byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFSMSpec(t *testing.T) {
	spec, err := LoadFSMSpec(DefaultFSMFile)
	require.NoError(t, err)
	assert.Equal(t, "patrol", spec.Initial)
	assert.Contains(t, spec.States, "hunt")
	assert.True(t, spec.States["dead"].Terminal)
	assert.Len(t, spec.Transitions["*"], 3)
	assert.Equal(t, "patrol_end", spec.Transitions["patrol"][0].When)
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	old := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = old })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "enemy_walker.yaml"), []byte("name: walker\nhealth: 9\n"), 0o644))

	spec, err := LoadEnemySpec("walker")
	require.NoError(t, err)
	assert.Equal(t, 9, spec.Health)

	_, ok := ModTime("enemy_walker.yaml")
	assert.True(t, ok)
	_, ok = ModTime("enemy_stalker.yaml")
	assert.False(t, ok)

	spec, err = LoadEnemySpec("stalker")
	require.NoError(t, err)
	assert.Equal(t, 5, spec.Health)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"ambush.tengo", "scripts/ambush.tengo", "prefabs/scripts/ambush.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "aggro")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path    string
		kind    ChangeKind
		variant string
	}{
		{"prefabs/enemy_walker.yaml", ChangeVariant, "walker"},
		{`prefabs\enemy_hopper.yml`, ChangeVariant, "hopper"},
		{"prefabs/fsm_enemy.yaml", ChangeFSM, ""},
		{"prefabs/scripts/ambush.tengo", ChangeScript, ""},
		{"prefabs/notes.yaml", ChangeOther, ""},
		{"prefabs/readme.md", ChangeOther, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c := Classify(tt.path)
			assert.Equal(t, tt.kind, c.Kind, c.Kind.String())
			assert.Equal(t, tt.variant, c.Variant)
		})
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	target := filepath.Join(dir, "enemy_walker.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: walker\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	select {
	case c := <-w.Changes:
		assert.Equal(t, ChangeVariant, c.Kind)
		assert.Equal(t, "walker", c.Variant)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	require.NoError(t, w.Close())
	_, open := <-w.Changes
	for open {
		_, open = <-w.Changes
	}
}
