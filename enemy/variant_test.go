package enemy

import (
	"errors"
	"testing"

	"github.com/milk9111/patrolai/ai"
	"github.com/milk9111/patrolai/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCachesVariants(t *testing.T) {
	r := NewRegistry(nil)

	walker, err := r.Get("walker")
	require.NoError(t, err)
	assert.Equal(t, "walker", walker.Name())
	assert.Equal(t, ai.StatePatrol, walker.FSM.Initial)

	again, err := r.Get("walker")
	require.NoError(t, err)
	assert.Same(t, walker, again)

	stalker, err := r.Get("stalker")
	require.NoError(t, err)
	assert.Same(t, walker.FSM, stalker.FSM)
}

func TestRegistryReload(t *testing.T) {
	r := NewRegistry(nil)
	walker, err := r.Get("walker")
	require.NoError(t, err)
	hopper, err := r.Get("hopper")
	require.NoError(t, err)

	r.Reload(prefabs.Classify("prefabs/enemy_walker.yaml"))
	fresh, err := r.Get("walker")
	require.NoError(t, err)
	assert.NotSame(t, walker, fresh)
	same, err := r.Get("hopper")
	require.NoError(t, err)
	assert.Same(t, hopper, same)

	r.Reload(prefabs.Classify("prefabs/fsm_enemy.yaml"))
	same, err = r.Get("hopper")
	require.NoError(t, err)
	assert.NotSame(t, hopper, same)

	r.Reload(prefabs.Classify("prefabs/readme.md"))
	again, err := r.Get("hopper")
	require.NoError(t, err)
	assert.Same(t, same, again)
}

func TestRegistryUnknownVariant(t *testing.T) {
	_, err := NewRegistry(nil).Get("dragon")
	require.Error(t, err)
	assert.True(t, errors.Is(err, prefabs.ErrUnknownVariant))
}

func TestRegistryPreload(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Preload())
	for _, name := range prefabs.EnemyVariants() {
		v, err := r.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, v.Name())
	}
}

func TestNewVariantValidates(t *testing.T) {
	_, err := NewVariant(prefabs.EnemySpec{Name: "bad", JumpChance: 2}, nil)
	assert.Error(t, err)

	_, err = NewVariant(prefabs.EnemySpec{Name: "bad", Aggro: prefabs.AggroSpec{Trigger: prefabs.AggroScript, Script: "missing.tengo"}}, nil)
	assert.Error(t, err)

	v := DefaultVariant()
	assert.Equal(t, "default", v.Name())
	assert.NotNil(t, v.FSM)
}
