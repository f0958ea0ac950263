package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedLevels(t *testing.T) {
	for _, name := range []string{"flat", "meadow.json", "levels/meadow"} {
		t.Run(name, func(t *testing.T) {
			lvl, err := Load(name)
			require.NoError(t, err)
			assert.NotEmpty(t, lvl.EntitiesOfType("player"))
			assert.NotEmpty(t, lvl.EntitiesOfType("enemy"))
		})
	}
}

func TestLoadMissingLevel(t *testing.T) {
	_, err := Load("nope")
	assert.Error(t, err)
}

func TestSolidAndWorldPos(t *testing.T) {
	lvl, err := Parse([]byte(`{"width":3,"height":2,"layers":[[0,0,0,1,1,1]]}`))
	require.NoError(t, err)

	assert.False(t, lvl.Solid(0, 0))
	assert.True(t, lvl.Solid(2, 1))
	assert.False(t, lvl.Solid(5, 1))

	x, y := lvl.WorldPos(1, 0)
	assert.Equal(t, 1.5, x)
	assert.Equal(t, 1.5, y)
}

func TestParseRejectsBadLayer(t *testing.T) {
	_, err := Parse([]byte(`{"width":3,"height":2,"layers":[[0,1]]}`))
	assert.Error(t, err)
	_, err = Parse([]byte(`{"width":0,"height":2}`))
	assert.Error(t, err)
}

func TestEntityProp(t *testing.T) {
	e := Entity{Props: map[string]interface{}{"variant": "stalker", "n": 3.0}}
	assert.Equal(t, "stalker", e.Prop("variant", "walker"))
	assert.Equal(t, "x", e.Prop("n", "x"))
	assert.Equal(t, "walker", Entity{}.Prop("variant", "walker"))
}
