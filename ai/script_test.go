package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmbushScript(t *testing.T) {
	g, err := LoadScriptGuard("ambush.tengo")
	require.NoError(t, err)

	tests := []struct {
		name   string
		senses Senses
		want   bool
	}{
		{"no player", Senses{Event: EventDo, Distance: 1, Grounded: true}, false},
		{"far", Senses{Event: EventDo, HasPlayer: true, Distance: 10, Grounded: true}, false},
		{"close grounded", Senses{Event: EventDo, HasPlayer: true, Distance: 2, Grounded: true}, true},
		{"close airborne", Senses{Event: EventDo, HasPlayer: true, Distance: 2}, false},
		{"shot nearby", Senses{Event: EventHeardShot, HasPlayer: true, Distance: 10}, true},
		{"shot far away", Senses{Event: EventHeardShot, HasPlayer: true, Distance: 20}, false},
		{"stuck too long", Senses{Event: EventDo, HasPlayer: true, Distance: 30, Stall: 300}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Eval(tt.senses)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScriptGuardCompilesLiteral(t *testing.T) {
	g, err := NewScriptGuard("literal.tengo", []byte(`aggro := true`))
	require.NoError(t, err)

	ok, err := g.Eval(Senses{Event: EventDo})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestScriptGuardCloneIsIndependent(t *testing.T) {
	g, err := NewScriptGuard("inline", []byte(`aggro := health > 2`))
	require.NoError(t, err)
	c := g.Clone()

	ok, err := g.Eval(Senses{Health: 5})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Eval(Senses{Health: 1})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScriptGuardErrors(t *testing.T) {
	_, err := NewScriptGuard("syntax", []byte(`aggro := (`))
	assert.Error(t, err)

	_, err = NewScriptGuard("no result", []byte(`x := 1`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not define aggro")

	_, err = NewScriptGuard("runtime", []byte(`aggro := 1 / stall`))
	assert.Error(t, err)

	_, err = LoadScriptGuard("missing.tengo")
	assert.Error(t, err)

	var nilGuard *ScriptGuard
	_, err = nilGuard.Eval(Senses{})
	assert.Error(t, err)
}

func TestScriptGuardInRule(t *testing.T) {
	g, err := LookupGuard("script", "scripts/ambush.tengo")
	require.NoError(t, err)

	ctx := &Context{Actor: &fakeActor{hasPlayer: true, distance: 1, grounded: true}, Event: EventDo}
	assert.True(t, g(ctx))

	ctx.Actor = &fakeActor{hasPlayer: true, distance: 9}
	assert.False(t, g(ctx))
}
