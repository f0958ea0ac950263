package enemy

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/physics"
	"github.com/milk9111/patrolai/prefabs"
	"github.com/milk9111/patrolai/sfx"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays vals in order, then returns fallback forever.
type scriptedRand struct {
	vals     []float64
	fallback float64
}

func (r *scriptedRand) Float64() float64 {
	if len(r.vals) == 0 {
		return r.fallback
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v
}

type fakePhysics struct {
	grounded bool
	solid    func(pos, size cp.Vector) bool
}

func (f *fakePhysics) IsGrounded(*physics.Body) bool { return f.grounded }

func (f *fakePhysics) TileCollisionTest(pos, size cp.Vector) bool {
	return f.solid != nil && f.solid(pos, size)
}

type fakePlayer struct {
	pos    cp.Vector
	size   cp.Vector
	dead   bool
	health int
	hits   []int
}

func (p *fakePlayer) Position() cp.Vector { return p.pos }
func (p *fakePlayer) Size() cp.Vector     { return p.size }
func (p *fakePlayer) IsDead() bool        { return p.dead }
func (p *fakePlayer) Damage(amount int, _ any) {
	p.hits = append(p.hits, amount)
	p.health -= amount
	if p.health <= 0 {
		p.health = 0
		p.dead = true
	}
}

type fakeScore struct{ n int }

func (s *fakeScore) IncrementScore() { s.n++ }

type fakeDebris struct {
	spawned []cp.Vector
	colors  []color.Color
}

func (d *fakeDebris) SpawnDebris(pos cp.Vector, c color.Color) {
	d.spawned = append(d.spawned, pos)
	d.colors = append(d.colors, c)
}

type fakeCanvas struct {
	rects int
	last  [2]cp.Vector
}

func (c *fakeCanvas) FillRect(center, size cp.Vector, _ color.Color) {
	c.rects++
	c.last = [2]cp.Vector{center, size}
}

type fixture struct {
	enemy   *Enemy
	physics *fakePhysics
	player  *fakePlayer
	rand    *scriptedRand
	score   *fakeScore
	debris  *fakeDebris
	sound   *sfx.Recorder
	noPlay  bool
}

type fixtureOpt func(*fixture)

func withoutPlayer() fixtureOpt { return func(f *fixture) { f.noPlay = true } }

func grounded() fixtureOpt { return func(f *fixture) { f.physics.grounded = true } }

func playerAt(x, y float64) fixtureOpt {
	return func(f *fixture) { f.player.pos = cp.Vector{X: x, Y: y} }
}

// newFixture spawns an enemy at the origin. Construction uses a seeded
// source; afterwards every roll comes from f.rand, which fails any chance
// below 0.999 unless values are queued.
func newFixture(t *testing.T, spec prefabs.EnemySpec, opts ...fixtureOpt) *fixture {
	t.Helper()
	if spec.Name == "" {
		spec.Name = "test"
	}
	v, err := NewVariant(spec, nil)
	require.NoError(t, err)

	f := &fixture{
		physics: &fakePhysics{},
		player:  &fakePlayer{pos: cp.Vector{X: 50, Y: 0}, size: cp.Vector{X: 0.9, Y: 0.9}, health: 100},
		rand:    &scriptedRand{fallback: 0.999},
		score:   &fakeScore{},
		debris:  &fakeDebris{},
		sound:   &sfx.Recorder{},
	}
	for _, opt := range opts {
		opt(f)
	}

	log, _ := test.NewNullLogger()
	env := Env{
		Physics: f.physics,
		Player: func() Player {
			if f.noPlay {
				return nil
			}
			return f.player
		},
		Rand:   common.NewRand(7),
		Sound:  f.sound,
		Score:  f.score,
		Debris: f.debris,
		Log:    logrus.NewEntry(log),
	}
	f.enemy = New(cp.Vector{}, v, env)
	f.enemy.env.Rand = f.rand
	return f
}

func (f *fixture) queue(vals ...float64) {
	f.rand.vals = append(f.rand.vals, vals...)
}
