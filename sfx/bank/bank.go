package bank

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/sfx"
)

// DefaultRange is the distance at which a sound fades to silence.
const DefaultRange = 30

type clipKey struct {
	kind  sfx.Kind
	pitch float64
}

// Bank plays synthesized effects through ebiten's audio context, quieter
// the further they are from the listener.
type Bank struct {
	ctx      *audio.Context
	synth    *sfx.Synth
	clips    map[clipKey][]byte
	Listener func() cp.Vector
	Range    float64
	Volume   float64
}

// New creates a bank on the shared audio context, creating the context if
// needed. Only one context may exist per process.
func New(sampleRate int) *Bank {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Bank{
		ctx:    ctx,
		synth:  sfx.NewSynth(ctx.SampleRate()),
		clips:  map[clipKey][]byte{},
		Range:  DefaultRange,
		Volume: 1,
	}
}

func (b *Bank) clip(kind sfx.Kind, pitch float64) []byte {
	key := clipKey{kind: kind, pitch: math.Round(pitch*100) / 100}
	if data, ok := b.clips[key]; ok {
		return data
	}
	data := b.synth.Render(kind, key.pitch)
	b.clips[key] = data
	return data
}

// Play fires a one-shot effect.
func (b *Bank) Play(kind sfx.Kind, pos cp.Vector, volume, pitch float64) {
	v := volume * b.Volume
	if b.Listener != nil && b.Range > 0 {
		d := b.Listener().Distance(pos)
		v *= common.Clamp(1-d/b.Range, 0, 1)
	}
	if v <= 0 {
		return
	}
	data := b.clip(kind, pitch)
	if len(data) == 0 {
		return
	}
	p := b.ctx.NewPlayerFromBytes(data)
	p.SetVolume(common.Clamp(v, 0, 1))
	p.Play()
}
