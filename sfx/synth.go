package sfx

import (
	"encoding/binary"
	"math"

	"github.com/milk9111/patrolai/common"
)

const DefaultSampleRate = 44100

// Synth renders the game's effects as 16-bit little-endian stereo PCM, the
// format ebiten's audio context plays directly.
type Synth struct {
	SampleRate int
	rand       common.Rand
}

func NewSynth(sampleRate int) *Synth {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Synth{SampleRate: sampleRate, rand: common.NewRand(7)}
}

type voice struct {
	duration  float64 // seconds
	freq      float64 // start frequency in Hz
	slide     float64 // frequency change per second
	noise     float64 // 0 = pure square, 1 = pure noise
	arpeggio  float64 // frequency multiplier applied halfway
	amplitude float64
}

var voices = map[Kind]voice{
	Jump:  {duration: 0.12, freq: 300, slide: 2200, amplitude: 0.3},
	Score: {duration: 0.2, freq: 660, arpeggio: 1.5, amplitude: 0.3},
	Shot:  {duration: 0.15, freq: 900, slide: -4000, noise: 0.6, amplitude: 0.35},
	Hit:   {duration: 0.18, freq: 180, slide: -600, noise: 0.3, amplitude: 0.4},
}

// Duration returns how long an effect lasts at pitch 1.
func (s *Synth) Duration(kind Kind) float64 {
	return voices[kind].duration
}

// Render synthesizes kind. Pitch scales frequency and shortens the sound.
func (s *Synth) Render(kind Kind, pitch float64) []byte {
	v, ok := voices[kind]
	if !ok {
		return nil
	}
	if pitch <= 0 {
		pitch = 1
	}
	duration := v.duration / math.Sqrt(pitch)
	n := int(duration * float64(s.SampleRate))
	out := make([]byte, n*4)

	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(s.SampleRate)
		freq := (v.freq + v.slide*t) * pitch
		if v.arpeggio != 0 && t > duration/2 {
			freq *= v.arpeggio
		}
		if freq < 20 {
			freq = 20
		}
		phase += freq / float64(s.SampleRate)
		phase -= math.Floor(phase)

		square := 1.0
		if phase >= 0.5 {
			square = -1
		}
		sample := common.Lerp(square, common.Range(s.rand, -1, 1), v.noise)

		// linear attack then decay
		env := 1 - t/duration
		if t < 0.005 {
			env *= t / 0.005
		}
		value := int16(common.Clamp(sample*env*v.amplitude, -1, 1) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(value))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(value))
	}
	return out
}
