package sfx

import "github.com/jakecoffman/cp"

// Kind names a sound effect.
type Kind int

const (
	Jump Kind = iota
	Score
	Shot
	Hit
)

func (k Kind) String() string {
	switch k {
	case Jump:
		return "jump"
	case Score:
		return "score"
	case Shot:
		return "shot"
	case Hit:
		return "hit"
	default:
		return "unknown"
	}
}

// Kinds lists every effect in order.
func Kinds() []Kind {
	return []Kind{Jump, Score, Shot, Hit}
}

// Player plays positional one-shot effects.
type Player interface {
	Play(kind Kind, pos cp.Vector, volume, pitch float64)
}

// Nop discards every sound. Used by headless runs.
type Nop struct{}

func (Nop) Play(Kind, cp.Vector, float64, float64) {}

// Recorder keeps every request. Used in tests and by the simulator summary.
type Recorder struct {
	Played []Played
}

type Played struct {
	Kind   Kind
	Pos    cp.Vector
	Volume float64
	Pitch  float64
}

func (r *Recorder) Play(kind Kind, pos cp.Vector, volume, pitch float64) {
	r.Played = append(r.Played, Played{Kind: kind, Pos: pos, Volume: volume, Pitch: pitch})
}

// Count returns how many times kind was played.
func (r *Recorder) Count(kind Kind) int {
	n := 0
	for _, p := range r.Played {
		if p.Kind == kind {
			n++
		}
	}
	return n
}
