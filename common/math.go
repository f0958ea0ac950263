package common

import (
	"image/color"
	"math"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// HSL converts hue, saturation and lightness in [0,1] to an opaque colour.
func HSL(h, s, l float64) color.NRGBA {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	q := l * (1 + s)
	if l >= 0.5 {
		q = l + s - l*s
	}
	p := 2*l - q
	f := func(t float64) uint8 {
		if t < 0 {
			t++
		} else if t > 1 {
			t--
		}
		var v float64
		switch {
		case t < 1.0/6:
			v = p + (q-p)*6*t
		case t < 0.5:
			v = q
		case t < 2.0/3:
			v = p + (q-p)*(2.0/3-t)*6
		default:
			v = p
		}
		return uint8(math.Round(Clamp(v, 0, 1) * 255))
	}
	return color.NRGBA{R: f(h + 1.0/3), G: f(h), B: f(h - 1.0/3), A: 0xff}
}
