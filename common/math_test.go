package common

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampAndSign(t *testing.T) {
	assert.Equal(t, 0.4, Clamp(0.55, 0, 0.4))
	assert.Equal(t, 0.0, Clamp(-1, 0, 0.4))
	assert.Equal(t, 0.3, Clamp(0.3, 0, 0.4))

	assert.Equal(t, 1.0, Sign(3))
	assert.Equal(t, -1.0, Sign(-0.2))
	assert.Equal(t, 0.0, Sign(0))
}

func TestHSL(t *testing.T) {
	cases := []struct {
		name    string
		h, s, l float64
		want    color.NRGBA
	}{
		{"red", 0, 1, 0.5, color.NRGBA{R: 255, A: 255}},
		{"green", 1.0 / 3, 1, 0.5, color.NRGBA{G: 255, A: 255}},
		{"blue", 2.0 / 3, 1, 0.5, color.NRGBA{B: 255, A: 255}},
		{"white", 0.2, 1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, HSL(c.h, c.s, c.l))
		})
	}
}

func TestRangeUsesBothBoundOrders(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 200; i++ {
		v := Range(r, 0.4, 0.2)
		assert.True(t, v > 0.2 && v <= 0.4, "value %v out of range", v)
		w := Range(r, -0.1, 0.1)
		assert.True(t, w >= -0.1 && w < 0.1, "value %v out of range", w)
	}
}
