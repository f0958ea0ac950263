package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// screenCanvas maps y-up world units onto the screen, centred on camera.
type screenCanvas struct {
	screen *ebiten.Image
	camera cp.Vector
	scale  float64
}

func (c *screenCanvas) toScreen(center, size cp.Vector) (x, y, w, h float32) {
	left := (center.X-size.X/2-c.camera.X)*c.scale + screenWidth/2
	top := screenHeight/2 - (center.Y+size.Y/2-c.camera.Y)*c.scale
	return float32(left), float32(top), float32(size.X * c.scale), float32(size.Y * c.scale)
}

func (c *screenCanvas) FillRect(center, size cp.Vector, clr color.Color) {
	x, y, w, h := c.toScreen(center, size)
	vector.DrawFilledRect(c.screen, x, y, w, h, clr, false)
}

func (c *screenCanvas) StrokeRect(center, size cp.Vector, clr color.Color) {
	x, y, w, h := c.toScreen(center, size)
	vector.StrokeRect(c.screen, x, y, w, h, 2, clr, false)
}
