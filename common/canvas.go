package common

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// Canvas receives world-space draw calls. Positions are box centres.
type Canvas interface {
	FillRect(center, size cp.Vector, c color.Color)
}
