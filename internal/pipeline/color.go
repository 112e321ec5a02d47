package pipeline

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// HSV converts hue in degrees, saturation and value in [0,1] to RGB. Hue
// wraps around, so 360 and -120 are red and blue.
func HSV(h, s, v float64) mgl32.Vec3 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsv(h, s, v)
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}
