package pipeline

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	laserSize   = 0.05
	laserLength = 100
)

// laserRamp is the beam's cross-section brightness.
var laserRamp = [...]uint8{0, 64, 128, 255, 255, 128, 64, 0}

// LaserImage returns the 8x1 grey ramp sampled across a beam.
func LaserImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, len(laserRamp), 1))
	for x, l := range laserRamp {
		img.SetRGBA(x, 0, color.RGBA{R: l, G: l, B: l, A: 0xff})
	}
	return img
}

// LaserMatrix returns the clip transform of a beam fired from start away
// from end. It reports false when the two coincide.
func LaserMatrix(vp mgl32.Mat4, start, end mgl32.Vec3) (mgl32.Mat4, bool) {
	o, ok := Orient(start, end)
	if !ok {
		return o, false
	}
	return vp.Mul4(o).Mul4(mgl32.Scale3D(laserSize, laserSize, -laserLength)), true
}

// LaserColor is the color multiplier of the beam with index ndx on frame
// count. Neighbouring beams are out of phase so the swarm flickers.
func LaserColor(count, ndx int) mgl32.Vec4 {
	c := float32((count+ndx)%3)/2*0.5 + 0.5
	return mgl32.Vec4{c, 0.2 * c, 0.2 * c, 1}
}
