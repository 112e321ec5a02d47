// Package pipeline computes what the renderer draws each frame: the camera,
// per-instance transforms, projected and clipped primitives and the raster
// state of every pass. It never touches the GPU.
package pipeline

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	eye    = mgl32.Vec3{0, 0, 4}
	target = mgl32.Vec3{0, 0, 0}
	up     = mgl32.Vec3{0, 1, 0}
)

const (
	fieldOfView = math.Pi * 0.25
	zNear       = 0.1
	zFar        = 100
)

// Camera is the fixed demo camera for one surface size.
type Camera struct {
	Projection     mgl32.Mat4
	View           mgl32.Mat4
	ViewProjection mgl32.Mat4
	// World is the camera's own transform, the inverse of View.
	World mgl32.Mat4
}

// NewCamera returns the camera for a width x height surface.
func NewCamera(width, height int) Camera {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	projection := mgl32.Perspective(fieldOfView, aspect, zNear, zFar)
	view := mgl32.LookAtV(eye, target, up)
	return Camera{
		Projection:     projection,
		View:           view,
		ViewProjection: projection.Mul4(view),
		World:          view.Inv(),
	}
}

// ScreenAxes returns the world-space directions of screen right and screen up.
func (c Camera) ScreenAxes() (x, y mgl32.Vec3) {
	return c.View.Col(0).Vec3(), c.View.Col(1).Vec3()
}
