package pipeline

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"sharks/internal/mesh"
	"sharks/internal/scene"
)

const (
	shapeScale = 0.9
	wireSpread = 0.01
)

var lightDir = mgl32.Vec3{1, 4, -10}.Normalize()

// wireOffsets nudge the wireframe along the screen axes so ten overlapping
// copies read as a thick line.
var wireOffsets = [...][2]float32{
	{-2, 0}, {-1, 0}, {0, 0}, {1, 0}, {2, 0},
	{0, -2}, {0, -1}, {0, 0}, {0, 1}, {0, 2},
}

// ShapeRotation returns the shape's model matrix at time t. With funky set
// it also pulses in size.
func ShapeRotation(t float64, funky bool) mgl32.Mat4 {
	r := mgl32.HomogRotate3DY(float32(t)).Mul4(mgl32.HomogRotate3DX(float32(t * 0.137)))
	if funky {
		ss := float32(math.Sin(t*10)*0.5 + 1)
		r = r.Mul4(mgl32.Scale3D(ss, ss, ss))
	}
	return r
}

// ShapeColor is the solid shape's base color at time t.
func ShapeColor(t float64) mgl32.Vec3 {
	return HSV(math.Mod(t*100, 360), 1, 1)
}

// ShapeMatrix is the clip transform for the solid shape.
func ShapeMatrix(vp, rot mgl32.Mat4) mgl32.Mat4 {
	return vp.Mul4(rot).Mul4(mgl32.Scale3D(shapeScale, shapeScale, shapeScale))
}

// FlatShade returns base lit by the fixed light for a normal transformed by m.
func FlatShade(m mgl32.Mat4, normal mgl32.Vec3, base mgl32.Vec3) mgl32.Vec4 {
	n := m.Mul4x1(normal.Vec4(0)).Vec3()
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}
	l := n.Dot(lightDir)*0.5 + 0.5
	return base.Mul(l).Vec4(1)
}

// WireMatrices returns the clip transforms of the wireframe copies.
func WireMatrices(cam Camera, rot mgl32.Mat4) []mgl32.Mat4 {
	sx, sy := cam.ScreenAxes()
	out := make([]mgl32.Mat4, len(wireOffsets))
	for i, o := range wireOffsets {
		off := sx.Mul(o[0] * wireSpread).Add(sy.Mul(o[1] * wireSpread))
		out[i] = cam.ViewProjection.Mul4(mgl32.Translate3D(off.X(), off.Y(), off.Z())).Mul4(rot)
	}
	return out
}

// Shapes holds the constant meshes for one scene.Shape.
type Shapes struct {
	Lines *mesh.LineMesh
	Solid *mesh.Mesh
}

// NewShapes builds the line and solid meshes for every shape.
func NewShapes() map[scene.Shape]Shapes {
	sphere := mesh.MustSphere(1, 6, 6)
	return map[scene.Shape]Shapes{
		scene.Sphere: {
			Lines: mesh.AsLines(sphere),
			Solid: mesh.FlattenNormals(mesh.Deindex(sphere)),
		},
		scene.Cube: {
			Lines: mesh.LineCube(1),
			Solid: mesh.Cube(1),
		},
	}
}
