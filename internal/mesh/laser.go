package mesh

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidSegments is returned for a beam split into fewer than one piece.
var ErrInvalidSegments = errors.New("mesh: segments must be positive")

// plane returns a 1x1 plane in XZ with z in [-1,0], facing +Y, cut into
// segments strips along Z.
func plane(segments int) *Mesh {
	m := &Mesh{}
	for z := 0; z <= segments; z++ {
		for x := 0; x <= 1; x++ {
			u, v := float32(x), float32(z)/float32(segments)
			m.Positions = append(m.Positions, mgl32.Vec3{u - 0.5, 0, v - 0.5 - 0.5})
			m.Normals = append(m.Normals, mgl32.Vec3{0, 1, 0})
			m.TexCoords = append(m.TexCoords, mgl32.Vec2{u, 1 - v})
		}
	}
	for z := 0; z < segments; z++ {
		o := uint16(z * 2)
		m.Indices = append(m.Indices, o, o+2, o+1, o+2, o+3, o+1)
	}
	return m
}

// LaserPlanes returns two unit planes crossing along the Z axis, the second
// rotated a quarter turn about Z. Scaled along Z it becomes a beam visible
// from any side.
func LaserPlanes() *Mesh {
	m, _ := LaserBeam(1)
	return m
}

// LaserBeam is LaserPlanes with each plane cut into segments pieces along Z,
// so a long beam can be depth sorted piece by piece.
func LaserBeam(segments int) (*Mesh, error) {
	if segments <= 0 {
		return nil, ErrInvalidSegments
	}
	a := plane(segments)
	b := plane(segments)
	rot := mgl32.Rotate3DZ(mgl32.DegToRad(90))
	for i := range b.Positions {
		b.Positions[i] = rot.Mul3x1(b.Positions[i])
		b.Normals[i] = rot.Mul3x1(b.Normals[i])
	}
	out := &Mesh{
		Positions: append(a.Positions, b.Positions...),
		Normals:   append(a.Normals, b.Normals...),
		TexCoords: append(a.TexCoords, b.TexCoords...),
		Indices:   a.Indices,
	}
	offset := uint16(len(a.Positions))
	for _, ndx := range b.Indices {
		out.Indices = append(out.Indices, ndx+offset)
	}
	return out, nil
}
