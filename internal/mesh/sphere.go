package mesh

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidSubdivisions is returned when a sphere is asked for with a
// non-positive number of subdivisions.
var ErrInvalidSubdivisions = errors.New("mesh: subdivisionsAxis and subdivisionsHeight must be > 0")

// Range limits a sphere to a latitude and longitude window, in radians.
// The zero value is the whole sphere.
type Range struct {
	StartLatitude, EndLatitude   float64
	StartLongitude, EndLongitude float64
}

func (r Range) withDefaults() Range {
	if r.EndLatitude == 0 {
		r.EndLatitude = math.Pi
	}
	if r.EndLongitude == 0 {
		r.EndLongitude = 2 * math.Pi
	}
	return r
}

// Sphere builds a UV sphere.
func Sphere(radius float32, subdivisionsAxis, subdivisionsHeight int) (*Mesh, error) {
	return SphereRange(radius, subdivisionsAxis, subdivisionsHeight, Range{})
}

// MustSphere is like Sphere but panics on invalid subdivisions. It is meant
// for spheres built from constants.
func MustSphere(radius float32, subdivisionsAxis, subdivisionsHeight int) *Mesh {
	m, err := Sphere(radius, subdivisionsAxis, subdivisionsHeight)
	if err != nil {
		panic(err)
	}
	return m
}

// SphereRange builds a UV sphere restricted to rng. Every ring holds
// subdivisionsAxis+1 vertices; the last one closes the seam.
func SphereRange(radius float32, subdivisionsAxis, subdivisionsHeight int, rng Range) (*Mesh, error) {
	if subdivisionsAxis <= 0 || subdivisionsHeight <= 0 {
		return nil, ErrInvalidSubdivisions
	}
	rng = rng.withDefaults()
	latRange := rng.EndLatitude - rng.StartLatitude
	longRange := rng.EndLongitude - rng.StartLongitude

	numVertices := (subdivisionsAxis + 1) * (subdivisionsHeight + 1)
	m := &Mesh{
		Positions: make([]mgl32.Vec3, 0, numVertices),
		Normals:   make([]mgl32.Vec3, 0, numVertices),
		TexCoords: make([]mgl32.Vec2, 0, numVertices),
		Indices:   make([]uint16, 0, subdivisionsAxis*subdivisionsHeight*6),
	}

	for y := 0; y <= subdivisionsHeight; y++ {
		for x := 0; x <= subdivisionsAxis; x++ {
			u := float64(x) / float64(subdivisionsAxis)
			v := float64(y) / float64(subdivisionsHeight)
			theta := rng.StartLongitude + longRange*u
			phi := rng.StartLatitude + latRange*v
			sinTheta, cosTheta := math.Sincos(theta)
			sinPhi, cosPhi := math.Sincos(phi)
			n := mgl32.Vec3{
				float32(cosTheta * sinPhi),
				float32(cosPhi),
				float32(sinTheta * sinPhi),
			}
			m.Positions = append(m.Positions, n.Mul(radius))
			m.Normals = append(m.Normals, n)
			m.TexCoords = append(m.TexCoords, mgl32.Vec2{float32(1 - u), float32(v)})
		}
	}

	around := uint16(subdivisionsAxis + 1)
	for x := uint16(0); x < uint16(subdivisionsAxis); x++ {
		for y := uint16(0); y < uint16(subdivisionsHeight); y++ {
			m.Indices = append(m.Indices,
				(y+0)*around+x,
				(y+0)*around+x+1,
				(y+1)*around+x)
			m.Indices = append(m.Indices,
				(y+1)*around+x,
				(y+0)*around+x+1,
				(y+1)*around+x+1)
		}
	}
	return m, nil
}

// AsLines reads a triangle mesh's index list as GL_LINES: each consecutive
// pair of indices becomes one edge.
func AsLines(m *Mesh) *LineMesh {
	l := &LineMesh{
		Positions: m.Positions,
		Edges:     make([][2]uint16, 0, len(m.Indices)/2),
	}
	for i := 0; i+1 < len(m.Indices); i += 2 {
		l.Edges = append(l.Edges, [2]uint16{m.Indices[i], m.Indices[i+1]})
	}
	return l
}
