package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereCounts(t *testing.T) {
	for _, tc := range []struct{ axis, height int }{
		{1, 1}, {6, 6}, {3, 8}, {24, 12},
	} {
		m, err := Sphere(1, tc.axis, tc.height)
		require.NoError(t, err)
		assert.Equal(t, (tc.axis+1)*(tc.height+1), m.NumVertices(), "%dx%d", tc.axis, tc.height)
		assert.Len(t, m.Indices, tc.axis*tc.height*2*3, "%dx%d", tc.axis, tc.height)
		assert.Len(t, m.Normals, m.NumVertices())
		assert.Len(t, m.TexCoords, m.NumVertices())
		for _, ndx := range m.Indices {
			assert.Less(t, int(ndx), m.NumVertices())
		}
	}
}

func TestSphereVerticesOnSurface(t *testing.T) {
	const radius = 2.5
	m, err := Sphere(radius, 12, 7)
	require.NoError(t, err)
	for i, p := range m.Positions {
		assert.InDelta(t, radius, p.Len(), 1e-5, "vertex %d", i)
	}
}

func TestSphereRangeHemisphere(t *testing.T) {
	m, err := SphereRange(1, 8, 4, Range{EndLatitude: math.Pi / 2})
	require.NoError(t, err)
	for _, p := range m.Positions {
		assert.GreaterOrEqual(t, p.Y(), float32(-1e-6))
	}
}

func TestSphereRejectsBadSubdivisions(t *testing.T) {
	for _, tc := range [][2]int{{0, 1}, {1, 0}, {-3, 4}, {0, 0}} {
		_, err := Sphere(1, tc[0], tc[1])
		assert.ErrorIs(t, err, ErrInvalidSubdivisions)
	}
	assert.Panics(t, func() { MustSphere(1, 0, 6) })
}

func TestLineCube(t *testing.T) {
	l := LineCube(1)
	assert.Len(t, l.Positions, 8)
	assert.Len(t, l.Edges, 24)
	for _, e := range l.Edges {
		for _, ndx := range e {
			assert.Less(t, ndx, uint16(8))
		}
		// every edge is an actual cube edge: the corners differ on one axis.
		d := l.Positions[e[0]].Sub(l.Positions[e[1]])
		assert.InDelta(t, 1, d.Len(), 1e-6)
	}
	assert.Len(t, l.Indices(), 48)
	for _, p := range l.Positions {
		for i := 0; i < 3; i++ {
			assert.InDelta(t, 0.5, abs(p[i]), 1e-6)
		}
	}
}

func TestCube(t *testing.T) {
	m := Cube(2)
	assert.Equal(t, 24, m.NumVertices())
	assert.Equal(t, 12, m.NumTriangles())
	for i, p := range m.Positions {
		// a face's vertices all lie on the plane its normal points at.
		assert.InDelta(t, 1, p.Dot(m.Normals[i]), 1e-6)
	}
}

func TestDeindexAndFlatten(t *testing.T) {
	m := MustSphere(1, 6, 6)
	d := Deindex(m)
	assert.Equal(t, len(m.Indices), d.NumVertices())
	for i, ndx := range d.Indices {
		assert.Equal(t, uint16(i), ndx)
	}
	f := FlattenNormals(d)
	for i := 0; i < len(f.Indices); i += 3 {
		assert.Equal(t, f.Normals[i], f.Normals[i+1])
		assert.Equal(t, f.Normals[i], f.Normals[i+2])
	}
}

func TestAsLines(t *testing.T) {
	m := MustSphere(1, 6, 6)
	l := AsLines(m)
	assert.Len(t, l.Edges, len(m.Indices)/2)
	assert.Equal(t, m.Indices, l.Indices())
}

func TestLaserPlanes(t *testing.T) {
	m := LaserPlanes()
	assert.Equal(t, 8, m.NumVertices())
	assert.Len(t, m.Indices, 12)
	for i, p := range m.Positions {
		assert.LessOrEqual(t, p.Z(), float32(0), "vertex %d", i)
		assert.GreaterOrEqual(t, p.Z(), float32(-1), "vertex %d", i)
	}
	// first plane is flat in Y, second flat in X.
	for _, p := range m.Positions[:4] {
		assert.InDelta(t, 0, p.Y(), 1e-6)
	}
	for _, p := range m.Positions[4:] {
		assert.InDelta(t, 0, p.X(), 1e-6)
	}
}

func TestLaserBeamSegments(t *testing.T) {
	m, err := LaserBeam(4)
	require.NoError(t, err)
	assert.Equal(t, 2*5*2, m.NumVertices())
	assert.Equal(t, 2*4*2, m.NumTriangles())
	for _, ndx := range m.Indices {
		assert.Less(t, int(ndx), m.NumVertices())
	}
	// every triangle of the first plane spans a quarter of the length.
	for i := 0; i < 4*2*3; i += 3 {
		lo, hi := float32(1), float32(-2)
		for _, ndx := range m.Indices[i : i+3] {
			z := m.Positions[ndx].Z()
			lo, hi = min(lo, z), max(hi, z)
		}
		assert.InDelta(t, 0.25, hi-lo, 1e-6)
	}

	_, err = LaserBeam(0)
	assert.ErrorIs(t, err, ErrInvalidSegments)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
