package pipeline

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharks/internal/asset"
	"sharks/internal/prng"
	"sharks/internal/scene"
)

const eps = 1e-5

func TestPassTable(t *testing.T) {
	passes := Passes()
	require.Len(t, passes, 4)

	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"caustics", "shape", "fish", "lasers"}, names)

	assert.False(t, CausticsPass.DepthTest)
	assert.Equal(t, BlendOff, CausticsPass.Blend)
	assert.True(t, ShapePass.DepthTest)
	assert.Equal(t, CullNone, ShapePass.Cull)
	assert.Equal(t, CullBack, FishPass.Cull)
	assert.Equal(t, BlendAdditive, LaserPass.Blend)
	assert.False(t, LaserPass.DepthWrite)

	assert.True(t, ShapePass.Sorted())
	assert.True(t, FishPass.Sorted())
	assert.True(t, LaserPass.Sorted())
	assert.False(t, CausticsPass.Sorted())

	assert.True(t, FishPass.Culls())
	assert.False(t, ShapePass.Culls())
	assert.False(t, LaserPass.Culls())

	assert.Equal(t, ShapePass, MaterialFlat.Pass())
	assert.Equal(t, ShapePass, MaterialLine.Pass())
	assert.Equal(t, FishPass, MaterialFish.Pass())
	assert.Equal(t, LaserPass, MaterialLaser.Pass())
}

func TestHSV(t *testing.T) {
	tests := []struct {
		h    float64
		want mgl32.Vec3
	}{
		{0, mgl32.Vec3{1, 0, 0}},
		{120, mgl32.Vec3{0, 1, 0}},
		{240, mgl32.Vec3{0, 0, 1}},
		{60, mgl32.Vec3{1, 1, 0}},
		{360, mgl32.Vec3{1, 0, 0}},
		{-120, mgl32.Vec3{0, 0, 1}},
	}
	for _, tt := range tests {
		got := HSV(tt.h, 1, 1)
		assert.True(t, got.ApproxEqualThreshold(tt.want, eps), "h=%v got %v", tt.h, got)
	}
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, HSV(200, 0, 0.5))
	assert.True(t, ShapeColor(1.2).ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, eps))
}

func TestCamera(t *testing.T) {
	cam := NewCamera(800, 600)

	origin := cam.ViewProjection.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := origin.Vec3().Mul(1 / origin.W())
	assert.InDelta(t, 0, ndc.X(), eps)
	assert.InDelta(t, 0, ndc.Y(), eps)

	eyeWorld := cam.World.Col(3).Vec3()
	assert.True(t, eyeWorld.ApproxEqualThreshold(mgl32.Vec3{0, 0, 4}, eps))

	sx, sy := cam.ScreenAxes()
	assert.True(t, sx.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, eps))
	assert.True(t, sy.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, eps))
}

func TestFishBend(t *testing.T) {
	f := NewFishParams(1.3)

	assert.Equal(t, mgl32.Vec3{0.2, 1, 0}, f.Bend(mgl32.Vec3{0.2, 1, 0}, 4))

	// The tail bends twice as hard per unit of length as the head.
	head := f.Bend(mgl32.Vec3{0, 0, 5}, 0)
	tail := f.Bend(mgl32.Vec3{0, 0, -2.5}, 0)
	assert.InDelta(t, 0.25*math.Sin(-0.5)*0.5, head.X(), eps)
	assert.InDelta(t, 0.25*math.Sin(-0.5)*0.5, tail.X(), eps)
	assert.Equal(t, float32(5), head.Z())
}

func TestOrient(t *testing.T) {
	pos := mgl32.Vec3{1, 2, 3}
	m, ok := Orient(pos, mgl32.Vec3{0, 2, 3})
	require.True(t, ok)

	assert.True(t, m.Col(2).Vec3().ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, eps))
	assert.True(t, m.Col(1).Vec3().ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, eps))
	assert.True(t, m.Col(3).Vec3().ApproxEqualThreshold(pos, eps))
	assert.InDelta(t, 1, m.Det(), eps)

	_, ok = Orient(pos, pos)
	assert.False(t, ok)
	_, ok = Orient(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 0})
	assert.False(t, ok)
}

func TestSwimInstancesRepeatPerFrame(t *testing.T) {
	rng := prng.New(0)
	first := SwimInstances(rng, 7.25)
	rng.Reset()
	second := SwimInstances(rng, 7.25)
	assert.Equal(t, first, second)

	require.Len(t, first, NumSwimmers)
	assert.InDelta(t, -1, first[0].Pos.Y(), eps)
	assert.InDelta(t, 1, first[NumSwimmers-1].Pos.Y(), eps)
	for s, in := range first {
		assert.Equal(t, float32(2), in.Pos.Z())
		assert.InDelta(t, 1, math.Abs(float64(in.Pos.X()-in.Next.X())), eps)
		assert.LessOrEqual(t, math.Abs(float64(in.Pos.X())), 8.0)
		assert.InDelta(t, 72.5+float64(s), in.Time, 1e-3)
	}
}

func TestShapeInstancesChain(t *testing.T) {
	positions := []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	ins := ShapeInstances(positions, mgl32.Ident4(), 3)
	require.Len(t, ins, 3)
	assert.Equal(t, positions[1], ins[0].Next)
	assert.Equal(t, positions[0], ins[2].Next)
	assert.Equal(t, float32(3), ins[1].Time)
}

func TestLaserColorCycles(t *testing.T) {
	seen := map[float32]bool{}
	for n := 0; n < 6; n++ {
		c := LaserColor(n, 0)
		seen[c.X()] = true
		assert.InDelta(t, c.X()*0.2, c.Y(), eps)
		assert.Equal(t, float32(1), c.W())
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, LaserColor(4, 0), LaserColor(0, 1))
	assert.Equal(t, mgl32.Vec4{1, 0.2, 0.2, 1}, LaserColor(2, 0))
}

func TestLaserImage(t *testing.T) {
	img := LaserImage()
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
	assert.Equal(t, uint8(255), img.RGBAAt(3, 0).R)
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).G)
	assert.Equal(t, uint8(255), img.RGBAAt(0, 0).A)
}

func TestShapeRotationFunkyScale(t *testing.T) {
	plain := ShapeRotation(0, false)
	assert.True(t, plain.ApproxEqualThreshold(mgl32.Ident4(), eps))

	funky := ShapeRotation(math.Pi/20, true)
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, funky)
	assert.InDelta(t, 1.5, p.Len(), 1e-4)
}

func TestClipPolygonNearPlane(t *testing.T) {
	front := Vertex{Clip: mgl32.Vec4{0, 0, 0, 1}}
	behind := Vertex{Clip: mgl32.Vec4{0, 0, -3, 1}}
	other := Vertex{Clip: mgl32.Vec4{1, 0, 0, 1}}

	out := ClipPolygon([]Vertex{front, other, behind})
	require.Len(t, out, 4)
	for _, v := range out {
		assert.GreaterOrEqual(t, v.Clip.Z()+v.Clip.W(), float32(-eps))
	}

	assert.Empty(t, ClipPolygon([]Vertex{behind, behind, behind}))
	assert.Len(t, ClipPolygon([]Vertex{front, other, front}), 3)
}

func TestProjectTriangleCulling(t *testing.T) {
	vp := Viewport{Width: 200, Height: 100}
	a := Vertex{Clip: mgl32.Vec4{-0.5, -0.5, 0, 1}}
	b := Vertex{Clip: mgl32.Vec4{0.5, -0.5, 0, 1}}
	c := Vertex{Clip: mgl32.Vec4{0, 0.5, 0, 1}}

	p, ok := vp.ProjectTriangle(a, b, c, true)
	require.True(t, ok, "counter-clockwise is front facing")
	assert.InDelta(t, 50, p.Vertices[0].X, eps)
	assert.InDelta(t, 75, p.Vertices[0].Y, eps)

	_, ok = vp.ProjectTriangle(a, c, b, true)
	assert.False(t, ok)
	_, ok = vp.ProjectTriangle(a, c, b, false)
	assert.True(t, ok)
}

func TestProjectLine(t *testing.T) {
	vp := Viewport{Width: 100, Height: 100}
	a := Vertex{Clip: mgl32.Vec4{0, 0, 0, 1}}
	b := Vertex{Clip: mgl32.Vec4{0, 0, -3, 1}}

	p0, p1, ok := vp.ProjectLine(a, b)
	require.True(t, ok)
	assert.InDelta(t, -1, p1.Z, eps)
	assert.InDelta(t, 50, p0.X, eps)

	_, _, ok = vp.ProjectLine(b, b)
	assert.False(t, ok)
}

func TestBatchSortsBackToFront(t *testing.T) {
	b := Batch{LineWidth: 1.5}
	b.Reset(Viewport{Width: 100, Height: 100})

	tri := func(z float32) (Vertex, Vertex, Vertex) {
		return Vertex{Clip: mgl32.Vec4{-0.5, -0.5, z, 1}},
			Vertex{Clip: mgl32.Vec4{0.5, -0.5, z, 1}},
			Vertex{Clip: mgl32.Vec4{0, 0.5, z, 1}}
	}
	for _, z := range []float32{-0.5, 0.5, 0} {
		v0, v1, v2 := tri(z)
		require.True(t, b.AddTriangle(MaterialFlat, mgl32.Vec4{}, v0, v1, v2))
	}
	require.True(t, b.AddLine(MaterialLine, mgl32.Vec4{0, 0, 0, 1},
		Vertex{Clip: mgl32.Vec4{-1, 0, 0, 1}}, Vertex{Clip: mgl32.Vec4{1, 0, 0, 1}}))

	b.SortBackToFront()
	prims := b.Primitives()
	require.Len(t, prims, 4)
	assert.InDelta(t, 0.5, prims[0].Depth, eps)
	assert.Equal(t, MaterialFlat, prims[1].Material)
	assert.Equal(t, MaterialLine, prims[2].Material, "lines win ties against faces")
	assert.InDelta(t, -0.5, prims[3].Depth, eps)

	quad := b.Vertices(prims[2])
	require.Len(t, quad, 4)
	assert.InDelta(t, 1.5, quad[0].Y-quad[3].Y, eps)
}

func TestFan(t *testing.T) {
	assert.Equal(t, []uint16{4, 5, 6, 4, 6, 7}, Fan(nil, 4, 4))
	assert.Empty(t, Fan(nil, 0, 2))
}

func TestNewGeometry(t *testing.T) {
	m := &asset.Model{Fields: map[string]asset.Field{
		"position": {NumComponents: 3, Type: asset.Float32Array, Data: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}},
		"texCoord": {NumComponents: 2, Type: asset.Float32Array, Data: []float64{0, 0, 1, 0, 0, 1}},
		"indices":  {NumComponents: 3, Type: asset.Uint16Array, Data: []float64{0, 1, 2}},
	}}
	g, err := NewGeometry(m)
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumTriangles())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, g.Positions[2])
	assert.Equal(t, mgl32.Vec2{1, 0}, g.TexCoords[1])

	delete(m.Fields, "indices")
	g, err = NewGeometry(m)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, g.Indices)

	m.Fields["indices"] = asset.Field{NumComponents: 3, Type: asset.Uint16Array, Data: []float64{0, 1, 9}}
	_, err = NewGeometry(m)
	assert.Error(t, err)

	_, err = NewGeometry(&asset.Model{})
	assert.ErrorIs(t, err, ErrNoPositions)
}

func TestBuildFollowsState(t *testing.T) {
	g := &Geometry{
		Positions: []mgl32.Vec3{{-1, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		TexCoords: []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		Indices:   []int{0, 1, 2},
	}
	b := NewBuilder(g)

	f := Frame{State: scene.Initial(), Elapsed: 1, Width: 320, Height: 240}
	p := b.Build(f)
	assert.Nil(t, p.Caustics)
	assert.Zero(t, p.Batch.Len())
	assert.Zero(t, p.Sharks)

	f.State.ShowWater = true
	f.State.SwimSharks = true
	f.State.ShowLasers = true
	f.Music = 9.4
	p = b.Build(f)
	require.NotNil(t, p.Caustics)
	assert.InDelta(t, 0, p.Caustics.Top, 1e-3)
	assert.Equal(t, NumSwimmers, p.Sharks)

	prims := p.Batch.Primitives()
	lasers := 0
	for i, pr := range prims {
		if i > 0 {
			assert.GreaterOrEqual(t, prims[i-1].Depth, pr.Depth)
		}
		if pr.Material == MaterialLaser {
			lasers++
		}
	}
	assert.Positive(t, lasers)
}

func TestBuildSkipsDegenerateSharks(t *testing.T) {
	b := NewBuilder(nil)
	st := scene.Initial()
	st.ShapeSharks = true
	st.ShowLasers = true
	st.DrawShape = true

	p := b.Build(Frame{State: st, Width: 100, Height: 100})
	shapes := NewShapes()
	// The sphere's pole rings repeat one point, so consecutive vertices
	// there coincide and those sharks are dropped.
	assert.Less(t, p.Sharks, len(shapes[scene.Sphere].Lines.Positions))
	assert.Positive(t, p.Sharks)

	st.Shape = scene.Cube
	p = b.Build(Frame{State: st, Width: 100, Height: 100})
	assert.Equal(t, 8, p.Sharks)
	assert.Positive(t, p.Batch.Len())
}

func TestBeamBehindShapeSortsFirst(t *testing.T) {
	b := NewBuilder(nil)
	cam := NewCamera(400, 400)
	b.batch.Reset(Viewport{Width: 400, Height: 400})

	// A beam crossing the screen well behind the solid cube.
	b.addLaser(cam.ViewProjection, Instance{Pos: mgl32.Vec3{-3, 0, -3}, Next: mgl32.Vec3{-4, 0, -3}}, LaserColor(0, 0))
	b.addShape(cam, ShapeRotation(1, false), NewShapes()[scene.Cube], 1)
	b.batch.SortBackToFront()

	lastLaser, firstFace := -1, -1
	for i, pr := range b.batch.Primitives() {
		switch pr.Material {
		case MaterialLaser:
			lastLaser = i
		case MaterialFlat:
			if firstFace < 0 {
				firstFace = i
			}
		}
	}
	require.GreaterOrEqual(t, lastLaser, 0)
	require.GreaterOrEqual(t, firstFace, 0)
	assert.Less(t, lastLaser, firstFace)
}

func TestBeamInFrontOfShapeSortsLast(t *testing.T) {
	b := NewBuilder(nil)
	cam := NewCamera(400, 400)
	b.batch.Reset(Viewport{Width: 400, Height: 400})

	b.addShape(cam, ShapeRotation(1, false), NewShapes()[scene.Cube], 1)
	b.addLaser(cam.ViewProjection, Instance{Pos: mgl32.Vec3{-3, 0, 2}, Next: mgl32.Vec3{-4, 0, 2}}, LaserColor(0, 0))
	b.batch.SortBackToFront()

	prims := b.batch.Primitives()
	require.NotEmpty(t, prims)
	assert.Equal(t, MaterialLaser, prims[len(prims)-1].Material)
	for _, pr := range prims {
		if pr.Material == MaterialFlat {
			assert.Greater(t, pr.Depth, prims[len(prims)-1].Depth)
		}
	}
}
