package pipeline

import (
	"github.com/go-gl/mathgl/mgl32"

	"sharks/internal/mesh"
	"sharks/internal/prng"
	"sharks/internal/scene"
)

// Frame is everything that decides what one frame shows.
type Frame struct {
	State scene.State
	// Elapsed drives animation, Music the water scroll.
	Elapsed float64
	Music   float64
	Count   int
	Width   int
	Height  int
}

// Caustics are the inputs of the water pass.
type Caustics struct {
	Resolution mgl32.Vec2
	Time       float32
	Color      mgl32.Vec4
	Power      float32
	Mult       float32
	// Top is the screen Y in pixels of the water quad's upper edge.
	Top float32
}

// NewCaustics returns the water pass inputs for a surface size, time and
// clip-space Y offset.
func NewCaustics(width, height int, t, offset float64) Caustics {
	return Caustics{
		Resolution: mgl32.Vec2{float32(width), float32(height)},
		Time:       float32(t),
		Color:      mgl32.Vec4{0, 0.1, 0.3, 1},
		Power:      7,
		Mult:       30,
		Top:        float32(-offset * float64(height) / 2),
	}
}

// Plan is a frame ready to be drawn.
type Plan struct {
	Camera Camera
	// Caustics is nil while the water is hidden.
	Caustics *Caustics
	// Batch holds shape, wireframe, fish and laser primitives, back to
	// front. Lasers blend additively over whatever was drawn before them.
	Batch *Batch
	// Sharks is the number of sharks drawn.
	Sharks int
}

// Builder turns frames into plans. It owns the constant meshes and reuses
// its batches between frames, so a Plan is only valid until the next Build.
type Builder struct {
	shapes map[scene.Shape]Shapes
	fish   *Geometry
	laser  *mesh.Mesh
	rng    *prng.LCG

	batch Batch
	bent  []Vertex
}

// laserSegments is how many pieces a beam is cut into along its length.
const laserSegments = 64

// NewBuilder returns a builder drawing fish as the shark model.
func NewBuilder(fish *Geometry) *Builder {
	laser, err := mesh.LaserBeam(laserSegments)
	if err != nil {
		panic(err)
	}
	return &Builder{
		shapes: NewShapes(),
		fish:   fish,
		laser:  laser,
		rng:    prng.New(0),
		batch:  Batch{LineWidth: 1.5},
	}
}

// Build computes the plan for f.
func (b *Builder) Build(f Frame) *Plan {
	b.rng.Reset()
	cam := NewCamera(f.Width, f.Height)
	vp := Viewport{Width: float32(f.Width), Height: float32(f.Height)}
	b.batch.Reset(vp)

	p := &Plan{Camera: cam, Batch: &b.batch}
	st := f.State
	if st.ShowWater {
		c := NewCaustics(f.Width, f.Height, f.Elapsed, st.EffectiveWaterOffset(f.Music))
		p.Caustics = &c
	}

	rot := ShapeRotation(f.Elapsed, st.FunkyScale)
	shape := b.shapes[st.Shape]
	if st.DrawShape {
		b.addShape(cam, rot, shape, f.Elapsed)
	}

	params := NewFishParams(f.Elapsed)
	var sharks []Instance
	if st.ShapeSharks {
		sharks = append(sharks, ShapeInstances(shape.Lines.Positions, rot, params.Time)...)
	}
	if st.SwimSharks {
		sharks = append(sharks, SwimInstances(b.rng, f.Elapsed)...)
	}

	ndx := 0
	for _, in := range sharks {
		world, ok := in.World(params.Scale)
		if !ok {
			continue
		}
		b.addFish(cam.ViewProjection.Mul4(world), params, in.Time)
		if st.ShowLasers {
			b.addLaser(cam.ViewProjection, in, LaserColor(f.Count, ndx))
		}
		ndx++
	}
	p.Sharks = ndx

	b.batch.SortBackToFront()
	return p
}

func (b *Builder) addShape(cam Camera, rot mgl32.Mat4, shape Shapes, t float64) {
	m := ShapeMatrix(cam.ViewProjection, rot)
	base := ShapeColor(t)
	solid := shape.Solid
	vert := func(i uint16) Vertex {
		return Vertex{
			Clip:  Transform(m, solid.Positions[i]),
			Color: FlatShade(m, solid.Normals[i], base),
		}
	}
	for i := 0; i+2 < len(solid.Indices); i += 3 {
		b.batch.AddTriangle(MaterialFlat, mgl32.Vec4{},
			vert(solid.Indices[i]), vert(solid.Indices[i+1]), vert(solid.Indices[i+2]))
	}

	black := mgl32.Vec4{0, 0, 0, 1}
	lines := shape.Lines
	for _, wm := range WireMatrices(cam, rot) {
		for _, e := range lines.Edges {
			b.batch.AddLine(MaterialLine, black,
				Vertex{Clip: Transform(wm, lines.Positions[e[0]])},
				Vertex{Clip: Transform(wm, lines.Positions[e[1]])})
		}
	}
}

func (b *Builder) addFish(m mgl32.Mat4, params FishParams, time float32) {
	g := b.fish
	if g == nil {
		return
	}
	b.bent = b.bent[:0]
	white := mgl32.Vec4{1, 1, 1, 1}
	for i, pos := range g.Positions {
		v := Vertex{Clip: Transform(m, params.Bend(pos, time)), Color: white}
		if g.TexCoords != nil {
			v.UV = g.TexCoords[i]
		}
		b.bent = append(b.bent, v)
	}
	for i := 0; i+2 < len(g.Indices); i += 3 {
		b.batch.AddTriangle(MaterialFish, mgl32.Vec4{},
			b.bent[g.Indices[i]], b.bent[g.Indices[i+1]], b.bent[g.Indices[i+2]])
	}
}

func (b *Builder) addLaser(vp mgl32.Mat4, in Instance, tint mgl32.Vec4) {
	m, ok := LaserMatrix(vp, in.Pos, in.Next)
	if !ok {
		return
	}
	l := b.laser
	vert := func(i uint16) Vertex {
		return Vertex{Clip: Transform(m, l.Positions[i]), UV: l.TexCoords[i], Color: mgl32.Vec4{1, 1, 1, 1}}
	}
	for i := 0; i+2 < len(l.Indices); i += 3 {
		b.batch.AddTriangle(MaterialLaser, tint,
			vert(l.Indices[i]), vert(l.Indices[i+1]), vert(l.Indices[i+2]))
	}
}
