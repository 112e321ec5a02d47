package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"sharks/internal/pipeline"
)

// Check runs after every pass. It does nothing unless a hook is installed.
var Check = func(pass pipeline.Pass) {}

// Stats count what the last frame drew.
type Stats struct {
	Sharks     int
	Primitives int
	DrawCalls  int
}

// Renderer draws frames onto an ebiten screen.
type Renderer struct {
	programs *Programs
	model    *Model
	laser    *ebiten.Image
	builder  *pipeline.Builder

	vertices []ebiten.Vertex
	indices  []uint16
	stats    Stats
}

// New returns a renderer drawing model with the given programs.
func New(programs *Programs, model *Model) *Renderer {
	return &Renderer{
		programs: programs,
		model:    model,
		laser:    ebiten.NewImageFromImage(pipeline.LaserImage()),
		builder:  pipeline.NewBuilder(model.Geometry),
	}
}

// Stats returns the counters of the last Draw.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Draw renders f onto screen.
func (r *Renderer) Draw(screen *ebiten.Image, f pipeline.Frame) {
	b := screen.Bounds()
	f.Width, f.Height = b.Dx(), b.Dy()
	plan := r.builder.Build(f)
	r.stats = Stats{Sharks: plan.Sharks}

	screen.Fill(color.Black)

	if c := plan.Caustics; c != nil {
		r.drawCaustics(screen, c)
	}
	Check(pipeline.CausticsPass)

	r.drawBatch(screen, plan.Batch)
	Check(pipeline.ShapePass)
	Check(pipeline.FishPass)
	Check(pipeline.LaserPass)
}

// blend maps a pass's blend mode onto ebiten's.
func blend(p pipeline.Pass) ebiten.Blend {
	if p.Blend == pipeline.BlendAdditive {
		return ebiten.BlendLighter
	}
	return ebiten.BlendCopy
}

func (r *Renderer) drawCaustics(screen *ebiten.Image, c *pipeline.Caustics) {
	b := screen.Bounds()
	op := &ebiten.DrawRectShaderOptions{Blend: blend(pipeline.CausticsPass)}
	op.GeoM.Translate(0, float64(c.Top))
	op.Uniforms = map[string]any{
		"Resolution": []float32{c.Resolution.X(), c.Resolution.Y()},
		"Time":       c.Time,
		"Color":      c.Color[:],
		"Power":      c.Power,
		"Mult":       c.Mult,
	}
	screen.DrawRectShader(b.Dx(), b.Dy(), r.programs.Caustics, op)
	r.stats.DrawCalls++
}

// drawBatch issues the batch in order, merging runs of primitives that share
// a program and tint into one call.
func (r *Renderer) drawBatch(screen *ebiten.Image, batch *pipeline.Batch) {
	prims := batch.Primitives()
	r.stats.Primitives += len(prims)

	for i := 0; i < len(prims); {
		key := prims[i]
		r.vertices = r.vertices[:0]
		r.indices = r.indices[:0]
		j := i
		for ; j < len(prims); j++ {
			p := prims[j]
			if p.Material != key.Material || p.Tint != key.Tint {
				break
			}
			if len(r.vertices)+p.Count > maxVertices {
				break
			}
			r.appendPrimitive(batch, p)
		}
		r.flush(screen, key)
		i = j
	}
}

// DrawTrianglesShader takes 16 bit indices.
const maxVertices = math.MaxUint16

func (r *Renderer) appendPrimitive(batch *pipeline.Batch, p pipeline.Primitive) {
	src := r.source(p.Material)
	var w, h float32
	if src != nil {
		sb := src.Bounds()
		w, h = float32(sb.Dx()), float32(sb.Dy())
	}
	base := uint16(len(r.vertices))
	for _, v := range batch.Vertices(p) {
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   v.UV.X() * w,
			SrcY:   (1 - v.UV.Y()) * h,
			ColorR: v.Color.X(),
			ColorG: v.Color.Y(),
			ColorB: v.Color.Z(),
			ColorA: v.Color.W(),
		})
	}
	r.indices = pipeline.Fan(r.indices, base, p.Count)
}

func (r *Renderer) source(m pipeline.Material) *ebiten.Image {
	switch m {
	case pipeline.MaterialFish:
		return r.model.Diffuse
	case pipeline.MaterialLaser:
		return r.laser
	}
	return nil
}

func (r *Renderer) flush(screen *ebiten.Image, key pipeline.Primitive) {
	if len(r.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesShaderOptions{Blend: blend(key.Material.Pass())}
	op.Images[0] = r.source(key.Material)

	var shader *ebiten.Shader
	switch key.Material {
	case pipeline.MaterialFlat:
		shader = r.programs.Flat
	case pipeline.MaterialLine:
		shader = r.programs.Line
		op.Uniforms = map[string]any{"Color": vec4(key.Tint)}
	case pipeline.MaterialFish:
		shader = r.programs.Fish
	case pipeline.MaterialLaser:
		shader = r.programs.Texture
		op.Uniforms = map[string]any{
			"Mult":   vec4(key.Tint),
			"Offset": []float32{0, 0, 0, 0},
		}
	}
	screen.DrawTrianglesShader(r.vertices, r.indices, shader, op)
	r.stats.DrawCalls++
}

func vec4(v mgl32.Vec4) []float32 {
	return []float32{v[0], v[1], v[2], v[3]}
}

// Dispose releases the renderer's own textures.
func (r *Renderer) Dispose() {
	r.laser.Deallocate()
}
