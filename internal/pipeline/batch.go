package pipeline

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Material names the program a primitive is shaded with.
type Material int

const (
	MaterialFlat Material = iota
	MaterialLine
	MaterialFish
	MaterialLaser
)

// Pass returns the raster state the material is drawn under.
func (m Material) Pass() Pass {
	switch m {
	case MaterialFish:
		return FishPass
	case MaterialLaser:
		return LaserPass
	}
	return ShapePass
}

func (m Material) String() string {
	switch m {
	case MaterialFlat:
		return "flat"
	case MaterialLine:
		return "line"
	case MaterialFish:
		return "fish"
	case MaterialLaser:
		return "laser"
	}
	return "unknown"
}

// Primitive is a convex screen-space polygon, stored as a range of the
// batch's vertex pool.
type Primitive struct {
	Material Material
	// Tint is the program's per-draw color: the line color or the laser
	// multiplier.
	Tint  mgl32.Vec4
	Start int
	Count int
	Depth float32
}

// lineDepthBias pulls lines in front of the faces they outline.
const lineDepthBias = 1e-4

// Batch accumulates the primitives of one frame.
type Batch struct {
	Viewport
	// LineWidth is the on-screen thickness of lines in pixels.
	LineWidth float32

	vertices   []ScreenVertex
	primitives []Primitive
}

// Reset empties the batch for a new frame of the given size.
func (b *Batch) Reset(vp Viewport) {
	b.Viewport = vp
	b.vertices = b.vertices[:0]
	b.primitives = b.primitives[:0]
}

// Len returns the number of primitives.
func (b *Batch) Len() int {
	return len(b.primitives)
}

// Primitives returns the primitives in their current order.
func (b *Batch) Primitives() []Primitive {
	return b.primitives
}

// Vertices returns the vertices of p.
func (b *Batch) Vertices(p Primitive) []ScreenVertex {
	return b.vertices[p.Start : p.Start+p.Count]
}

// AddTriangle clips, projects and, when visible, records one triangle.
// Back faces are dropped when the material's pass culls them.
func (b *Batch) AddTriangle(mat Material, tint mgl32.Vec4, v0, v1, v2 Vertex) bool {
	poly, ok := b.ProjectTriangle(v0, v1, v2, mat.Pass().Culls())
	if !ok {
		return false
	}
	b.primitives = append(b.primitives, Primitive{
		Material: mat,
		Tint:     tint,
		Start:    len(b.vertices),
		Count:    len(poly.Vertices),
		Depth:    poly.Depth,
	})
	b.vertices = append(b.vertices, poly.Vertices...)
	return true
}

// AddLine records a segment as a quad LineWidth pixels thick.
func (b *Batch) AddLine(mat Material, tint mgl32.Vec4, v0, v1 Vertex) bool {
	p0, p1, ok := b.ProjectLine(v0, v1)
	if !ok {
		return false
	}
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return false
	}
	w := b.LineWidth
	if w <= 0 {
		w = 1
	}
	nx, ny := -dy/l*w/2, dx/l*w/2

	quad := [4]ScreenVertex{p0, p1, p1, p0}
	quad[0].X, quad[0].Y = p0.X+nx, p0.Y+ny
	quad[1].X, quad[1].Y = p1.X+nx, p1.Y+ny
	quad[2].X, quad[2].Y = p1.X-nx, p1.Y-ny
	quad[3].X, quad[3].Y = p0.X-nx, p0.Y-ny

	b.primitives = append(b.primitives, Primitive{
		Material: mat,
		Tint:     tint,
		Start:    len(b.vertices),
		Count:    len(quad),
		Depth:    (p0.Z+p1.Z)/2 - lineDepthBias,
	})
	b.vertices = append(b.vertices, quad[:]...)
	return true
}

// SortBackToFront orders primitives from the farthest to the nearest.
// Primitives at equal depth keep their submission order.
func (b *Batch) SortBackToFront() {
	sort.SliceStable(b.primitives, func(i, j int) bool {
		return b.primitives[i].Depth > b.primitives[j].Depth
	})
}

// Fan appends the triangle-fan indices of a primitive whose first vertex
// sits at base in an output vertex buffer.
func Fan(indices []uint16, base uint16, count int) []uint16 {
	for k := 1; k+1 < count; k++ {
		indices = append(indices, base, base+uint16(k), base+uint16(k+1))
	}
	return indices
}
