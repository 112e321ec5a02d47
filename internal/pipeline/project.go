package pipeline

import "github.com/go-gl/mathgl/mgl32"

// Vertex is a clip-space vertex with the attributes the rasterizer needs.
type Vertex struct {
	Clip  mgl32.Vec4
	UV    mgl32.Vec2
	Color mgl32.Vec4
}

// ScreenVertex is a vertex after the perspective divide. X and Y are pixels
// with the origin at the top left, Z is normalized depth in [-1,1].
type ScreenVertex struct {
	X, Y, Z float32
	UV      mgl32.Vec2
	Color   mgl32.Vec4
}

// Viewport maps normalized device coordinates to pixels.
type Viewport struct {
	Width, Height float32
}

func (v Viewport) toScreen(in Vertex) ScreenVertex {
	w := in.Clip.W()
	ndc := in.Clip.Vec3().Mul(1 / w)
	return ScreenVertex{
		X:     (ndc.X() + 1) / 2 * v.Width,
		Y:     (1 - ndc.Y()) / 2 * v.Height,
		Z:     ndc.Z(),
		UV:    in.UV,
		Color: in.Color,
	}
}

func lerp(a, b Vertex, t float32) Vertex {
	return Vertex{
		Clip:  a.Clip.Add(b.Clip.Sub(a.Clip).Mul(t)),
		UV:    a.UV.Add(b.UV.Sub(a.UV).Mul(t)),
		Color: a.Color.Add(b.Color.Sub(a.Color).Mul(t)),
	}
}

// Depth planes in clip space: near is z >= -w, far is z <= w.
func nearDist(v Vertex) float32 { return v.Clip.Z() + v.Clip.W() }
func farDist(v Vertex) float32  { return v.Clip.W() - v.Clip.Z() }

func clipPlane(poly []Vertex, dist func(Vertex) float32) []Vertex {
	if len(poly) == 0 {
		return nil
	}
	out := make([]Vertex, 0, len(poly)+2)
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		da, db := dist(a), dist(b)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerp(a, b, da/(da-db)))
		}
	}
	return out
}

// ClipPolygon clips a convex polygon against the near and far planes.
func ClipPolygon(poly []Vertex) []Vertex {
	return clipPlane(clipPlane(poly, nearDist), farDist)
}

// Polygon is a projected convex polygon ready to be fanned into triangles.
type Polygon struct {
	Vertices []ScreenVertex
	// Depth is the mean normalized depth, used for back to front sorting.
	Depth float32
}

// signedArea returns twice the polygon's area in device coordinates with Y
// up; positive means counter-clockwise, the front-facing winding.
func signedArea(vs []ScreenVertex) float32 {
	var a float32
	for i := range vs {
		p, q := vs[i], vs[(i+1)%len(vs)]
		// screen Y grows downward, so flip the sign.
		a += p.X*q.Y - q.X*p.Y
	}
	return -a
}

// ProjectTriangle clips and projects one triangle. It reports false when the
// triangle is entirely clipped away, degenerate, or back facing while cull is
// set.
func (v Viewport) ProjectTriangle(a, b, c Vertex, cull bool) (Polygon, bool) {
	clipped := ClipPolygon([]Vertex{a, b, c})
	if len(clipped) < 3 {
		return Polygon{}, false
	}
	p := Polygon{Vertices: make([]ScreenVertex, len(clipped))}
	for i, cv := range clipped {
		sv := v.toScreen(cv)
		p.Vertices[i] = sv
		p.Depth += sv.Z
	}
	p.Depth /= float32(len(clipped))
	area := signedArea(p.Vertices)
	if area == 0 || (cull && area < 0) {
		return Polygon{}, false
	}
	return p, true
}

// ProjectLine clips and projects a segment.
func (v Viewport) ProjectLine(a, b Vertex) (ScreenVertex, ScreenVertex, bool) {
	for _, dist := range []func(Vertex) float32{nearDist, farDist} {
		da, db := dist(a), dist(b)
		switch {
		case da < 0 && db < 0:
			return ScreenVertex{}, ScreenVertex{}, false
		case da < 0:
			a = lerp(a, b, da/(da-db))
		case db < 0:
			b = lerp(b, a, db/(db-da))
		}
	}
	return v.toScreen(a), v.toScreen(b), true
}

// Transform returns m applied to the point p.
func Transform(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec4 {
	return m.Mul4x1(p.Vec4(1))
}
