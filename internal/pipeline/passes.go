package pipeline

// Cull selects which faces a pass discards.
type Cull int

const (
	CullNone Cull = iota
	CullBack
)

// Blend selects how a pass combines with what is already on screen.
type Blend int

const (
	// BlendOff overwrites the destination.
	BlendOff Blend = iota
	// BlendAdditive adds source to destination (ONE, ONE).
	BlendAdditive
)

// Pass is the raster state one draw pass runs under.
type Pass struct {
	Name       string
	DepthTest  bool
	DepthWrite bool
	Cull       Cull
	Blend      Blend
}

var (
	CausticsPass = Pass{Name: "caustics", DepthWrite: true}
	ShapePass    = Pass{Name: "shape", DepthTest: true, DepthWrite: true}
	FishPass     = Pass{Name: "fish", DepthTest: true, DepthWrite: true, Cull: CullBack}
	LaserPass    = Pass{Name: "lasers", DepthTest: true, Blend: BlendAdditive}
)

// Passes returns every pass in the order a frame issues them.
func Passes() []Pass {
	return []Pass{CausticsPass, ShapePass, FishPass, LaserPass}
}

// Sorted reports whether the pass takes part in the back to front batch.
// Depth testing is resolved by sorting; a pass that does not write depth
// still sorts, it only never hides what is drawn after it.
func (p Pass) Sorted() bool {
	return p.DepthTest
}

// Culls reports whether back faces are dropped.
func (p Pass) Culls() bool {
	return p.Cull == CullBack
}
