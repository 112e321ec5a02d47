package pipeline

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"sharks/internal/prng"
)

// FishParams are the per-frame inputs of the fish program.
type FishParams struct {
	Time       float32
	Length     float32
	WaveLength float32
	BendAmount float32
	Scale      float32
}

// NewFishParams returns the fish program inputs at time t.
func NewFishParams(t float64) FishParams {
	return FishParams{
		Time:       float32(t * 10),
		Length:     10,
		WaveLength: -1,
		BendAmount: 0.5,
		Scale:      0.04,
	}
}

// Bend displaces p sideways along a wave travelling down the body. The head
// (z > 0) bends half as much per unit as the tail.
func (f FishParams) Bend(p mgl32.Vec3, time float32) mgl32.Vec3 {
	var mult float32
	if p.Z() > 0 {
		mult = p.Z() / f.Length
	} else {
		mult = -p.Z() / f.Length * 2
	}
	s := float32(math.Sin(float64(time + mult*f.WaveLength)))
	return mgl32.Vec3{p.X() + mult*mult*s*f.BendAmount, p.Y(), p.Z()}
}

// Orient returns the transform placing local +Z along pos - next with its
// origin at pos. It reports false when pos and next coincide.
func Orient(pos, next mgl32.Vec3) (mgl32.Mat4, bool) {
	d := pos.Sub(next)
	if d.Len() == 0 {
		return mgl32.Ident4(), false
	}
	vz := d.Normalize()
	vx := up.Cross(vz)
	if vx.Len() == 0 {
		return mgl32.Ident4(), false
	}
	vx = vx.Normalize()
	vy := vz.Cross(vx)
	return mgl32.Mat4FromCols(vx.Vec4(0), vy.Vec4(0), vz.Vec4(0), pos.Vec4(1)), true
}

// Instance is one shark: where it is, where it heads and its wave phase.
type Instance struct {
	Pos  mgl32.Vec3
	Next mgl32.Vec3
	Time float32
}

// World returns the instance's model matrix for a body scale. It reports
// false for a degenerate heading.
func (in Instance) World(scale float32) (mgl32.Mat4, bool) {
	o, ok := Orient(in.Pos, in.Next)
	if !ok {
		return o, false
	}
	return o.Mul4(mgl32.Scale3D(scale, scale, scale)), true
}

// ShapeInstances places one shark on every vertex of a shape, heading to the
// following vertex.
func ShapeInstances(positions []mgl32.Vec3, rot mgl32.Mat4, time float32) []Instance {
	n := len(positions)
	out := make([]Instance, 0, n)
	for i := range positions {
		out = append(out, Instance{
			Pos:  mgl32.TransformCoordinate(positions[i], rot),
			Next: mgl32.TransformCoordinate(positions[(i+1)%n], rot),
			Time: time,
		})
	}
	return out
}

// NumSwimmers is the size of the swimming school.
const NumSwimmers = 20

// SwimInstances lays out the swimming school at time t: one row per shark,
// each crossing the screen left or right. rng must be freshly reset so that
// every frame draws the same directions and phases.
func SwimInstances(rng *prng.LCG, t float64) []Instance {
	out := make([]Instance, 0, NumSwimmers)
	for s := 0; s < NumSwimmers; s++ {
		u := float64(s) / (NumSwimmers - 1)
		y := u*2 - 1
		const z = 2
		dir := -1.0
		if rng.Float64() > 0.5 {
			dir = 1
		}
		clock := math.Mod(rng.Float64()+t*0.1, 1)*2 - 1
		x := clock * 8 * dir
		out = append(out, Instance{
			Pos:  mgl32.Vec3{float32(x), float32(y), z},
			Next: mgl32.Vec3{float32(x - dir), float32(y), z},
			Time: float32(t*10) + float32(s),
		})
	}
	return out
}
