// Package scene holds the demo's timeline and the state it folds into.
package scene

// Shape selects the mesh the shark swarm rides on.
type Shape int

const (
	Sphere Shape = iota
	Cube
)

func (s Shape) String() string {
	switch s {
	case Sphere:
		return "sphere"
	case Cube:
		return "cube"
	}
	return "unknown"
}

// State is everything the renderer needs to know about where the demo is.
// It is a value: cues return a modified copy.
type State struct {
	ShowWater   bool
	SwimSharks  bool
	ShapeSharks bool
	ShowLasers  bool
	DrawShape   bool
	MoveWater   bool
	FunkyScale  bool
	WaterOffset float64
	Shape       Shape
}

// Initial is the state before any cue fired.
func Initial() State {
	return State{
		MoveWater:   true,
		WaterOffset: -1,
		Shape:       Sphere,
	}
}

// Water scroll window: the caustics slide in between these two music times.
const (
	waterStart = 3.50
	waterEnd   = 9.40
)

// EffectiveWaterOffset returns the clip-space Y offset of the caustics quad.
// While the water is still moving it is derived from the music clock, going
// from -2 (off screen) at waterStart to 0 at waterEnd.
func (s State) EffectiveWaterOffset(musicTime float64) float64 {
	if !s.MoveWater {
		return s.WaterOffset
	}
	return (-1 + (musicTime-waterStart)/(waterEnd-waterStart)) * 2
}
