package pipeline

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"sharks/internal/asset"
)

// ErrNoPositions is returned for a model without a usable position field.
var ErrNoPositions = errors.New("pipeline: model has no positions")

// Geometry is a model's triangle list in the form the fish pass walks.
type Geometry struct {
	Positions []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Indices   []int
}

// NumTriangles returns the number of index triples.
func (g *Geometry) NumTriangles() int {
	return len(g.Indices) / 3
}

// NewGeometry extracts positions, texture coordinates and indices from a
// loaded model. Without an index field the vertices are drawn in order.
func NewGeometry(m *asset.Model) (*Geometry, error) {
	pf, ok := m.Field("position")
	if !ok || pf.NumComponents < 3 {
		return nil, ErrNoPositions
	}
	g := &Geometry{Positions: make([]mgl32.Vec3, pf.Len())}
	data := pf.Float32s()
	for i := range g.Positions {
		o := i * pf.NumComponents
		g.Positions[i] = mgl32.Vec3{data[o], data[o+1], data[o+2]}
	}

	if tf, ok := m.Field("texCoord", "texcoord"); ok && tf.NumComponents >= 2 {
		if tf.Len() != len(g.Positions) {
			return nil, fmt.Errorf("pipeline: %d texture coordinates for %d positions", tf.Len(), len(g.Positions))
		}
		g.TexCoords = make([]mgl32.Vec2, tf.Len())
		data := tf.Float32s()
		for i := range g.TexCoords {
			o := i * tf.NumComponents
			g.TexCoords[i] = mgl32.Vec2{data[o], data[o+1]}
		}
	}

	if xf, ok := m.Field("indices"); ok {
		g.Indices = xf.Ints()
		for _, ndx := range g.Indices {
			if ndx < 0 || ndx >= len(g.Positions) {
				return nil, fmt.Errorf("pipeline: index %d out of range [0,%d)", ndx, len(g.Positions))
			}
		}
	} else {
		g.Indices = make([]int, len(g.Positions))
		for i := range g.Indices {
			g.Indices[i] = i
		}
	}
	g.Indices = g.Indices[:len(g.Indices)/3*3]
	return g, nil
}
