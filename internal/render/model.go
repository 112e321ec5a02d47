package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"sharks/internal/asset"
	"sharks/internal/pipeline"
)

// Model is a loaded shark ready to draw: its geometry plus textures on the
// GPU.
type Model struct {
	Geometry *pipeline.Geometry
	Diffuse  *ebiten.Image
}

// NewModel uploads a loaded model. A model without a diffuse texture is
// drawn white.
func NewModel(m *asset.Model) (*Model, error) {
	g, err := pipeline.NewGeometry(m)
	if err != nil {
		return nil, fmt.Errorf("model geometry: %w", err)
	}
	out := &Model{Geometry: g}
	if img, ok := m.Textures["diffuse"]; ok && img != nil {
		out.Diffuse = ebiten.NewImageFromImage(img)
	} else {
		out.Diffuse = whiteImage()
	}
	return out, nil
}

// Dispose releases the model's textures.
func (m *Model) Dispose() {
	if m.Diffuse != nil {
		m.Diffuse.Deallocate()
	}
}

func whiteImage() *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{0xff, 0xff, 0xff, 0xff})
	return ebiten.NewImageFromImage(img)
}
