// Package render draws pipeline plans with ebiten.
package render

import (
	_ "embed"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	//go:embed shaders/fish.kage
	fishSrc []byte
	//go:embed shaders/caustics.kage
	causticsSrc []byte
	//go:embed shaders/texture.kage
	textureSrc []byte
	//go:embed shaders/flat.kage
	flatSrc []byte
	//go:embed shaders/line.kage
	lineSrc []byte
)

// Programs are the compiled shaders a frame is drawn with.
type Programs struct {
	Fish     *ebiten.Shader
	Caustics *ebiten.Shader
	Texture  *ebiten.Shader
	Flat     *ebiten.Shader
	Line     *ebiten.Shader
}

// CompilePrograms compiles every shader. It fails on the first one that
// does not compile.
func CompilePrograms() (*Programs, error) {
	p := &Programs{}
	for _, s := range []struct {
		name string
		src  []byte
		dst  **ebiten.Shader
	}{
		{"fish", fishSrc, &p.Fish},
		{"caustics", causticsSrc, &p.Caustics},
		{"texture", textureSrc, &p.Texture},
		{"flat", flatSrc, &p.Flat},
		{"line", lineSrc, &p.Line},
	} {
		sh, err := ebiten.NewShader(s.src)
		if err != nil {
			p.Dispose()
			return nil, fmt.Errorf("compile %s shader: %w", s.name, err)
		}
		*s.dst = sh
	}
	return p, nil
}

// Dispose releases every compiled shader.
func (p *Programs) Dispose() {
	for _, sh := range []*ebiten.Shader{p.Fish, p.Caustics, p.Texture, p.Flat, p.Line} {
		if sh != nil {
			sh.Deallocate()
		}
	}
}
