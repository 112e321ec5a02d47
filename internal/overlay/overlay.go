// Package overlay draws the demo's captions on top of the 3D scene. It is the
// sequencer's presentation surface: cues show and hide captions by id.
package overlay

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// DefaultTexts maps caption ids to what they say.
var DefaultTexts = map[string]string{
	"loading": "loading...",
	"play":    "click to play",
	"msg1":    "water",
	"msg2":    "sharks",
	"msg3":    "with lasers",
	"msg4":    "with frickin' lasers",
	"msg5":    "the end",
}

var backdrop = color.RGBA{0, 0, 0, 0x80}

// Overlay tracks which captions are visible and draws them.
type Overlay struct {
	texts   map[string]string
	visible map[string]int
	seq     int
	face    text.Face
}

// New returns an overlay with every caption hidden. A nil texts uses
// DefaultTexts.
func New(texts map[string]string) *Overlay {
	if texts == nil {
		texts = DefaultTexts
	}
	return &Overlay{
		texts:   texts,
		visible: map[string]int{},
		face:    text.NewGoXFace(basicfont.Face7x13),
	}
}

// Show makes a caption visible. Showing a visible caption keeps its place.
func (o *Overlay) Show(id string) {
	if _, ok := o.visible[id]; ok {
		return
	}
	o.seq++
	o.visible[id] = o.seq
}

// Hide hides a caption.
func (o *Overlay) Hide(id string) {
	delete(o.visible, id)
}

// Visible reports whether id is shown.
func (o *Overlay) Visible(id string) bool {
	_, ok := o.visible[id]
	return ok
}

// VisibleIDs returns the shown ids, oldest first.
func (o *Overlay) VisibleIDs() []string {
	ids := make([]string, 0, len(o.visible))
	for id := range o.visible {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return o.visible[ids[i]] < o.visible[ids[j]] })
	return ids
}

// Draw renders the visible captions centered on screen, stacked when more
// than one is up.
func (o *Overlay) Draw(screen *ebiten.Image) {
	ids := o.VisibleIDs()
	if len(ids) == 0 {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := float64(h) / 120
	if scale < 1 {
		scale = 1
	}
	lineHeight := 16 * scale
	top := float64(h)/2 - lineHeight*float64(len(ids)-1)/2

	for i, id := range ids {
		msg, ok := o.texts[id]
		if !ok {
			msg = id
		}
		tw, th := text.Measure(msg, o.face, 0)
		cy := top + float64(i)*lineHeight
		vector.DrawFilledRect(screen,
			float32(float64(w)/2-(tw/2+4)*scale), float32(cy-(th/2+2)*scale),
			float32((tw+8)*scale), float32((th+4)*scale),
			backdrop, false)

		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(w)/2, cy)
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, msg, o.face, op)
	}
}
