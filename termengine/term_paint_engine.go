// Package termengine previews atlas quads on a terminal. Every cell shows
// two vertically stacked pixels using the upper half block glyph.
package termengine

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/rmcsoft/atlas"
)

const upperHalfBlock = '▀'

// PaintEngine composes quads in memory and shows them on a tcell screen.
type PaintEngine struct {
	screen   tcell.Screen
	composer *atlas.SoftwarePaintEngine
}

// New creates an engine sized to the current screen size.
func New(screen tcell.Screen) *PaintEngine {
	cols, rows := screen.Size()
	return &PaintEngine{
		screen:   screen,
		composer: atlas.NewSoftwarePaintEngine(cols, rows*2),
	}
}

// Resize matches the canvas to the screen size. Call it after a resize event.
func (p *PaintEngine) Resize() {
	cols, rows := p.screen.Size()
	p.composer = atlas.NewSoftwarePaintEngine(cols, rows*2)
}

// Image returns the composed canvas.
func (p *PaintEngine) Image() *image.RGBA {
	return p.composer.Image()
}

// Begin starts a frame.
func (p *PaintEngine) Begin() error {
	return p.composer.Begin()
}

// Clear clears rect, given in pixels.
func (p *PaintEngine) Clear(rect image.Rectangle) error {
	return p.composer.Clear(rect)
}

// DrawQuad draws quad into the frame being composed.
func (p *PaintEngine) DrawQuad(quad atlas.Quad) error {
	return p.composer.DrawQuad(quad)
}

// End copies the frame to the screen and shows it.
func (p *PaintEngine) End() error {
	if err := p.composer.End(); err != nil {
		return err
	}

	canvas := p.composer.Image()
	bounds := canvas.Bounds()
	for y := bounds.Min.Y; y+1 < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := tcell.StyleDefault.
				Foreground(toTcell(canvas.RGBAAt(x, y))).
				Background(toTcell(canvas.RGBAAt(x, y+1)))
			p.screen.SetContent(x, y/2, upperHalfBlock, nil, style)
		}
	}
	p.screen.Show()
	return nil
}

// toTcell drops alpha; the canvas is premultiplied, so transparent pixels
// come out black.
func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
