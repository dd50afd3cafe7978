package atlas

import (
	"image"
)

// PaintEngine is the interface definition for drawing
type PaintEngine interface {
	Begin() error
	Clear(rect image.Rectangle) error
	DrawQuad(quad Quad) error
	End() error
}
