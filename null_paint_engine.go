package atlas

import (
	"image"
)

type nullPaintEngine struct {
}

// NullPaintEngine returns null paint engine
func NullPaintEngine() PaintEngine {
	return nullPaintEngine{}
}

func (nullPaintEngine) Begin() error {
	return nil
}

func (nullPaintEngine) Clear(rect image.Rectangle) error {
	return nil
}

func (nullPaintEngine) DrawQuad(quad Quad) error {
	return nil
}

func (nullPaintEngine) End() error {
	return nil
}
