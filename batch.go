package atlas

import (
	"image"
	"image/color"
)

// White is the neutral color mask.
var White = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// Batch accepts textured quads for drawing.
type Batch interface {
	// DrawQuad draws the source rectangle of texture at position. The origin
	// is the pivot for rotation (radians), scale and position; it is given
	// in source rectangle pixels.
	DrawQuad(texture Texture, position Vector, source image.Rectangle, color color.NRGBA,
		rotation float64, origin Vector, scale Vector, flip FlipMode, layerDepth float64) error
}

// Quad holds the arguments of one DrawQuad call.
type Quad struct {
	Texture    Texture
	Position   Vector
	Source     image.Rectangle
	Color      color.NRGBA
	Rotation   float64
	Origin     Vector
	Scale      Vector
	Flip       FlipMode
	LayerDepth float64
}
