// Package atlas draws named sub-rectangles of shared textures through a
// sprite batch.
package atlas

import (
	"fmt"
	"image"
	"image/color"
)

// TextureRegion is a named window into a shared texture.
//
// The region does not own Texture and does not check that Source lies
// within it; that is up to whoever builds the region.
type TextureRegion struct {
	Name    string
	Texture Texture
	Source  image.Rectangle
}

// DrawOptions groups the optional DrawEx parameters.
type DrawOptions struct {
	Color      color.NRGBA
	Rotation   float64
	Origin     Vector
	Scale      Vector
	Flip       FlipMode
	LayerDepth float64
}

// DefaultDrawOptions returns the parameters used by TextureRegion.Draw.
func DefaultDrawOptions() DrawOptions {
	return DrawOptions{
		Color: White,
		Scale: Vec(1, 1),
	}
}

// NewTextureRegion creates a region covering (x, y, width, height) of texture.
func NewTextureRegion(name string, texture Texture, x, y, width, height int) *TextureRegion {
	return &TextureRegion{
		Name:    name,
		Texture: texture,
		Source:  image.Rect(x, y, x+width, y+height),
	}
}

// Width returns the width of the source rectangle.
func (r *TextureRegion) Width() int {
	return r.Source.Dx()
}

// Height returns the height of the source rectangle.
func (r *TextureRegion) Height() int {
	return r.Source.Dy()
}

// Bounds returns the source rectangle.
func (r *TextureRegion) Bounds() image.Rectangle {
	return r.Source
}

// Size returns the width and height of the source rectangle.
func (r *TextureRegion) Size() image.Point {
	return r.Source.Size()
}

// UV returns the source rectangle in normalized texture coordinates.
func (r *TextureRegion) UV() (u0, v0, u1, v1 float64) {
	tb := r.Texture.Bounds()
	w := float64(tb.Dx())
	h := float64(tb.Dy())
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}
	return float64(r.Source.Min.X-tb.Min.X) / w,
		float64(r.Source.Min.Y-tb.Min.Y) / h,
		float64(r.Source.Max.X-tb.Min.X) / w,
		float64(r.Source.Max.Y-tb.Min.Y) / h
}

func (r *TextureRegion) String() string {
	return fmt.Sprintf("%s%v", r.Name, r.Source)
}

// Draw draws the region at position without rotation, scaling or flipping.
func (r *TextureRegion) Draw(batch Batch, position Vector, color color.NRGBA) error {
	return r.DrawEx(batch, position, color, 0, Vector{}, Vec(1, 1), FlipNone, 0)
}

// DrawScaled draws the region with the same scale on both axes.
func (r *TextureRegion) DrawScaled(batch Batch, position Vector, color color.NRGBA,
	rotation float64, origin Vector, scale float64, flip FlipMode, layerDepth float64) error {
	return r.DrawEx(batch, position, color, rotation, origin, Vec(scale, scale), flip, layerDepth)
}

// DrawEx submits the region to batch. The batch's error is returned as is.
func (r *TextureRegion) DrawEx(batch Batch, position Vector, color color.NRGBA,
	rotation float64, origin Vector, scale Vector, flip FlipMode, layerDepth float64) error {
	return batch.DrawQuad(r.Texture, position, r.Source, color, rotation, origin, scale, flip, layerDepth)
}

// DrawWith is DrawEx with the parameters taken from opts.
func (r *TextureRegion) DrawWith(batch Batch, position Vector, opts DrawOptions) error {
	return r.DrawEx(batch, position, opts.Color, opts.Rotation, opts.Origin, opts.Scale, opts.Flip, opts.LayerDepth)
}
