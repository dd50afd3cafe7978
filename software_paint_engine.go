package atlas

import (
	"errors"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ErrUnsupportedTexture is returned by a paint engine that cannot read the
// pixels of a texture.
var ErrUnsupportedTexture = errors.New("Unsupported texture")

// SoftwarePaintEngine composes quads into an in-memory RGBA image.
type SoftwarePaintEngine struct {
	canvas       *image.RGBA
	background   color.Color
	interpolator draw.Interpolator
	isActive     bool
}

// NewSoftwarePaintEngine creates a software engine with a width x height canvas.
func NewSoftwarePaintEngine(width int, height int) *SoftwarePaintEngine {
	return &SoftwarePaintEngine{
		canvas:       image.NewRGBA(image.Rect(0, 0, width, height)),
		background:   color.Transparent,
		interpolator: draw.NearestNeighbor,
	}
}

// Image returns the canvas. It is valid until the next Begin.
func (p *SoftwarePaintEngine) Image() *image.RGBA {
	return p.canvas
}

// SetBackground sets the color used by Begin and Clear.
func (p *SoftwarePaintEngine) SetBackground(c color.Color) {
	p.background = c
}

// SetInterpolator sets the sampler used for scaled or rotated quads.
func (p *SoftwarePaintEngine) SetInterpolator(interpolator draw.Interpolator) {
	p.interpolator = interpolator
}

// Begin clears the canvas.
func (p *SoftwarePaintEngine) Begin() error {
	if p.isActive {
		return errors.New("SoftwarePaintEngine is already active")
	}
	p.isActive = true
	draw.Draw(p.canvas, p.canvas.Bounds(), image.NewUniform(p.background), image.Point{}, draw.Src)
	return nil
}

// Clear fills rect with the background color.
func (p *SoftwarePaintEngine) Clear(rect image.Rectangle) error {
	if !p.isActive {
		return errors.New("SoftwarePaintEngine is not active")
	}
	draw.Draw(p.canvas, rect, image.NewUniform(p.background), image.Point{}, draw.Src)
	return nil
}

// DrawQuad draws quad over the canvas.
func (p *SoftwarePaintEngine) DrawQuad(quad Quad) error {
	if !p.isActive {
		return errors.New("SoftwarePaintEngine is not active")
	}
	src, ok := quad.Texture.(image.Image)
	if !ok {
		return ErrUnsupportedTexture
	}
	if quad.Color != White {
		src = &tintedImage{Image: src, tint: quad.Color}
	}

	p.interpolator.Transform(p.canvas, QuadTransform(quad), src, quad.Source, draw.Over, nil)
	return nil
}

// End finishes the frame.
func (p *SoftwarePaintEngine) End() error {
	if !p.isActive {
		return errors.New("SoftwarePaintEngine is not active")
	}
	p.isActive = false
	return nil
}

// QuadTransform returns the affine matrix mapping texture coordinates of
// quad.Source to destination coordinates.
//
// A source point s is first made local to the source rectangle and mirrored
// inside it, then moved so that the origin is at zero, scaled, rotated and
// finally translated to quad.Position.
func QuadTransform(quad Quad) f64.Aff3 {
	w := float64(quad.Source.Dx())
	h := float64(quad.Source.Dy())

	fx, fy := 1.0, 1.0
	var ox, oy float64
	if quad.Flip.Horizontal() {
		fx, ox = -1, w
	}
	if quad.Flip.Vertical() {
		fy, oy = -1, h
	}

	sin, cos := math.Sincos(quad.Rotation)
	sx, sy := quad.Scale.X, quad.Scale.Y

	// Translation part before rotation and scaling.
	vx := ox - quad.Origin.X - fx*float64(quad.Source.Min.X)
	vy := oy - quad.Origin.Y - fy*float64(quad.Source.Min.Y)

	return f64.Aff3{
		cos * sx * fx, -sin * sy * fy, quad.Position.X + cos*sx*vx - sin*sy*vy,
		sin * sx * fx, cos * sy * fy, quad.Position.Y + sin*sx*vx + cos*sy*vy,
	}
}

// tintedImage multiplies every pixel of Image by tint.
type tintedImage struct {
	image.Image
	tint color.NRGBA
}

func (t *tintedImage) ColorModel() color.Model {
	return color.NRGBAModel
}

func (t *tintedImage) At(x, y int) color.Color {
	c := color.NRGBAModel.Convert(t.Image.At(x, y)).(color.NRGBA)
	return color.NRGBA{
		R: mul8(c.R, t.tint.R),
		G: mul8(c.G, t.tint.G),
		B: mul8(c.B, t.tint.B),
		A: mul8(c.A, t.tint.A),
	}
}

func mul8(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}
