// Package sdlengine draws atlas quads in an SDL window.
package sdlengine

import (
	"errors"
	"image"
	"math"
	"sync"

	"github.com/rmcsoft/atlas"
	"github.com/veandco/go-sdl2/sdl"
)

var mutexSdlInit = sync.Mutex{}
var sdlInited = false

func initSdl() error {
	mutexSdlInit.Lock()
	defer mutexSdlInit.Unlock()

	if !sdlInited {
		if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
			return err
		}
		sdlInited = true
	}
	return nil
}

// PaintEngine renders quads with an SDL renderer. Pixmaps are uploaded to
// SDL textures on first use and kept until Close.
type PaintEngine struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	textures map[*atlas.Pixmap]*sdl.Texture
}

// New creates a window of the given size and its renderer.
func New(width int, height int) (*PaintEngine, error) {
	if err := initSdl(); err != nil {
		return nil, err
	}

	window, renderer, err := sdl.CreateWindowAndRenderer(int32(width), int32(height), 0)
	if err != nil {
		return nil, err
	}

	return &PaintEngine{
		window:   window,
		renderer: renderer,
		textures: make(map[*atlas.Pixmap]*sdl.Texture),
	}, nil
}

// Begin clears the window.
func (p *PaintEngine) Begin() error {
	if err := p.renderer.SetDrawColor(0, 0, 0, 0xFF); err != nil {
		return err
	}
	return p.renderer.Clear()
}

// Clear fills rect with black.
func (p *PaintEngine) Clear(rect image.Rectangle) error {
	sdlRect := toSDLRect(rect)
	return p.renderer.FillRect(&sdlRect)
}

// DrawQuad copies the quad source rectangle to the window.
func (p *PaintEngine) DrawQuad(quad atlas.Quad) error {
	pixmap, ok := quad.Texture.(*atlas.Pixmap)
	if !ok {
		return atlas.ErrUnsupportedTexture
	}

	texture, err := p.texture(pixmap)
	if err != nil {
		return err
	}
	if err = texture.SetColorMod(quad.Color.R, quad.Color.G, quad.Color.B); err != nil {
		return err
	}
	if err = texture.SetAlphaMod(quad.Color.A); err != nil {
		return err
	}

	dst, center, flip := quadPlacement(quad)
	src := toSDLRect(quad.Source)
	angle := quad.Rotation * 180 / math.Pi
	return p.renderer.CopyEx(texture, &src, &dst, angle, &center, flip)
}

// End presents the frame.
func (p *PaintEngine) End() error {
	p.renderer.Present()
	return nil
}

// Close destroys the uploaded textures, the renderer and the window.
func (p *PaintEngine) Close() error {
	var errs []error
	for pixmap, texture := range p.textures {
		errs = append(errs, texture.Destroy())
		delete(p.textures, pixmap)
	}
	errs = append(errs, p.renderer.Destroy(), p.window.Destroy())
	return errors.Join(errs...)
}

func (p *PaintEngine) texture(pixmap *atlas.Pixmap) (*sdl.Texture, error) {
	if texture, ok := p.textures[pixmap]; ok {
		return texture, nil
	}

	sdlPixFormat, err := pixelFormatToSDL(pixmap.PixFormat)
	if err != nil {
		return nil, err
	}

	texture, err := p.renderer.CreateTexture(sdlPixFormat, sdl.TEXTUREACCESS_STREAMING,
		int32(pixmap.Width), int32(pixmap.Height))
	if err != nil {
		return nil, err
	}

	texturePixels, textureBytePerLine, err := texture.Lock(nil)
	if err != nil {
		texture.Destroy()
		return nil, err
	}

	rowSize := pixmap.Width * atlas.GetPixelSize(pixmap.PixFormat)
	for rowNum := 0; rowNum < pixmap.Height; rowNum++ {
		pixmapOffset := rowNum * pixmap.BytePerLine
		textureOffset := rowNum * textureBytePerLine
		copy(texturePixels[textureOffset:textureOffset+rowSize], pixmap.Data[pixmapOffset:pixmapOffset+rowSize])
	}
	texture.Unlock()

	if err = texture.SetBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		texture.Destroy()
		return nil, err
	}

	p.textures[pixmap] = texture
	return texture, nil
}

// quadPlacement returns the destination rectangle, the rotation centre
// relative to it and the mirroring that make CopyEx draw quad where
// atlas.QuadTransform places it. CopyEx mirrors inside the destination
// rectangle, so a flip keeps the origin; a negative scale is turned into a
// flip around the mirrored origin.
func quadPlacement(quad atlas.Quad) (sdl.Rect, sdl.Point, sdl.RendererFlip) {
	flip := sdl.FLIP_NONE
	if quad.Flip.Horizontal() {
		flip |= sdl.FLIP_HORIZONTAL
	}
	if quad.Flip.Vertical() {
		flip |= sdl.FLIP_VERTICAL
	}

	scaleX, scaleY := quad.Scale.X, quad.Scale.Y
	originX, originY := quad.Origin.X, quad.Origin.Y
	w := float64(quad.Source.Dx())
	h := float64(quad.Source.Dy())
	if scaleX < 0 {
		flip ^= sdl.FLIP_HORIZONTAL
		scaleX = -scaleX
		originX = w - originX
	}
	if scaleY < 0 {
		flip ^= sdl.FLIP_VERTICAL
		scaleY = -scaleY
		originY = h - originY
	}

	center := sdl.Point{
		X: int32(math.Round(originX * scaleX)),
		Y: int32(math.Round(originY * scaleY)),
	}
	dst := sdl.Rect{
		X: int32(math.Round(quad.Position.X)) - center.X,
		Y: int32(math.Round(quad.Position.Y)) - center.Y,
		W: int32(math.Round(w * scaleX)),
		H: int32(math.Round(h * scaleY)),
	}
	return dst, center, flip
}

func toSDLRect(rect image.Rectangle) sdl.Rect {
	return sdl.Rect{
		X: int32(rect.Min.X),
		Y: int32(rect.Min.Y),
		W: int32(rect.Dx()),
		H: int32(rect.Dy()),
	}
}
