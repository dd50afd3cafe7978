package atlas

import (
	"errors"
	"image"
	"image/color"
	"sync"
)

// recordingBatch records every DrawQuad call.
type recordingBatch struct {
	quads []Quad
	err   error
}

func (b *recordingBatch) DrawQuad(texture Texture, position Vector, source image.Rectangle, color color.NRGBA,
	rotation float64, origin Vector, scale Vector, flip FlipMode, layerDepth float64) error {
	b.quads = append(b.quads, Quad{texture, position, source, color, rotation, origin, scale, flip, layerDepth})
	return b.err
}

// recordingPaintEngine records the calls it receives. It is safe for
// concurrent use so animator tests can read it while frames are drawn.
type recordingPaintEngine struct {
	mutex   sync.Mutex
	calls   []string
	quads   []Quad
	frames  int
	drawErr error
}

func (p *recordingPaintEngine) Begin() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.calls = append(p.calls, "begin")
	return nil
}

func (p *recordingPaintEngine) Clear(rect image.Rectangle) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.calls = append(p.calls, "clear")
	return nil
}

func (p *recordingPaintEngine) DrawQuad(quad Quad) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.calls = append(p.calls, "quad")
	p.quads = append(p.quads, quad)
	return p.drawErr
}

func (p *recordingPaintEngine) End() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.calls = append(p.calls, "end")
	p.frames++
	return nil
}

func (p *recordingPaintEngine) snapshot() ([]Quad, int) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]Quad(nil), p.quads...), p.frames
}

// sizedTexture is a Texture without pixels.
type sizedTexture struct {
	w, h int
}

func (t *sizedTexture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.w, t.h)
}

var errBatchFailed = errors.New("batch failed")

// solidPixmap returns an RGB32 pixmap filled with c.
func solidPixmap(w, h int, c color.NRGBA) *Pixmap {
	pixmap := NewPixmap(w, h, RGB32)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pixmap.Set(x, y, c)
		}
	}
	return pixmap
}

// sliceTexture is a value Texture whose type cannot be compared.
type sliceTexture struct {
	pix []byte
}

func (t sliceTexture) Bounds() image.Rectangle {
	return image.Rect(0, 0, len(t.pix), 1)
}
