// Package kmsdrm draws atlas quads straight to a KMS/DRM display through
// dumb framebuffers.
package kmsdrm

import (
	"errors"
	"fmt"
	"image"
	"os"
	"syscall"

	"github.com/rmcsoft/atlas"
	drm "github.com/rmcsoft/godrm"
	"github.com/rmcsoft/godrm/mode"
)

const framebufferCount = 2

type framebuffer struct {
	handle uint32
	id     uint32
	buf    []byte
	pitch  int
}

// PaintEngine composes a frame in memory and scans it out on End, flipping
// between two framebuffers.
type PaintEngine struct {
	card    *os.File
	modeset mode.Modeset

	pixFormat atlas.PixelFormat
	width     int
	height    int

	framebuffers        []*framebuffer
	frontFrameBufferNum int

	composer *atlas.SoftwarePaintEngine
}

// New opens /dev/dri/card<cardNum> and sets up the first available mode.
func New(cardNum int, pixFormat atlas.PixelFormat) (*PaintEngine, error) {
	card, err := drm.OpenCard(cardNum)
	if err != nil {
		return nil, err
	}

	if !drm.HasDumbBuffer(card) {
		card.Close()
		return nil, fmt.Errorf("drm device %v does not support dumb buffers", cardNum)
	}

	simpleMSet, err := mode.NewSimpleModeset(card)
	if err != nil {
		card.Close()
		return nil, err
	}

	if len(simpleMSet.Modesets) == 0 {
		card.Close()
		return nil, errors.New("Modesets is empty")
	}

	paintEngine := &PaintEngine{
		card:      card,
		modeset:   simpleMSet.Modesets[0],
		pixFormat: pixFormat,
	}
	paintEngine.width = int(paintEngine.modeset.Width)
	paintEngine.height = int(paintEngine.modeset.Height)
	paintEngine.composer = atlas.NewSoftwarePaintEngine(paintEngine.width, paintEngine.height)

	for i := 0; i < framebufferCount; i++ {
		framebuffer, err := paintEngine.createFramebuffer()
		if err != nil {
			paintEngine.Close()
			return nil, err
		}
		paintEngine.framebuffers = append(paintEngine.framebuffers, framebuffer)
	}

	atlas.Logger().WithField("component", "kmsdrm").
		WithField("card", cardNum).
		WithField("size", image.Pt(paintEngine.width, paintEngine.height)).
		Info("Display mode set")
	return paintEngine, nil
}

// GetWidth returns the display width.
func (p *PaintEngine) GetWidth() int {
	return p.width
}

// GetHeight returns the display height.
func (p *PaintEngine) GetHeight() int {
	return p.height
}

// Begin starts a frame.
func (p *PaintEngine) Begin() error {
	return p.composer.Begin()
}

// Clear clears rect to black.
func (p *PaintEngine) Clear(rect image.Rectangle) error {
	return p.composer.Clear(rect)
}

// DrawQuad draws quad into the frame being composed.
func (p *PaintEngine) DrawQuad(quad atlas.Quad) error {
	return p.composer.DrawQuad(quad)
}

// End copies the frame into the front framebuffer and shows it.
func (p *PaintEngine) End() error {
	if err := p.composer.End(); err != nil {
		return err
	}

	frontFrameBuffer := p.framebuffers[p.frontFrameBufferNum]
	copyToFramebuffer(frontFrameBuffer.buf, frontFrameBuffer.pitch, p.pixFormat, p.composer.Image())

	err := mode.SetCrtc(p.card, p.modeset.Crtc, frontFrameBuffer.id,
		0, 0, &p.modeset.Conn, 1, &p.modeset.Mode)

	p.frontFrameBufferNum = (p.frontFrameBufferNum + 1) % len(p.framebuffers)
	return err
}

// Close releases the framebuffers and the card.
func (p *PaintEngine) Close() error {
	for _, fb := range p.framebuffers {
		p.destroyFramebuffer(fb)
	}
	p.framebuffers = nil
	return p.card.Close()
}

// copyToFramebuffer converts src into pixFormat rows of dst.
func copyToFramebuffer(dst []byte, pitch int, pixFormat atlas.PixelFormat, src *image.RGBA) {
	pixSize := atlas.GetPixelSize(pixFormat)
	bounds := src.Bounds()
	for y := 0; y < bounds.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+bounds.Dx()*4]
		dstRow := dst[y*pitch : y*pitch+bounds.Dx()*pixSize]
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b := srcRow[x*4], srcRow[x*4+1], srcRow[x*4+2]
			switch pixFormat {
			case atlas.RGB16:
				v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
				dstRow[x*2] = byte(v)
				dstRow[x*2+1] = byte(v >> 8)
			default:
				dstRow[x*4] = b
				dstRow[x*4+1] = g
				dstRow[x*4+2] = r
				dstRow[x*4+3] = 0xFF
			}
		}
	}
}

func (p *PaintEngine) createFramebuffer() (*framebuffer, error) {

	fb := &framebuffer{}
	var err error

	defer func() {
		if err != nil {
			p.destroyFramebuffer(fb)
		}
	}()

	bpp := atlas.GetPixelSize(p.pixFormat) * 8
	depth := atlas.GetPixelDepth(p.pixFormat)

	fbInfo, err := mode.CreateFB(p.card, uint16(p.width), uint16(p.height), uint32(bpp))
	if err != nil {
		return nil, err
	}

	fb.handle = fbInfo.Handle
	fb.pitch = int(fbInfo.Pitch)
	fb.id, err = mode.AddFB(p.card, uint16(p.width), uint16(p.height),
		uint8(depth), uint8(bpp), fbInfo.Pitch, fb.handle)
	if err != nil {
		return nil, err
	}

	offset, err := mode.MapDumb(p.card, fb.handle)
	if err != nil {
		return nil, err
	}

	fb.buf, err = syscall.Mmap(int(p.card.Fd()), int64(offset), int(fbInfo.Size),
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, err
	}

	return fb, nil
}

func (p *PaintEngine) destroyFramebuffer(fb *framebuffer) {
	if fb != nil && p.card != nil {
		if fb.id != 0 {
			mode.RmFB(p.card, fb.id)
			fb.id = 0
		}

		if fb.handle != 0 {
			mode.DestroyDumb(p.card, fb.handle)
			fb.handle = 0
		}

		if fb.buf != nil {
			syscall.Munmap(fb.buf)
			fb.buf = nil
		}
	}
}
