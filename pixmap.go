package atlas

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	// Decoders for LoadPixmap.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrInvalidPixmap is returned for a pixmap whose buffer does not match its geometry.
var ErrInvalidPixmap = errors.New("Invalid pixmap")

// Pixmap contains a collection of pixels
type Pixmap struct {
	Data        []byte
	Width       int
	Height      int
	BytePerLine int
	PixFormat   PixelFormat
}

// NewPixmap creates a zero filled pixmap.
func NewPixmap(width, height int, pixFormat PixelFormat) *Pixmap {
	bytePerLine := width * GetPixelSize(pixFormat)
	return &Pixmap{
		Data:        make([]byte, bytePerLine*height),
		Width:       width,
		Height:      height,
		BytePerLine: bytePerLine,
		PixFormat:   pixFormat,
	}
}

// NewPixmapFromImage converts img to a pixmap of the given format.
func NewPixmapFromImage(img image.Image, pixFormat PixelFormat) *Pixmap {
	b := img.Bounds()
	pixmap := NewPixmap(b.Dx(), b.Dy(), pixFormat)
	for y := 0; y < pixmap.Height; y++ {
		for x := 0; x < pixmap.Width; x++ {
			pixmap.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return pixmap
}

// LoadPixmap loads Pixmap from file
func LoadPixmap(fileName string, pixFormat PixelFormat) (*Pixmap, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fileName, err)
	}
	return NewPixmapFromImage(img, pixFormat), nil
}

// Validate checks that Data covers every row.
func (pixmap *Pixmap) Validate() error {
	rowSize := pixmap.Width * GetPixelSize(pixmap.PixFormat)
	if pixmap.Width < 0 || pixmap.Height < 0 || pixmap.BytePerLine < rowSize {
		return ErrInvalidPixmap
	}
	if pixmap.Height > 0 && len(pixmap.Data) < (pixmap.Height-1)*pixmap.BytePerLine+rowSize {
		return ErrInvalidPixmap
	}
	return nil
}

// Bounds implements Texture and image.Image.
func (pixmap *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, pixmap.Width, pixmap.Height)
}

// ColorModel implements image.Image.
func (pixmap *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// At implements image.Image.
func (pixmap *Pixmap) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(pixmap.Bounds())) {
		return color.NRGBA{}
	}
	offset := pixmap.pixOffset(x, y)
	switch pixmap.PixFormat {
	case RGB16:
		v := binary.LittleEndian.Uint16(pixmap.Data[offset:])
		r := uint8(v>>11) & 0x1F
		g := uint8(v>>5) & 0x3F
		b := uint8(v) & 0x1F
		return color.NRGBA{
			R: r<<3 | r>>2,
			G: g<<2 | g>>4,
			B: b<<3 | b>>2,
			A: 0xFF,
		}
	default:
		v := binary.LittleEndian.Uint32(pixmap.Data[offset:])
		return color.NRGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: uint8(v >> 24),
		}
	}
}

// Set stores c at (x, y). Points outside the pixmap are ignored.
func (pixmap *Pixmap) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(pixmap.Bounds())) {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	offset := pixmap.pixOffset(x, y)
	switch pixmap.PixFormat {
	case RGB16:
		v := uint16(n.R>>3)<<11 | uint16(n.G>>2)<<5 | uint16(n.B>>3)
		binary.LittleEndian.PutUint16(pixmap.Data[offset:], v)
	default:
		v := uint32(n.A)<<24 | uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
		binary.LittleEndian.PutUint32(pixmap.Data[offset:], v)
	}
}

// SubPixmap copies the pixels inside rect into a new pixmap.
func (pixmap *Pixmap) SubPixmap(rect image.Rectangle) *Pixmap {
	rect = rect.Intersect(pixmap.Bounds())
	pixSize := GetPixelSize(pixmap.PixFormat)
	sub := NewPixmap(rect.Dx(), rect.Dy(), pixmap.PixFormat)
	for row := 0; row < sub.Height; row++ {
		src := pixmap.pixOffset(rect.Min.X, rect.Min.Y+row)
		dst := row * sub.BytePerLine
		copy(sub.Data[dst:dst+sub.Width*pixSize], pixmap.Data[src:src+sub.Width*pixSize])
	}
	return sub
}

func (pixmap *Pixmap) pixOffset(x, y int) int {
	return y*pixmap.BytePerLine + x*GetPixelSize(pixmap.PixFormat)
}
