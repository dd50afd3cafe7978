package atlas

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"io"
	"os"
)

const maxPackedDimension = 32000

var (
	// ErrInvalidPackedData is returned when the run-length stream does not
	// match the declared width and height.
	ErrInvalidPackedData = errors.New("Invalid packed data")
	// ErrUnsupportedPixelFormat is returned for an unknown pixel format.
	ErrUnsupportedPixelFormat = errors.New("Unsupported pixel format")
)

// PackedPixmap is a run-length encoded pixmap.
//
// Every row is a sequence of (count, pixel) runs with 1 <= count <= 255,
// terminated by a zero byte.
type PackedPixmap struct {
	Data      []byte
	Width     int
	Height    int
	PixFormat PixelFormat
}

// Bounds implements Texture.
func (packedPixmap *PackedPixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, packedPixmap.Width, packedPixmap.Height)
}

// Save saves PackedPixmap
func (packedPixmap *PackedPixmap) Save(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err = packedPixmap.WriteTo(file); err != nil {
		return err
	}
	return file.Sync()
}

// WriteTo writes the header and the packed rows to w.
func (packedPixmap *PackedPixmap) WriteTo(w io.Writer) (int64, error) {
	header := [3]uint32{
		uint32(packedPixmap.PixFormat),
		uint32(packedPixmap.Width),
		uint32(packedPixmap.Height),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return 0, err
	}

	n, err := w.Write(packedPixmap.Data)
	return int64(binary.Size(header) + n), err
}

// Unpack unpacks PackedPixmap
func (packedPixmap *PackedPixmap) Unpack() (*Pixmap, error) {
	pixSize := GetPixelSize(packedPixmap.PixFormat)
	pixmap := NewPixmap(packedPixmap.Width, packedPixmap.Height, packedPixmap.PixFormat)
	unpackedData := pixmap.Data[:0]

	data := packedPixmap.Data
	rowCount := 0
	rowSize := 0
	for pos := 0; pos < len(data); {
		pixCount := int(data[pos])
		pos++
		if pixCount == 0 {
			if rowSize != packedPixmap.Width {
				return nil, ErrInvalidPackedData
			}
			rowCount++
			rowSize = 0
			continue
		}

		if pos+pixSize > len(data) || rowSize+pixCount > packedPixmap.Width {
			return nil, ErrInvalidPackedData
		}
		pix := data[pos : pos+pixSize]
		for i := 0; i < pixCount; i++ {
			unpackedData = append(unpackedData, pix...)
		}
		rowSize += pixCount
		pos += pixSize
	}

	if rowCount != packedPixmap.Height || rowSize != 0 {
		return nil, ErrInvalidPackedData
	}
	pixmap.Data = unpackedData
	return pixmap, nil
}

func u32ToPixFormat(val uint32) (PixelFormat, error) {
	switch val {
	case uint32(RGB16):
		return RGB16, nil
	case uint32(RGB32):
		return RGB32, nil
	default:
		return 0, ErrUnsupportedPixelFormat
	}
}

// LoadPackedPixmap loads PackedPixmap from file
func LoadPackedPixmap(fileName string) (*PackedPixmap, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadPackedPixmap(bufio.NewReader(file))
}

// ReadPackedPixmap reads a PackedPixmap written by WriteTo.
func ReadPackedPixmap(r io.Reader) (*PackedPixmap, error) {
	header := [3]uint32{}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	pixFormat, err := u32ToPixFormat(header[0])
	if err != nil {
		return nil, err
	}
	width := int(header[1])
	if width > maxPackedDimension {
		return nil, errors.New("Invalid width")
	}
	height := int(header[2])
	if height > maxPackedDimension {
		return nil, errors.New("Invalid height")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if err = checkPackedRows(data, width, height, GetPixelSize(pixFormat)); err != nil {
		return nil, err
	}
	return &PackedPixmap{
		Data:      data,
		Width:     width,
		Height:    height,
		PixFormat: pixFormat,
	}, nil
}

func checkPackedRows(data []byte, width, height, pixSize int) error {
	rowCount := 0
	rowSize := 0
	for pos := 0; pos < len(data); {
		pixCount := int(data[pos])
		if pixCount == 0 {
			if rowSize != width {
				return ErrInvalidPackedData
			}
			rowCount++
			rowSize = 0
			pos++
			continue
		}

		rowSize += pixCount
		pos += 1 + pixSize
	}

	if rowCount != height || rowSize != 0 {
		return ErrInvalidPackedData
	}
	return nil
}

// PackPixmap packs Pixmap
func PackPixmap(pixmap *Pixmap) (*PackedPixmap, error) {
	if err := pixmap.Validate(); err != nil {
		return nil, err
	}

	packedPixmap := &PackedPixmap{
		Width:     pixmap.Width,
		Height:    pixmap.Height,
		PixFormat: pixmap.PixFormat,
	}

	pixSize := GetPixelSize(pixmap.PixFormat)
	for y := 0; y < pixmap.Height; y++ {
		rowOffset := pixmap.BytePerLine * y
		row := pixmap.Data[rowOffset : rowOffset+pixmap.Width*pixSize]

		for pixOffset := 0; pixOffset < len(row); {
			pix := row[pixOffset : pixOffset+pixSize]

			var runLength byte = 1
			pixOffset += pixSize
			for pixOffset < len(row) && runLength < 0xFF &&
				bytes.Equal(pix, row[pixOffset:pixOffset+pixSize]) {
				runLength++
				pixOffset += pixSize
			}

			packedPixmap.Data = append(packedPixmap.Data, runLength)
			packedPixmap.Data = append(packedPixmap.Data, pix...)
		}
		packedPixmap.Data = append(packedPixmap.Data, 0x00) // New row
	}

	return packedPixmap, nil
}
