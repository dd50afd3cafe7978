package atlas

// PixelFormat is an enumeration of pixel formats
type PixelFormat int

const (
	// RGB32 is 32-bit ARGB format (0xAARRGGBB, stored little endian)
	RGB32 PixelFormat = 0
	// RGB16 is 16-bit RGB format (5-6-5)
	RGB16 PixelFormat = 1
)

// GetPixelSize returns the size of one pixel in bytes.
func GetPixelSize(pixFormat PixelFormat) int {
	switch pixFormat {
	case RGB16:
		return 2
	default:
		return 4
	}
}

// GetPixelDepth returns the number of significant color bits of one pixel.
func GetPixelDepth(pixFormat PixelFormat) int {
	switch pixFormat {
	case RGB16:
		return 16
	default:
		return 24
	}
}

func (f PixelFormat) String() string {
	switch f {
	case RGB16:
		return "RGB16"
	case RGB32:
		return "RGB32"
	default:
		return "unknown"
	}
}
