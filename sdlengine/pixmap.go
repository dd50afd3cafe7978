package sdlengine

import (
	"errors"

	"github.com/rmcsoft/atlas"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	img.Init(img.INIT_JPG | img.INIT_PNG)
}

func pixelFormatToSDL(pixelFormat atlas.PixelFormat) (uint32, error) {
	switch pixelFormat {
	case atlas.RGB16:
		return sdl.PIXELFORMAT_RGB565, nil
	case atlas.RGB32:
		return sdl.PIXELFORMAT_ARGB8888, nil
	default:
		return 0, errors.New("Unsupported pixel format")
	}
}

// LoadPixmap loads a pixmap with SDL_image. It can be used as an
// atlas.PageLoader through PageLoader.
func LoadPixmap(fileName string, pixFormat atlas.PixelFormat) (*atlas.Pixmap, error) {
	image, err := img.Load(fileName)
	if err != nil {
		return nil, err
	}
	defer image.Free()

	sdlPixFormat, err := pixelFormatToSDL(pixFormat)
	if err != nil {
		return nil, err
	}

	convertedImage, err := image.ConvertFormat(sdlPixFormat, 0)
	if err != nil {
		return nil, err
	}
	defer convertedImage.Free()

	pixmap := atlas.Pixmap{
		Data:        make([]byte, len(convertedImage.Pixels())),
		Width:       int(convertedImage.W),
		Height:      int(convertedImage.H),
		BytePerLine: int(convertedImage.Pitch),
		PixFormat:   pixFormat,
	}
	copy(pixmap.Data, convertedImage.Pixels())
	return &pixmap, nil
}

// PageLoader loads atlas pages with SDL_image as RGB32 pixmaps.
func PageLoader(fileName string) (atlas.Texture, error) {
	return LoadPixmap(fileName, atlas.RGB32)
}
