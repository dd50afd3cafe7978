package atlas

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PageLoader loads the texture of an atlas page.
type PageLoader func(fileName string) (Texture, error)

// DefaultPageLoader loads .ppixmap files as packed pixmaps and decodes any
// other file as an RGB32 image. Both return a *Pixmap.
func DefaultPageLoader(fileName string) (Texture, error) {
	if strings.EqualFold(filepath.Ext(fileName), ".ppixmap") {
		packedPixmap, err := LoadPackedPixmap(fileName)
		if err != nil {
			return nil, err
		}
		return packedPixmap.Unpack()
	}
	return LoadPixmap(fileName, RGB32)
}

type atlasFile struct {
	Name  string     `json:"name"`
	Pages []pageFile `json:"pages"`
}

type pageFile struct {
	Image   string       `json:"image"`
	Regions []regionFile `json:"regions"`
	Grid    *gridFile    `json:"grid,omitempty"`
}

type regionFile struct {
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type gridFile struct {
	Prefix     string `json:"prefix"`
	CellWidth  int    `json:"cellWidth"`
	CellHeight int    `json:"cellHeight"`
	Margin     int    `json:"margin"`
	Spacing    int    `json:"spacing"`
}

// LoadAtlas loads an atlas descriptor. Page images are resolved relative to
// the descriptor directory. A nil loader means DefaultPageLoader.
func LoadAtlas(fileName string, loader PageLoader) (*TextureAtlas, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	defaultName := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	atlas, err := readAtlas(file, filepath.Dir(fileName), defaultName, loader)
	if err != nil {
		return nil, fmt.Errorf("load atlas %s: %w", fileName, err)
	}
	return atlas, nil
}

// ReadAtlas reads a JSON atlas descriptor from r. Relative page images are
// resolved against dir.
func ReadAtlas(r io.Reader, dir string, loader PageLoader) (*TextureAtlas, error) {
	return readAtlas(r, dir, "", loader)
}

// readAtlas names the atlas defaultName when the descriptor has no name.
func readAtlas(r io.Reader, dir string, defaultName string, loader PageLoader) (*TextureAtlas, error) {
	if loader == nil {
		loader = DefaultPageLoader
	}

	var desc atlasFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return nil, err
	}
	if desc.Name == "" {
		desc.Name = defaultName
	}

	log := Logger().WithField("atlas", desc.Name)
	atlas := NewTextureAtlas(desc.Name)
	for _, page := range desc.Pages {
		if page.Image == "" {
			return nil, errors.New("Page without image")
		}
		imageFile := page.Image
		if !filepath.IsAbs(imageFile) {
			imageFile = filepath.Join(dir, imageFile)
		}
		texture, err := loader(imageFile)
		if err != nil {
			return nil, err
		}

		bounds := texture.Bounds()
		for _, reg := range page.Regions {
			source := image.Rect(reg.X, reg.Y, reg.X+reg.Width, reg.Y+reg.Height)
			if reg.Width <= 0 || reg.Height <= 0 || !source.In(bounds) {
				return nil, fmt.Errorf("%w: '%s' %v not in %v", ErrRegionOutOfBounds, reg.Name, source, bounds)
			}
			if _, err = atlas.CreateRegion(reg.Name, texture, reg.X, reg.Y, reg.Width, reg.Height); err != nil {
				return nil, err
			}
		}

		if page.Grid != nil {
			g := page.Grid
			if _, err = atlas.CreateGridRegions(texture, g.Prefix, g.CellWidth, g.CellHeight, g.Margin, g.Spacing); err != nil {
				return nil, err
			}
		}
		log.WithField("page", page.Image).WithField("size", bounds.Size()).Debug("Page loaded")
	}

	log.WithField("regions", atlas.Len()).Debug("Atlas loaded")
	return atlas, nil
}
