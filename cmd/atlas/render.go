package main

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/rmcsoft/atlas"
)

const regionPadding = 4

type drawOptions struct {
	Regions  []string `short:"r" long:"region" description:"Region to draw; repeat for more" required:"true"`
	Scale    float64  `short:"s" long:"scale" description:"Scale factor" default:"1"`
	Rotation float64  `long:"rotation" description:"Rotation around the region center in degrees" default:"0"`
	Flip     string   `long:"flip" description:"Flip mode" choice:"none" choice:"horizontal" choice:"vertical" choice:"both" default:"none"`
}

type renderCommand struct {
	atlasOptions
	drawOptions
	Output string `short:"o" long:"output" description:"The output PNG file" value-name:"FILE" required:"true"`
}

func init() {
	parser.AddCommand("render", "Render regions to PNG",
		"Draws the given regions side by side with the software engine and writes a PNG.", &renderCommand{})
}

// regions looks up the selected regions.
func (o drawOptions) regions(textureAtlas *atlas.TextureAtlas) ([]*atlas.TextureRegion, error) {
	regions := make([]*atlas.TextureRegion, 0, len(o.Regions))
	for _, name := range o.Regions {
		region, err := textureAtlas.Region(name)
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	return regions, nil
}

// canvasSize returns the size needed by drawRegions.
func (o drawOptions) canvasSize(regions []*atlas.TextureRegion) image.Point {
	var size image.Point
	for _, region := range regions {
		w, h := o.cellSize(region)
		size.X += w + regionPadding
		if h > size.Y {
			size.Y = h
		}
	}
	return size.Add(image.Pt(regionPadding, 2*regionPadding))
}

func (o drawOptions) cellSize(region *atlas.TextureRegion) (int, int) {
	w := float64(region.Width()) * o.Scale
	h := float64(region.Height()) * o.Scale
	if o.Rotation != 0 {
		d := math.Hypot(w, h)
		w, h = d, d
	}
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// drawRegions draws the regions left to right, each rotated around its center.
func (o drawOptions) drawRegions(batch atlas.Batch, regions []*atlas.TextureRegion) error {
	flip, ok := atlas.ParseFlipMode(o.Flip)
	if !ok {
		return fmt.Errorf("invalid flip mode %q", o.Flip)
	}

	x := regionPadding
	for _, region := range regions {
		w, h := o.cellSize(region)
		center := atlas.Vec(float64(x)+float64(w)/2, regionPadding+float64(h)/2)
		origin := atlas.Vec(float64(region.Width())/2, float64(region.Height())/2)
		err := region.DrawScaled(batch, center, atlas.White, o.Rotation*math.Pi/180, origin, o.Scale, flip, 0)
		if err != nil {
			return fmt.Errorf("draw %s: %w", region.Name, err)
		}
		x += w + regionPadding
	}
	return nil
}

func (c *renderCommand) Execute(args []string) error {
	setupLogging()

	textureAtlas, err := c.load(nil)
	if err != nil {
		return err
	}
	regions, err := c.regions(textureAtlas)
	if err != nil {
		return err
	}

	size := c.canvasSize(regions)
	paintEngine := atlas.NewSoftwarePaintEngine(size.X, size.Y)
	batch := atlas.NewSpriteBatch(paintEngine)
	if err = paintEngine.Begin(); err != nil {
		return err
	}
	if err = batch.Begin(atlas.SortDeferred); err != nil {
		return err
	}
	if err = c.drawRegions(batch, regions); err != nil {
		return err
	}
	if err = batch.End(); err != nil {
		return err
	}
	if err = paintEngine.End(); err != nil {
		return err
	}

	file, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	defer file.Close()
	if err = png.Encode(file, paintEngine.Image()); err != nil {
		return err
	}
	return file.Sync()
}
