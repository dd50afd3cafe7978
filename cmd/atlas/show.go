package main

import (
	"time"

	"github.com/rmcsoft/atlas"
	"github.com/rmcsoft/atlas/sdlengine"
	"github.com/veandco/go-sdl2/sdl"
)

type showCommand struct {
	atlasOptions
	drawOptions
	Duration time.Duration `short:"d" long:"duration" description:"Close the window after this time; 0 waits for the window to be closed" default:"0"`
}

func init() {
	parser.AddCommand("show", "Show regions in an SDL window",
		"Draws the given regions in an SDL window using SDL_image to load pages.", &showCommand{})
}

func (c *showCommand) Execute(args []string) error {
	setupLogging()

	textureAtlas, err := c.load(sdlengine.PageLoader)
	if err != nil {
		return err
	}
	regions, err := c.regions(textureAtlas)
	if err != nil {
		return err
	}

	size := c.canvasSize(regions)
	paintEngine, err := sdlengine.New(size.X, size.Y)
	if err != nil {
		return err
	}
	defer paintEngine.Close()

	var deadline <-chan time.Time
	if c.Duration > 0 {
		deadline = time.After(c.Duration)
	}

	batch := atlas.NewSpriteBatch(paintEngine)
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				return nil
			}
		}

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

		select {
		case <-deadline:
			return nil
		case <-ticker.C:
		}
	}
}
