package main

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rmcsoft/atlas"
	"github.com/rmcsoft/atlas/termengine"
	"github.com/sirupsen/logrus"
)

type previewCommand struct {
	atlasOptions
	drawOptions
	Watch bool `short:"w" long:"watch" description:"Reload the atlas when its files change"`
}

func init() {
	parser.AddCommand("preview", "Preview regions in the terminal",
		"Draws the given regions in the terminal. Press q or Esc to quit.", &previewCommand{})
}

type reloadResult struct {
	atlas *atlas.TextureAtlas
	err   error
}

func (c *previewCommand) Execute(args []string) error {
	setupLogging()

	textureAtlas, err := c.load(nil)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err = screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// Log lines would corrupt the screen.
	logrus.SetLevel(logrus.ErrorLevel)

	if c.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		watcher, err := atlas.NewAtlasWatcher(c.Atlas, nil, func(reloaded *atlas.TextureAtlas, err error) {
			screen.PostEvent(tcell.NewEventInterrupt(reloadResult{reloaded, err}))
		})
		if err != nil {
			return err
		}
		defer watcher.Close()
		go watcher.Run(ctx)
	}

	paintEngine := termengine.New(screen)
	var status string
	for {
		status = c.redraw(screen, paintEngine, textureAtlas, status)

		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			paintEngine.Resize()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return nil
			}
		case *tcell.EventInterrupt:
			result := ev.Data().(reloadResult)
			if result.err != nil {
				status = result.err.Error()
				continue
			}
			textureAtlas = result.atlas
			status = ""
		}
	}
}

// redraw draws the selected regions, or the lookup error in place of them.
func (c *previewCommand) redraw(screen tcell.Screen, paintEngine *termengine.PaintEngine, textureAtlas *atlas.TextureAtlas, status string) string {
	regions, err := c.regions(textureAtlas)
	if err != nil {
		status = err.Error()
	}

	batch := atlas.NewSpriteBatch(paintEngine)
	if err = paintEngine.Begin(); err != nil {
		return err.Error()
	}
	if err = batch.Begin(atlas.SortDeferred); err == nil {
		if err = c.drawRegions(batch, regions); err != nil {
			status = err.Error()
		}
		if err = batch.End(); err != nil {
			status = err.Error()
		}
	}
	if err = paintEngine.End(); err != nil {
		return err.Error()
	}

	if status != "" {
		_, rows := screen.Size()
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		for i, r := range []rune(status) {
			screen.SetContent(i, rows-1, r, nil, style)
		}
		screen.Show()
	}
	return status
}
