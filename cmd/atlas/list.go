package main

import (
	"fmt"
)

type listCommand struct {
	atlasOptions
	Find string `short:"f" long:"find" description:"Show only regions fuzzily matching the query"`
}

func init() {
	parser.AddCommand("list", "List regions",
		"Prints the name, page position and size of every region.", &listCommand{})
}

func (c *listCommand) Execute(args []string) error {
	setupLogging()

	textureAtlas, err := c.load(nil)
	if err != nil {
		return err
	}

	names := textureAtlas.Names()
	if c.Find != "" {
		names = textureAtlas.Find(c.Find)
	}
	for _, name := range names {
		region, err := textureAtlas.Region(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-32s %4d,%-4d %4dx%d\n", region.Name,
			region.Source.Min.X, region.Source.Min.Y, region.Width(), region.Height())
	}
	return nil
}
