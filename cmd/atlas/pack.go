package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rmcsoft/atlas"
	"github.com/sirupsen/logrus"
)

type packCommand struct {
	InputDir  string `short:"i" long:"input-dir" description:"The input directory" required:"true"`
	OutputDir string `short:"o" long:"output-dir" description:"The output directory" required:"true"`
	Format    string `short:"f" long:"format" description:"Pixel format of packed pages" choice:"RGB16" choice:"RGB32" default:"RGB32"`
}

func init() {
	parser.AddCommand("pack", "Convert page images to packed pixmaps",
		"Converts every PNG under the input directory to a run-length encoded .ppixmap page, "+
			"keeping the directory layout.", &packCommand{})
}

func (c *packCommand) Execute(args []string) error {
	setupLogging()

	pixFormat := atlas.RGB32
	if c.Format == atlas.RGB16.String() {
		pixFormat = atlas.RGB16
	}

	var packedSize int64
	var unpackedSize int64
	err := filepath.WalkDir(c.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if isImage, _ := filepath.Match("*.png", d.Name()); !isImage {
			return nil
		}

		log := logrus.WithField("image", path)
		pixmap, err := atlas.LoadPixmap(path, pixFormat)
		if err != nil {
			return err
		}
		packedPixmap, err := atlas.PackPixmap(pixmap)
		if err != nil {
			return err
		}

		outputFile, err := c.outputPath(path)
		if err != nil {
			return err
		}
		if err = packedPixmap.Save(outputFile); err != nil {
			return err
		}

		unpackedSize += int64(pixmap.BytePerLine * pixmap.Height)
		packedSize += int64(len(packedPixmap.Data))
		log.WithField("output", outputFile).WithField("packed", len(packedPixmap.Data)).Debug("Page packed")
		return nil
	})
	if err != nil {
		return err
	}

	ratio := 0.0
	if packedSize > 0 {
		ratio = float64(unpackedSize) / float64(packedSize)
	}
	fmt.Printf("unpackedSize=%.2fM packedSize=%.2fM ratio=%.2f\n",
		float64(unpackedSize)/(1024*1024), float64(packedSize)/(1024*1024), ratio)
	return nil
}

// outputPath mirrors inputFile under the output directory with a .ppixmap extension.
func (c *packCommand) outputPath(inputFile string) (string, error) {
	relInputPath, err := filepath.Rel(c.InputDir, inputFile)
	if err != nil {
		return "", err
	}

	relOutputPath := strings.TrimSuffix(relInputPath, filepath.Ext(relInputPath)) + ".ppixmap"
	outputFile := filepath.Join(c.OutputDir, relOutputPath)
	if err = os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return "", err
	}
	return outputFile, nil
}
