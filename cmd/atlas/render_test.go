package main

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/rmcsoft/atlas"
)

func testRegions() []*atlas.TextureRegion {
	page := atlas.NewPixmap(16, 8, atlas.RGB32)
	return []*atlas.TextureRegion{
		atlas.NewTextureRegion("a", page, 0, 0, 8, 8),
		atlas.NewTextureRegion("b", page, 8, 0, 4, 6),
	}
}

func TestCanvasSize(t *testing.T) {
	o := drawOptions{Scale: 2, Flip: "none"}
	got := o.canvasSize(testRegions())
	want := image.Pt(regionPadding+16+regionPadding+8+regionPadding, 16+2*regionPadding)
	if got != want {
		t.Errorf("canvasSize = %v, want %v", got, want)
	}
}

func TestDrawRegions(t *testing.T) {
	o := drawOptions{Scale: 1, Flip: "horizontal"}
	paintEngine := atlas.NewSoftwarePaintEngine(64, 64)
	batch := atlas.NewSpriteBatch(paintEngine)
	paintEngine.Begin()
	batch.Begin(atlas.SortImmediate)
	if err := o.drawRegions(batch, testRegions()); err != nil {
		t.Fatalf("drawRegions: %v", err)
	}
	batch.End()
	paintEngine.End()

	o.Flip = "sideways"
	if err := o.drawRegions(batch, testRegions()); err == nil {
		t.Error("invalid flip mode accepted")
	}
}

func TestPackOutputPath(t *testing.T) {
	dir := t.TempDir()
	c := packCommand{InputDir: filepath.Join(dir, "in"), OutputDir: filepath.Join(dir, "out")}

	got, err := c.outputPath(filepath.Join(dir, "in", "hero", "walk.png"))
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "out", "hero", "walk.ppixmap"); got != want {
		t.Errorf("outputPath = %q, want %q", got, want)
	}
}
