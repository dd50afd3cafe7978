package atlas

import (
	"image"
	"image/color"
	"math"
	"testing"
)

var (
	red   = color.NRGBA{0xFF, 0, 0, 0xFF}
	green = color.NRGBA{0, 0xFF, 0, 0xFF}
	blue  = color.NRGBA{0, 0, 0xFF, 0xFF}
)

// quadPage returns a 4x4 page whose inner 2x2 block is
//
//	red   green
//	blue  white
func quadPage() *Pixmap {
	page := NewPixmap(4, 4, RGB32)
	page.Set(1, 1, red)
	page.Set(2, 1, green)
	page.Set(1, 2, blue)
	page.Set(2, 2, White)
	return page
}

func renderRegion(t *testing.T, draw func(batch Batch, region *TextureRegion) error) *image.RGBA {
	t.Helper()
	paintEngine := NewSoftwarePaintEngine(4, 4)
	batch := NewSpriteBatch(paintEngine)
	region := NewTextureRegion("block", quadPage(), 1, 1, 2, 2)

	if err := paintEngine.Begin(); err != nil {
		t.Fatal(err)
	}
	batch.Begin(SortDeferred)
	if err := draw(batch, region); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if err := batch.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	paintEngine.End()
	return paintEngine.Image()
}

func assertPixels(t *testing.T, img *image.RGBA, want map[image.Point]color.NRGBA) {
	t.Helper()
	for p, c := range want {
		got := color.NRGBAModel.Convert(img.At(p.X, p.Y)).(color.NRGBA)
		if got != c {
			t.Errorf("pixel %v = %v, want %v", p, got, c)
		}
	}
}

func TestSoftwarePaintEngineDraw(t *testing.T) {
	img := renderRegion(t, func(batch Batch, region *TextureRegion) error {
		return region.Draw(batch, Vec(0, 0), White)
	})
	assertPixels(t, img, map[image.Point]color.NRGBA{
		{0, 0}: red,
		{1, 0}: green,
		{0, 1}: blue,
		{1, 1}: White,
		{2, 2}: {},
	})
}

func TestSoftwarePaintEngineFlip(t *testing.T) {
	img := renderRegion(t, func(batch Batch, region *TextureRegion) error {
		return region.DrawEx(batch, Vec(1, 1), White, 0, Vector{}, Vec(1, 1), FlipHorizontal, 0)
	})
	assertPixels(t, img, map[image.Point]color.NRGBA{
		{1, 1}: green,
		{2, 1}: red,
		{1, 2}: White,
		{2, 2}: blue,
	})

	img = renderRegion(t, func(batch Batch, region *TextureRegion) error {
		return region.DrawEx(batch, Vec(0, 0), White, 0, Vector{}, Vec(1, 1), FlipVertical, 0)
	})
	assertPixels(t, img, map[image.Point]color.NRGBA{
		{0, 0}: blue,
		{1, 1}: green,
	})
}

func TestSoftwarePaintEngineScale(t *testing.T) {
	img := renderRegion(t, func(batch Batch, region *TextureRegion) error {
		return region.DrawScaled(batch, Vec(0, 0), White, 0, Vector{}, 2, FlipNone, 0)
	})
	assertPixels(t, img, map[image.Point]color.NRGBA{
		{0, 0}: red,
		{1, 1}: red,
		{3, 0}: green,
		{0, 3}: blue,
		{3, 3}: White,
	})
}

func TestSoftwarePaintEngineOriginAndRotation(t *testing.T) {
	// A half turn around the region center keeps it in place but swaps corners.
	img := renderRegion(t, func(batch Batch, region *TextureRegion) error {
		return region.DrawScaled(batch, Vec(2, 2), White, math.Pi, Vec(1, 1), 1, FlipNone, 0)
	})
	assertPixels(t, img, map[image.Point]color.NRGBA{
		{1, 1}: White,
		{2, 1}: blue,
		{1, 2}: green,
		{2, 2}: red,
	})
}

func TestSoftwarePaintEngineTint(t *testing.T) {
	img := renderRegion(t, func(batch Batch, region *TextureRegion) error {
		return region.Draw(batch, Vec(0, 0), color.NRGBA{0xFF, 0, 0xFF, 0xFF})
	})
	assertPixels(t, img, map[image.Point]color.NRGBA{
		{0, 0}: red,
		{1, 0}: {0, 0, 0, 0xFF},
		{0, 1}: blue,
		{1, 1}: {0xFF, 0, 0xFF, 0xFF},
	})
}

func TestSoftwarePaintEngineClear(t *testing.T) {
	paintEngine := NewSoftwarePaintEngine(2, 1)
	paintEngine.SetBackground(red)
	paintEngine.Begin()
	paintEngine.SetBackground(color.Transparent)
	paintEngine.Clear(image.Rect(1, 0, 2, 1))
	paintEngine.End()

	assertPixels(t, paintEngine.Image(), map[image.Point]color.NRGBA{
		{0, 0}: red,
		{1, 0}: {},
	})
}

func TestSoftwarePaintEngineErrors(t *testing.T) {
	paintEngine := NewSoftwarePaintEngine(2, 2)
	quad := Quad{Texture: quadPage(), Source: image.Rect(0, 0, 1, 1), Color: White, Scale: Vec(1, 1)}
	if err := paintEngine.DrawQuad(quad); err == nil {
		t.Error("DrawQuad outside Begin/End succeeded")
	}

	paintEngine.Begin()
	quad.Texture = &sizedTexture{1, 1}
	if err := paintEngine.DrawQuad(quad); err != ErrUnsupportedTexture {
		t.Errorf("DrawQuad with a pixel-less texture = %v, want %v", err, ErrUnsupportedTexture)
	}
}

func TestQuadTransformIdentity(t *testing.T) {
	m := QuadTransform(Quad{Source: image.Rect(3, 4, 5, 6), Scale: Vec(1, 1)})
	// Source (3, 4) lands on the destination origin.
	if m[0] != 1 || m[1] != 0 || m[2] != -3 || m[3] != 0 || m[4] != 1 || m[5] != -4 {
		t.Errorf("QuadTransform = %v", m)
	}
}
