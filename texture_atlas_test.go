package atlas

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestTextureAtlasRegions(t *testing.T) {
	page := &sizedTexture{64, 64}
	textureAtlas := NewTextureAtlas("hero")

	idle, err := textureAtlas.CreateRegion("idle", page, 0, 0, 16, 16)
	if err != nil {
		t.Fatalf("CreateRegion: %v", err)
	}
	textureAtlas.CreateRegion("walk_left", page, 16, 0, 16, 16)
	textureAtlas.CreateRegion("walk_right", page, 32, 0, 16, 16)

	if _, err = textureAtlas.CreateRegion("idle", page, 0, 0, 1, 1); !errors.Is(err, ErrDuplicateRegion) {
		t.Errorf("duplicate CreateRegion: got %v, want %v", err, ErrDuplicateRegion)
	}

	got, err := textureAtlas.Region("idle")
	if err != nil || got != idle {
		t.Errorf("Region(idle) = %v, %v", got, err)
	}
	if want := []string{"idle", "walk_left", "walk_right"}; !reflect.DeepEqual(textureAtlas.Names(), want) {
		t.Errorf("Names() = %v, want %v", textureAtlas.Names(), want)
	}
	if len(textureAtlas.Pages()) != 1 {
		t.Errorf("Pages() = %v, want one page", textureAtlas.Pages())
	}

	if !textureAtlas.RemoveRegion("walk_left") || textureAtlas.RemoveRegion("walk_left") {
		t.Error("RemoveRegion should succeed exactly once")
	}
	if region, err := textureAtlas.Region("walk_right"); err != nil || region.Source.Min.X != 32 {
		t.Errorf("Region(walk_right) after removal = %v, %v", region, err)
	}
	if textureAtlas.Len() != 2 {
		t.Errorf("Len() = %d, want 2", textureAtlas.Len())
	}
}

func TestTextureAtlasRegionNotFoundSuggests(t *testing.T) {
	textureAtlas := NewTextureAtlas("hero")
	textureAtlas.CreateRegion("walk_right", &sizedTexture{8, 8}, 0, 0, 8, 8)

	_, err := textureAtlas.Region("wlkright")
	if !errors.Is(err, ErrRegionNotFound) {
		t.Fatalf("got %v, want %v", err, ErrRegionNotFound)
	}
	if !strings.Contains(err.Error(), "walk_right") {
		t.Errorf("error %q has no suggestion", err)
	}

	_, err = textureAtlas.Region("zzz")
	if !errors.Is(err, ErrRegionNotFound) || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("Region(zzz) = %v", err)
	}
}

func TestTextureAtlasGrid(t *testing.T) {
	textureAtlas := NewTextureAtlas("tiles")
	// 1px margin, 2px spacing, 4x4 cells: columns at 1, 7 and 13 fit in 20 px.
	regions, err := textureAtlas.CreateGridRegions(&sizedTexture{20, 12}, "tile", 4, 4, 1, 2)
	if err != nil {
		t.Fatalf("CreateGridRegions: %v", err)
	}
	if len(regions) != 3*2 {
		t.Fatalf("got %d regions, want 6", len(regions))
	}
	if got := regions[4]; got.Name != "tile4" || got.Source != image.Rect(7, 7, 11, 11) {
		t.Errorf("regions[4] = %v", got)
	}

	if _, err = textureAtlas.CreateGridRegions(&sizedTexture{4, 4}, "x", 0, 4, 0, 0); err == nil {
		t.Error("zero cell width accepted")
	}
}

func writeAtlasFixture(t *testing.T, descriptor string) string {
	t.Helper()
	dir := t.TempDir()

	page := solidPixmap(32, 16, red)
	file, err := os.Create(filepath.Join(dir, "page.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err = png.Encode(file, page); err != nil {
		t.Fatal(err)
	}
	file.Close()

	packedPixmap, err := PackPixmap(solidPixmap(8, 8, blue))
	if err != nil {
		t.Fatal(err)
	}
	if err = packedPixmap.Save(filepath.Join(dir, "small.ppixmap")); err != nil {
		t.Fatal(err)
	}

	fileName := filepath.Join(dir, "hero.json")
	if err = os.WriteFile(fileName, []byte(descriptor), 0644); err != nil {
		t.Fatal(err)
	}
	return fileName
}

func TestLoadAtlas(t *testing.T) {
	fileName := writeAtlasFixture(t, `{
		"pages": [
			{"image": "page.png",
			 "regions": [{"name": "head", "x": 0, "y": 0, "width": 16, "height": 8}],
			 "grid": {"prefix": "cell", "cellWidth": 16, "cellHeight": 16}},
			{"image": "small.ppixmap",
			 "regions": [{"name": "dot", "x": 2, "y": 2, "width": 4, "height": 4}]}
		]
	}`)

	textureAtlas, err := LoadAtlas(fileName, nil)
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if textureAtlas.Name != "hero" {
		t.Errorf("Name = %q, want hero", textureAtlas.Name)
	}
	if want := []string{"head", "cell0", "cell1", "dot"}; !reflect.DeepEqual(textureAtlas.Names(), want) {
		t.Errorf("Names() = %v, want %v", textureAtlas.Names(), want)
	}

	dot := textureAtlas.MustRegion("dot")
	if got := dot.Texture.(*Pixmap).At(3, 3); got != blue {
		t.Errorf("dot page pixel = %v, want blue", got)
	}
	if got := textureAtlas.MustRegion("head").Texture.(*Pixmap).At(0, 0); got != red {
		t.Errorf("head page pixel = %v, want red", got)
	}
}

func TestLoadAtlasRejectsOutOfBoundsRegion(t *testing.T) {
	fileName := writeAtlasFixture(t, `{"name": "bad", "pages": [
		{"image": "page.png", "regions": [{"name": "wide", "x": 20, "y": 0, "width": 16, "height": 8}]}
	]}`)

	if _, err := LoadAtlas(fileName, nil); !errors.Is(err, ErrRegionOutOfBounds) {
		t.Errorf("got %v, want %v", err, ErrRegionOutOfBounds)
	}
}

func TestLoadAtlasUsesLoader(t *testing.T) {
	fileName := writeAtlasFixture(t, `{"pages": [
		{"image": "virtual.png", "regions": [{"name": "a", "x": 0, "y": 0, "width": 10, "height": 10}]}
	]}`)

	var loaded []string
	loader := func(name string) (Texture, error) {
		loaded = append(loaded, filepath.Base(name))
		return &sizedTexture{100, 100}, nil
	}
	if _, err := LoadAtlas(fileName, loader); err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if !reflect.DeepEqual(loaded, []string{"virtual.png"}) {
		t.Errorf("loader called with %v", loaded)
	}
}

func TestTextureAtlasPagesFollowRegions(t *testing.T) {
	first := &sizedTexture{16, 16}
	second := &sizedTexture{16, 16}
	textureAtlas := NewTextureAtlas("pages")
	textureAtlas.CreateRegion("a", first, 0, 0, 8, 8)
	textureAtlas.CreateRegion("b", second, 0, 0, 8, 8)
	textureAtlas.CreateRegion("c", first, 8, 0, 8, 8)

	if got := textureAtlas.Pages(); len(got) != 2 || got[0] != first || got[1] != second {
		t.Fatalf("Pages() = %v, want [first second]", got)
	}

	textureAtlas.RemoveRegion("a")
	if got := textureAtlas.Pages(); len(got) != 2 {
		t.Errorf("Pages() after removing a = %v, want both pages", got)
	}
	textureAtlas.RemoveRegion("b")
	if got := textureAtlas.Pages(); len(got) != 1 || got[0] != first {
		t.Errorf("Pages() after removing b = %v, want [first]", got)
	}
}

func TestTextureAtlasUncomparableTexture(t *testing.T) {
	strip := sliceTexture{pix: make([]byte, 16)}
	textureAtlas := NewTextureAtlas("strip")

	if _, err := textureAtlas.CreateRegion("left", strip, 0, 0, 8, 1); err != nil {
		t.Fatalf("CreateRegion(left): %v", err)
	}
	if _, err := textureAtlas.CreateRegion("right", strip, 8, 0, 8, 1); err != nil {
		t.Fatalf("CreateRegion(right): %v", err)
	}
	if n := len(textureAtlas.Pages()); n != 2 {
		t.Errorf("got %d pages, want 2", n)
	}

	textureAtlas.RemoveRegion("left")
	textureAtlas.RemoveRegion("right")
	if n := len(textureAtlas.Pages()); n != 0 {
		t.Errorf("got %d pages after removing every region, want 0", n)
	}
}

func TestLoadAtlasLogsDefaultName(t *testing.T) {
	fileName := writeAtlasFixture(t, `{"pages": [
		{"image": "page.png", "regions": [{"name": "a", "x": 0, "y": 0, "width": 4, "height": 4}]}
	]}`)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	SetLogger(logger)
	defer SetLogger(nil)

	if _, err := LoadAtlas(fileName, nil); err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	logged := 0
	for _, entry := range hook.AllEntries() {
		got, ok := entry.Data["atlas"]
		if !ok {
			continue
		}
		logged++
		if got != "hero" {
			t.Errorf("%q logged with atlas=%q, want hero", entry.Message, got)
		}
	}
	if logged == 0 {
		t.Error("no log entries with an atlas field")
	}
}
