package atlas

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	// ErrRegionNotFound is returned when an atlas has no region with the given name.
	ErrRegionNotFound = errors.New("Region not found")
	// ErrDuplicateRegion is returned when a region name is already used.
	ErrDuplicateRegion = errors.New("Duplicate region")
	// ErrRegionOutOfBounds is returned when a region does not fit into its page.
	ErrRegionOutOfBounds = errors.New("Region is out of texture bounds")
)

const maxSuggestions = 3

// TextureAtlas is a named collection of regions over one or more pages.
//
// Regions keep insertion order. TextureAtlas is not safe for concurrent
// modification.
type TextureAtlas struct {
	Name    string
	pages   []Texture
	regions []*TextureRegion
	index   map[string]int
}

// NewTextureAtlas creates an empty atlas.
func NewTextureAtlas(name string) *TextureAtlas {
	return &TextureAtlas{
		Name:  name,
		index: make(map[string]int),
	}
}

// Pages returns the textures used by the atlas regions, in order of first use.
func (a *TextureAtlas) Pages() []Texture {
	return a.pages
}

// Len returns the number of regions.
func (a *TextureAtlas) Len() int {
	return len(a.regions)
}

// Regions returns the regions in insertion order.
func (a *TextureAtlas) Regions() []*TextureRegion {
	return a.regions
}

// Names returns the region names in insertion order.
func (a *TextureAtlas) Names() []string {
	names := make([]string, len(a.regions))
	for i, region := range a.regions {
		names[i] = region.Name
	}
	return names
}

// CreateRegion creates a region and adds it to the atlas.
func (a *TextureAtlas) CreateRegion(name string, texture Texture, x, y, width, height int) (*TextureRegion, error) {
	region := NewTextureRegion(name, texture, x, y, width, height)
	if err := a.AddRegion(region); err != nil {
		return nil, err
	}
	return region, nil
}

// AddRegion adds region to the atlas.
func (a *TextureAtlas) AddRegion(region *TextureRegion) error {
	if _, ok := a.index[region.Name]; ok {
		return fmt.Errorf("%w: '%s'", ErrDuplicateRegion, region.Name)
	}
	a.index[region.Name] = len(a.regions)
	a.regions = append(a.regions, region)
	a.addPage(region.Texture)
	return nil
}

// RemoveRegion removes the named region and reports whether it existed.
func (a *TextureAtlas) RemoveRegion(name string) bool {
	i, ok := a.index[name]
	if !ok {
		return false
	}
	a.regions = append(a.regions[:i], a.regions[i+1:]...)
	delete(a.index, name)
	for j := i; j < len(a.regions); j++ {
		a.index[a.regions[j].Name] = j
	}

	a.pages = nil
	for _, region := range a.regions {
		a.addPage(region.Texture)
	}
	return true
}

// Region returns the named region.
func (a *TextureAtlas) Region(name string) (*TextureRegion, error) {
	if i, ok := a.index[name]; ok {
		return a.regions[i], nil
	}

	suggestions := a.Find(name)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	if len(suggestions) > 0 {
		return nil, fmt.Errorf("%w: '%s' (did you mean %s?)", ErrRegionNotFound, name, strings.Join(suggestions, ", "))
	}
	return nil, fmt.Errorf("%w: '%s'", ErrRegionNotFound, name)
}

// MustRegion is like Region but panics if the region is missing.
func (a *TextureAtlas) MustRegion(name string) *TextureRegion {
	region, err := a.Region(name)
	if err != nil {
		panic(err)
	}
	return region
}

// Find returns the region names fuzzily matching query, best match first.
func (a *TextureAtlas) Find(query string) []string {
	ranks := fuzzy.RankFindNormalizedFold(query, a.Names())
	sort.Sort(ranks)

	names := make([]string, len(ranks))
	for i, rank := range ranks {
		names[i] = rank.Target
	}
	return names
}

// CreateGridRegions slices texture into cells of cellWidth x cellHeight,
// row by row, skipping margin pixels around the texture and spacing pixels
// between cells. Regions are named prefix followed by the cell index.
func (a *TextureAtlas) CreateGridRegions(texture Texture, prefix string,
	cellWidth, cellHeight, margin, spacing int) ([]*TextureRegion, error) {
	if cellWidth <= 0 || cellHeight <= 0 || margin < 0 || spacing < 0 {
		return nil, fmt.Errorf("Invalid grid %dx%d margin %d spacing %d", cellWidth, cellHeight, margin, spacing)
	}

	bounds := texture.Bounds()
	var regions []*TextureRegion
	for y := bounds.Min.Y + margin; y+cellHeight <= bounds.Max.Y-margin; y += cellHeight + spacing {
		for x := bounds.Min.X + margin; x+cellWidth <= bounds.Max.X-margin; x += cellWidth + spacing {
			name := fmt.Sprintf("%s%d", prefix, len(regions))
			region, err := a.CreateRegion(name, texture, x, y, cellWidth, cellHeight)
			if err != nil {
				return regions, err
			}
			regions = append(regions, region)
		}
	}
	return regions, nil
}

func (a *TextureAtlas) addPage(texture Texture) {
	for _, page := range a.pages {
		if sameTexture(page, texture) {
			return
		}
	}
	a.pages = append(a.pages, texture)
}
