package atlas

import (
	"errors"
	"image"
	"image/color"
	"sort"
)

// SortMode selects the order in which SpriteBatch submits queued quads.
type SortMode int

const (
	// SortDeferred submits quads in call order on End
	SortDeferred SortMode = iota
	// SortImmediate submits every quad as soon as it is drawn
	SortImmediate
	// SortTexture groups quads by texture, in order of first use
	SortTexture
	// SortBackToFront submits quads with a greater layer depth first
	SortBackToFront
	// SortFrontToBack submits quads with a smaller layer depth first
	SortFrontToBack
)

var (
	// ErrBatchActive is returned by Begin when the batch has already begun.
	ErrBatchActive = errors.New("SpriteBatch is already active")
	// ErrBatchNotActive is returned when drawing outside Begin/End.
	ErrBatchNotActive = errors.New("SpriteBatch is not active")
	// ErrNilTexture is returned when a quad has no texture.
	ErrNilTexture = errors.New("Texture is nil")
)

// SpriteBatch queues quads between Begin and End and hands them to a
// PaintEngine in the order selected by the sort mode.
//
// A SpriteBatch is not safe for concurrent use.
type SpriteBatch struct {
	paintEngine PaintEngine
	isActive    bool
	sortMode    SortMode
	quads       []Quad
}

// NewSpriteBatch creates a SpriteBatch drawing on paintEngine.
func NewSpriteBatch(paintEngine PaintEngine) *SpriteBatch {
	return &SpriteBatch{
		paintEngine: paintEngine,
		quads:       make([]Quad, 0, 256),
	}
}

// Begin starts a batch.
func (b *SpriteBatch) Begin(sortMode SortMode) error {
	if b.isActive {
		return ErrBatchActive
	}
	b.isActive = true
	b.sortMode = sortMode
	return nil
}

// IsActive reports whether the batch is between Begin and End.
func (b *SpriteBatch) IsActive() bool {
	return b.isActive
}

// Len returns the number of queued quads.
func (b *SpriteBatch) Len() int {
	return len(b.quads)
}

// DrawQuad implements Batch.
func (b *SpriteBatch) DrawQuad(texture Texture, position Vector, source image.Rectangle, color color.NRGBA,
	rotation float64, origin Vector, scale Vector, flip FlipMode, layerDepth float64) error {
	if !b.isActive {
		return ErrBatchNotActive
	}
	if texture == nil {
		return ErrNilTexture
	}

	quad := Quad{
		Texture:    texture,
		Position:   position,
		Source:     source,
		Color:      color,
		Rotation:   rotation,
		Origin:     origin,
		Scale:      scale,
		Flip:       flip,
		LayerDepth: layerDepth,
	}
	if b.sortMode == SortImmediate {
		return b.paintEngine.DrawQuad(quad)
	}
	b.quads = append(b.quads, quad)
	return nil
}

// End submits the queued quads and finishes the batch. The batch is
// finished even if the paint engine fails.
func (b *SpriteBatch) End() error {
	if !b.isActive {
		return ErrBatchNotActive
	}
	defer func() {
		b.quads = b.quads[:0]
		b.isActive = false
	}()

	b.sortQuads()
	for _, quad := range b.quads {
		if err := b.paintEngine.DrawQuad(quad); err != nil {
			return err
		}
	}
	return nil
}

func (b *SpriteBatch) sortQuads() {
	switch b.sortMode {
	case SortTexture:
		b.sortByTexture()
	case SortBackToFront:
		sort.SliceStable(b.quads, func(i, j int) bool {
			return b.quads[i].LayerDepth > b.quads[j].LayerDepth
		})
	case SortFrontToBack:
		sort.SliceStable(b.quads, func(i, j int) bool {
			return b.quads[i].LayerDepth < b.quads[j].LayerDepth
		})
	}
}

// sortByTexture groups the queued quads by texture in order of first use.
func (b *SpriteBatch) sortByTexture() {
	groups := make(map[Texture]int)
	keyed := make([]textureGroupedQuad, len(b.quads))
	for i, quad := range b.quads {
		group := i
		if isComparableTexture(quad.Texture) {
			if first, ok := groups[quad.Texture]; ok {
				group = first
			} else {
				groups[quad.Texture] = i
			}
		}
		keyed[i] = textureGroupedQuad{group, quad}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].group < keyed[j].group
	})
	for i := range keyed {
		b.quads[i] = keyed[i].quad
	}
}

type textureGroupedQuad struct {
	group int
	quad  Quad
}
