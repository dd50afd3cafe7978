package atlas

import (
	"image"
	"reflect"
)

// Texture is an image resource with known pixel dimensions.
//
// Textures are shared: regions, atlases and paint engines hold references to
// them but never modify or free them. Every image.Image is a Texture.
//
// Batches group quads and atlases collect pages by texture identity, which
// is the == comparison of the texture values. Pointer textures such as
// *Pixmap and *image.RGBA compare by address. Textures of a type that cannot
// be compared (a struct value holding a slice, for example) are never equal
// to another texture, not even to a copy of themselves.
type Texture interface {
	Bounds() image.Rectangle
}

func isComparableTexture(t Texture) bool {
	return t == nil || reflect.TypeOf(t).Comparable()
}

// sameTexture reports whether a and b are the same texture without
// panicking on textures that cannot be compared.
func sameTexture(a, b Texture) bool {
	if !isComparableTexture(a) || !isComparableTexture(b) {
		return false
	}
	return a == b
}
