package atlas

// FlipMode is a set of mirroring flags applied at draw time.
type FlipMode int

const (
	// FlipNone draws the region as is
	FlipNone FlipMode = 0
	// FlipHorizontal mirrors the region around its vertical axis
	FlipHorizontal FlipMode = 1 << 0
	// FlipVertical mirrors the region around its horizontal axis
	FlipVertical FlipMode = 1 << 1
	// FlipBoth mirrors the region in both directions
	FlipBoth = FlipHorizontal | FlipVertical
)

// Horizontal reports whether the horizontal flag is set.
func (f FlipMode) Horizontal() bool {
	return f&FlipHorizontal != 0
}

// Vertical reports whether the vertical flag is set.
func (f FlipMode) Vertical() bool {
	return f&FlipVertical != 0
}

func (f FlipMode) String() string {
	switch f {
	case FlipNone:
		return "none"
	case FlipHorizontal:
		return "horizontal"
	case FlipVertical:
		return "vertical"
	case FlipBoth:
		return "both"
	default:
		return "invalid"
	}
}

// ParseFlipMode converts a name produced by String back to a FlipMode.
func ParseFlipMode(name string) (FlipMode, bool) {
	for _, f := range []FlipMode{FlipNone, FlipHorizontal, FlipVertical, FlipBoth} {
		if f.String() == name {
			return f, true
		}
	}
	return FlipNone, false
}
