package atlas

type drawTextureOperation struct {
	top     Vector
	texture Texture
}

func (o *drawTextureOperation) Draw(batch Batch) error {
	return batch.DrawQuad(o.texture, o.top, o.texture.Bounds(), White, 0, Vector{}, Vec(1, 1), FlipNone, 0)
}

// NewDrawTextureOperation creates an operation to draw the whole texture,
// for example a background page.
func NewDrawTextureOperation(top Vector, texture Texture) DrawOperation {
	return &drawTextureOperation{
		top:     top,
		texture: texture,
	}
}
