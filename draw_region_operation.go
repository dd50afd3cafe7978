package atlas

type drawRegionOperation struct {
	region   *TextureRegion
	position Vector
	opts     DrawOptions
}

func (o *drawRegionOperation) Draw(batch Batch) error {
	return o.region.DrawWith(batch, o.position, o.opts)
}

// NewDrawRegionOperation creates an operation to draw the region.
func NewDrawRegionOperation(region *TextureRegion, position Vector, opts DrawOptions) DrawOperation {
	return &drawRegionOperation{
		region:   region,
		position: position,
		opts:     opts,
	}
}
