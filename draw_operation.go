package atlas

// DrawOperation is interface to encapsulate the drawing operation
type DrawOperation interface {
	Draw(batch Batch) error
}
