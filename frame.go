package atlas

// Transition names the frames to play when leaving a frame for another animation.
// An empty FrameSeriesName switches directly.
type Transition struct {
	DestAnimationName string
	FrameSeriesName   string
}

// Frame contains a set of operations for drawing.
type Frame struct {
	DrawOperations []DrawOperation
	Transitions    []Transition
}

// FrameSeries is a named sequence of frames.
type FrameSeries struct {
	Name   string
	Frames []Frame
}

// Animation binds a name to the frame series played in a loop.
type Animation struct {
	Name            string
	FrameSeriesName string
}

// Animations is a set of animations.
type Animations []Animation

// Draw draws all operations of the frame.
func (frame *Frame) Draw(batch Batch) error {
	for _, drawOperation := range frame.DrawOperations {
		err := drawOperation.Draw(batch)
		if err != nil {
			return err
		}
	}
	return nil
}

// IsTransitionFrame checks is frame transitional.
func (frame *Frame) IsTransitionFrame() bool {
	return frame.Transitions != nil
}

// GetSeriesForTransition returns the name of the series of frames that should
// be played to move to the destAnimationName.
func (frame *Frame) GetSeriesForTransition(destAnimationName string) (string, bool) {
	for _, transition := range frame.Transitions {
		if transition.DestAnimationName == destAnimationName {
			return transition.FrameSeriesName, true
		}
	}
	return "", false
}
