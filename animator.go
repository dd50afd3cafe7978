package atlas

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type animationState int

const (
	// Loop playback of current animation frames
	asPlayCurrentAnimation animationState = iota
	// Initialized animation change
	asInitChangeAnimation
	// Play frames of the current animation and look for a transition frame
	asFindTransitionFrame
	// Play a series of transition frames to move to the next animation
	asTransitionToNextAnimation
)

const defaultFrameRate = 25

var (
	// ErrAnimatorRunning is returned by Start on a running animator.
	ErrAnimatorRunning = errors.New("Animator is already running")
	// ErrAnimatorNotRunning is returned by ChangeAnimation on a stopped animator.
	ErrAnimatorNotRunning = errors.New("Animator is not running")
	// ErrAnimationChangeInProgress is returned when ChangeAnimation is called
	// while another change has not finished.
	ErrAnimationChangeInProgress = errors.New("Animator is already making a animation change")
	// ErrAnimatorStopped is returned by a pending ChangeAnimation when the animator stops.
	ErrAnimatorStopped = errors.New("Animator has been stopped")
)

// Animator plays frame series on a paint engine through a SpriteBatch.
type Animator struct {
	paintEngine    PaintEngine
	batch          *SpriteBatch
	animations     Animations
	allFrameSeries []FrameSeries

	frameRate int
	sortMode  SortMode
	log       logrus.FieldLogger

	mutex                 sync.Mutex
	isRunning             bool
	done                  chan struct{}
	animationName         string
	nextAnimationName     string
	changePending         bool
	animationChangedCond  *sync.Cond
	animationChangedError error

	state animationState

	playedFrames []Frame
	nextFrameNum int
	shownFrame   *Frame

	tryInitTransitionCounter int
}

// NewAnimator creates new Animator
func NewAnimator(paintEngine PaintEngine, animations Animations, allFrameSeries []FrameSeries) (*Animator, error) {
	if paintEngine == nil {
		return nil, errors.New("PaintEngine is nil")
	}

	animator := &Animator{
		paintEngine:    paintEngine,
		batch:          NewSpriteBatch(paintEngine),
		animations:     animations,
		allFrameSeries: allFrameSeries,
		frameRate:      defaultFrameRate,
		sortMode:       SortDeferred,
		log:            Logger().WithField("component", "animator"),
		state:          asPlayCurrentAnimation,
	}
	animator.animationChangedCond = sync.NewCond(&animator.mutex)
	return animator, nil
}

// SetFrameRate sets the number of frames per second. It takes effect on the next Start.
func (animator *Animator) SetFrameRate(frameRate int) error {
	if frameRate <= 0 || frameRate > 1000 {
		return fmt.Errorf("Invalid frame rate %d", frameRate)
	}
	animator.mutex.Lock()
	animator.frameRate = frameRate
	animator.mutex.Unlock()
	return nil
}

// SetSortMode sets the sort mode of the batch used to draw frames.
func (animator *Animator) SetSortMode(sortMode SortMode) {
	animator.mutex.Lock()
	animator.sortMode = sortMode
	animator.mutex.Unlock()
}

// GetAnimationNames gets animation names
func (animator *Animator) GetAnimationNames() []string {
	animationNames := make([]string, 0, len(animator.animations))
	for _, animation := range animator.animations {
		animationNames = append(animationNames, animation.Name)
	}
	return animationNames
}

// AnimationName returns the name of the animation being played.
func (animator *Animator) AnimationName() string {
	animator.mutex.Lock()
	defer animator.mutex.Unlock()
	return animator.animationName
}

// Start drawing
func (animator *Animator) Start(initAnimationName string) error {
	animator.mutex.Lock()
	defer animator.mutex.Unlock()

	if animator.isRunning {
		return ErrAnimatorRunning
	}

	err := animator.setAnimation(initAnimationName)
	if err != nil {
		return err
	}

	animator.isRunning = true
	animator.done = make(chan struct{})
	go animator.doDraw(animator.frameRate, animator.done)
	return nil
}

// Stop drawing. Stop waits for the frame being drawn.
func (animator *Animator) Stop() {
	animator.mutex.Lock()
	if !animator.isRunning {
		animator.mutex.Unlock()
		return
	}
	animator.isRunning = false
	if animator.changePending {
		animator.finishChangeAnimation(ErrAnimatorStopped)
	}
	done := animator.done
	animator.mutex.Unlock()

	<-done
}

// ChangeAnimation changes the current animation. It blocks until the
// transition frames have been played or the change failed.
func (animator *Animator) ChangeAnimation(nextAnimationName string) error {
	animator.mutex.Lock()
	defer animator.mutex.Unlock()

	if !animator.isRunning {
		return ErrAnimatorNotRunning
	}

	if animator.changePending || animator.state != asPlayCurrentAnimation {
		return ErrAnimationChangeInProgress
	}

	if animator.animationName == nextAnimationName {
		return nil
	}

	animator.nextAnimationName = nextAnimationName
	animator.changePending = true
	animator.state = asInitChangeAnimation
	for animator.changePending {
		animator.animationChangedCond.Wait()
	}
	animator.nextAnimationName = ""

	return animator.animationChangedError
}

func (animator *Animator) doDraw(frameRate int, done chan struct{}) {
	defer close(done)

	droppedFrameCount := 0
	showFrameDuration := time.Second / time.Duration(frameRate)
	showNextFrameTime := time.Now()
	for {
		frame, sortMode := animator.getCurrentFrame()
		if frame == nil {
			break
		}

		showNextFrameTime = showNextFrameTime.Add(showFrameDuration)
		if time.Until(showNextFrameTime) <= 0 {
			droppedFrameCount++
			if droppedFrameCount%100 == 0 {
				animator.log.WithField("dropped", droppedFrameCount).Warn("Frames dropped")
			}
			continue
		}

		if err := animator.drawFrame(frame, sortMode); err != nil {
			animator.log.WithError(err).Error("Failed to draw frame")
		}
		time.Sleep(time.Until(showNextFrameTime))
	}
}

func (animator *Animator) drawFrame(frame *Frame, sortMode SortMode) error {
	if err := animator.paintEngine.Begin(); err != nil {
		return err
	}
	if err := animator.batch.Begin(sortMode); err != nil {
		animator.paintEngine.End()
		return err
	}

	drawErr := frame.Draw(animator.batch)
	batchErr := animator.batch.End()
	endErr := animator.paintEngine.End()
	return errors.Join(drawErr, batchErr, endErr)
}

func (animator *Animator) getCurrentFrame() (*Frame, SortMode) {
	animator.mutex.Lock()
	defer animator.mutex.Unlock()

	if !animator.isRunning {
		return nil, animator.sortMode
	}

	var frame *Frame
	switch animator.state {
	case asPlayCurrentAnimation:
		frame = animator.getCurrentAnimationFrame()
	case asInitChangeAnimation:
		animator.state = asFindTransitionFrame
		animator.tryInitTransitionCounter = 0
		frame = animator.tryInitTransitionToNextAnimation()
	case asFindTransitionFrame:
		frame = animator.tryInitTransitionToNextAnimation()
	default:
		frame = animator.getCurrentTransitionFrame()
	}
	animator.shownFrame = frame
	return frame, animator.sortMode
}

func (animator *Animator) getCurrentAnimationFrame() *Frame {
	frame := &animator.playedFrames[animator.nextFrameNum]
	animator.nextFrameNum = (animator.nextFrameNum + 1) % len(animator.playedFrames)
	return frame
}

func (animator *Animator) tryInitTransitionToNextAnimation() *Frame {
	animator.tryInitTransitionCounter++

	shownFrame := animator.shownFrame
	if shownFrame == nil || !shownFrame.IsTransitionFrame() {
		animator.checkFindTransitionFrameLooping()
		return animator.getCurrentAnimationFrame()
	}

	transitionFrameSeriesName, ok := shownFrame.GetSeriesForTransition(animator.nextAnimationName)
	if !ok {
		animator.checkFindTransitionFrameLooping()
		return animator.getCurrentAnimationFrame()
	}

	var transitionFrames []Frame
	if transitionFrameSeriesName != "" {
		// To go to the next animation, need to play transition frames
		transitionFrameSeries := animator.findFrameSeriesByName(transitionFrameSeriesName)
		if transitionFrameSeries == nil {
			err := fmt.Errorf("Could't find a series of frames named '%s'", transitionFrameSeriesName)
			animator.finishChangeAnimation(err)
			return animator.getCurrentAnimationFrame()
		}

		transitionFrames = transitionFrameSeries.Frames
	}

	animator.state = asTransitionToNextAnimation
	animator.playedFrames = transitionFrames
	animator.nextFrameNum = 0
	return animator.getCurrentTransitionFrame()
}

func (animator *Animator) getCurrentTransitionFrame() *Frame {
	if animator.nextFrameNum < len(animator.playedFrames) {
		frame := &animator.playedFrames[animator.nextFrameNum]
		animator.nextFrameNum++
		return frame
	}

	animator.finishChangeAnimation(nil)
	return animator.getCurrentAnimationFrame()
}

func (animator *Animator) checkFindTransitionFrameLooping() {
	if animator.tryInitTransitionCounter >= len(animator.playedFrames) {
		err := fmt.Errorf("Could't find a transition frame for switch transition from '%s' to '%s'",
			animator.animationName, animator.nextAnimationName)
		animator.finishChangeAnimation(err)
	}
}

func (animator *Animator) finishChangeAnimation(err error) {
	oldAnimation := animator.animationName

	if err == nil {
		err = animator.setAnimation(animator.nextAnimationName)
	}

	if err != nil {
		animator.setAnimation(oldAnimation)
		animator.log.WithError(err).WithField("animation", oldAnimation).Warn("Animation change failed")
	} else {
		animator.log.WithField("animation", animator.animationName).Debug("Animation changed")
	}

	animator.changePending = false
	animator.animationChangedError = err
	animator.animationChangedCond.Broadcast()
}

func (animator *Animator) setAnimation(animationName string) error {
	animation := animator.findAnimationByName(animationName)
	if animation == nil {
		return fmt.Errorf("Could't find a animation named '%s'", animationName)
	}

	frameSeries := animator.findFrameSeriesByName(animation.FrameSeriesName)
	if frameSeries == nil {
		return fmt.Errorf("Could't find a series of frames named '%s'", animation.FrameSeriesName)
	}

	if len(frameSeries.Frames) == 0 {
		return fmt.Errorf("The frame series for animation '%s' is empty", animationName)
	}

	animator.animationName = animationName
	animator.playedFrames = frameSeries.Frames
	animator.nextFrameNum = 0
	animator.state = asPlayCurrentAnimation
	return nil
}

func (animator *Animator) findFrameSeriesByName(frameSeriesName string) *FrameSeries {
	for i := range animator.allFrameSeries {
		if animator.allFrameSeries[i].Name == frameSeriesName {
			return &animator.allFrameSeries[i]
		}
	}
	return nil
}

func (animator *Animator) findAnimationByName(animationName string) *Animation {
	for i := range animator.animations {
		if animator.animations[i].Name == animationName {
			return &animator.animations[i]
		}
	}
	return nil
}
