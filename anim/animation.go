package anim

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrNoFrames is returned when an animation is built without frames.
var ErrNoFrames = errors.New("anim: animation needs at least one frame")

// Status reports whether an animation advances on Update.
type Status int

const (
	Playing Status = iota
	Paused
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// LoopFunc is called from Update each time the animation wraps around.
// loops is the number of whole cycles crossed in that update; it is
// negative when the animation is rewound past its start.
type LoopFunc func(a *Animation, loops int)

var (
	// PauseAtEndOnLoop turns a looping animation into a play-once one
	// that rests on its last frame.
	PauseAtEndOnLoop LoopFunc = func(a *Animation, _ int) { a.PauseAtEnd() }
	// PauseAtStartOnLoop plays once and rests on the first frame.
	PauseAtStartOnLoop LoopFunc = func(a *Animation, _ int) { a.PauseAtStart() }
)

// FrameFunc is called from Update whenever the shown frame changes.
type FrameFunc func(a *Animation, position int)

// Option configures an Animation.
type Option func(*Animation)

// WithOnLoop sets the loop callback.
func WithOnLoop(fn LoopFunc) Option {
	return func(a *Animation) { a.onLoop = fn }
}

// WithOnFrame sets a callback fired when Update moves to another frame.
func WithOnFrame(fn FrameFunc) Option {
	return func(a *Animation) { a.onFrame = fn }
}

// Animation is a sequence of frames that are swapped as time passes.
// It is not safe for concurrent use; update and draw it from one goroutine.
type Animation struct {
	frames    []*Frame
	durations []time.Duration
	// starts[i] is the offset at which frame i begins.
	starts []time.Duration
	total  time.Duration

	timer    time.Duration
	position int
	status   Status

	flippedH bool
	flippedV bool
	onLoop   LoopFunc
	onFrame  FrameFunc
}

// NewAnimation creates a playing animation positioned on its first frame.
func NewAnimation(frames []*Frame, durations Durations, opts ...Option) (*Animation, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	for i, f := range frames {
		if f == nil {
			return nil, fmt.Errorf("anim: frame %d is nil", i+1)
		}
	}
	if durations == nil {
		return nil, fmt.Errorf("%w: no durations given", ErrInvalidDuration)
	}
	ds, err := durations.Resolve(len(frames))
	if err != nil {
		return nil, err
	}
	return newAnimation(frames, ds, opts...), nil
}

func newAnimation(frames []*Frame, ds []time.Duration, opts ...Option) *Animation {
	a := &Animation{
		frames:    append([]*Frame(nil), frames...),
		durations: append([]time.Duration(nil), ds...),
		starts:    make([]time.Duration, len(ds)),
		status:    Playing,
	}
	for i, d := range ds {
		a.starts[i] = a.total
		a.total += d
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Update advances the animation by dt and selects the matching frame.
func (a *Animation) Update(dt time.Duration) {
	if a == nil || a.status != Playing {
		return
	}

	prev := a.position
	defer func() {
		if a.onFrame != nil && a.position != prev {
			a.onFrame(a, a.position)
		}
	}()

	a.timer += dt
	loops := floorDiv(a.timer, a.total)
	if loops != 0 {
		a.timer -= a.total * time.Duration(loops)
		if a.onLoop != nil {
			a.onLoop(a, loops)
		}
		// The callback may have paused or moved the animation.
		if a.status != Playing {
			return
		}
	}
	a.position = a.seek(a.timer)
}

// Draw hands the current frame to d at (x, y).
func (a *Animation) Draw(d Drawer, x, y float64) {
	if a == nil || d == nil {
		return
	}
	d.DrawFrame(DrawParams{
		Frame: a.Frame(),
		X:     x,
		Y:     y,
		FlipH: a.flippedH,
		FlipV: a.flippedV,
	})
}

// Clone returns a copy sharing frames, durations, callbacks and flips,
// rewound to its first frame and playing. Callbacks are the same
// functions, so any state they close over is shared with the original;
// pass opts to give the clone its own.
func (a *Animation) Clone(opts ...Option) *Animation {
	if a == nil {
		return nil
	}
	opts = append([]Option{WithOnLoop(a.onLoop), WithOnFrame(a.onFrame)}, opts...)
	c := newAnimation(a.frames, a.durations, opts...)
	c.flippedH = a.flippedH
	c.flippedV = a.flippedV
	return c
}

// Frame returns the frame currently shown.
func (a *Animation) Frame() *Frame {
	if a == nil || len(a.frames) == 0 {
		return nil
	}
	return a.frames[a.position]
}

// Frames returns a copy of the frame sequence.
func (a *Animation) Frames() []*Frame { return append([]*Frame(nil), a.frames...) }

// Durations returns a copy of the per-frame durations.
func (a *Animation) Durations() []time.Duration {
	return append([]time.Duration(nil), a.durations...)
}

// Len returns the number of frames.
func (a *Animation) Len() int { return len(a.frames) }

// Position returns the zero-based index of the current frame.
func (a *Animation) Position() int { return a.position }

// Timer returns the elapsed time within the current cycle.
func (a *Animation) Timer() time.Duration { return a.timer }

// TotalDuration returns the length of one cycle.
func (a *Animation) TotalDuration() time.Duration { return a.total }

// Status reports whether the animation is playing.
func (a *Animation) Status() Status { return a.status }

// GotoFrame moves to the zero-based frame i and rewinds the timer to its start.
func (a *Animation) GotoFrame(i int) error {
	if i < 0 || i >= len(a.frames) {
		return fmt.Errorf("%w: frame %d of %d", ErrFrameOutOfRange, i, len(a.frames))
	}
	a.position = i
	a.timer = a.starts[i]
	return nil
}

// Pause stops the animation from updating.
func (a *Animation) Pause() { a.status = Paused }

// Resume unpauses the animation.
func (a *Animation) Resume() { a.status = Playing }

// PauseAtEnd moves to the last frame and pauses.
func (a *Animation) PauseAtEnd() {
	a.position = len(a.frames) - 1
	a.timer = a.total
	a.Pause()
}

// PauseAtStart moves to the first frame and pauses.
func (a *Animation) PauseAtStart() {
	a.position = 0
	a.timer = 0
	a.Pause()
}

// FlipH toggles horizontal flipping. Only drawing is affected.
func (a *Animation) FlipH() *Animation {
	a.flippedH = !a.flippedH
	return a
}

// FlipV toggles vertical flipping.
func (a *Animation) FlipV() *Animation {
	a.flippedV = !a.flippedV
	return a
}

func (a *Animation) FlippedH() bool { return a.flippedH }
func (a *Animation) FlippedV() bool { return a.flippedV }

// seek returns the index of the frame whose start offset is the largest one <= t.
func (a *Animation) seek(t time.Duration) int {
	i := sort.Search(len(a.starts), func(i int) bool { return a.starts[i] > t }) - 1
	if i < 0 {
		return 0
	}
	return i
}

func floorDiv(t, total time.Duration) int {
	q := t / total
	if t < 0 && t%total != 0 {
		q--
	}
	return int(q)
}
