package anim

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func stripFrames(t *testing.T, n int) []*Frame {
	t.Helper()
	g, err := NewGrid(8, 8, 8*n, 8)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}
	frames, err := g.Frames(fmt.Sprintf("1-%d", n), 1)
	if err != nil {
		t.Fatalf("Frames error: %v", err)
	}
	return frames
}

func mustAnimation(t *testing.T, frames []*Frame, d Durations, opts ...Option) *Animation {
	t.Helper()
	a, err := NewAnimation(frames, d, opts...)
	if err != nil {
		t.Fatalf("NewAnimation error: %v", err)
	}
	return a
}

func TestAnimationUpdatePosition(t *testing.T) {
	a := mustAnimation(t, stripFrames(t, 3), PerFrame{100 * ms, 200 * ms, 300 * ms})

	steps := []struct {
		dt   time.Duration
		want int
	}{
		{0, 0},
		{50 * ms, 0},
		{50 * ms, 1}, // exactly on a boundary shows the next frame
		{199 * ms, 1},
		{1 * ms, 2},
		{299 * ms, 2},
		{1 * ms, 0}, // wrapped
		{250 * ms, 1},
	}

	for i, s := range steps {
		a.Update(s.dt)
		if a.Position() != s.want {
			t.Fatalf("step %d: expected position %d, got %d (timer %v)", i, s.want, a.Position(), a.Timer())
		}
	}
}

func TestAnimationLoopInvariant(t *testing.T) {
	cases := []struct {
		name  string
		d     Durations
		n     int
		start int
	}{
		{"uniform", Uniform(100 * ms), 4, 0},
		{"per_frame", PerFrame{10 * ms, 70 * ms, 30 * ms}, 3, 1},
		{"ranged", Ranged{"1": time.Second, "2-5": 100 * ms}, 5, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var loops []int
			a := mustAnimation(t, stripFrames(t, c.n), c.d, WithOnLoop(func(_ *Animation, n int) {
				loops = append(loops, n)
			}))
			if err := a.GotoFrame(c.start); err != nil {
				t.Fatalf("GotoFrame error: %v", err)
			}
			a.Update(a.TotalDuration())
			if a.Position() != c.start {
				t.Fatalf("expected to return to frame %d, got %d", c.start, a.Position())
			}
			if len(loops) != 1 || loops[0] != 1 {
				t.Fatalf("expected one loop callback with 1, got %v", loops)
			}

			a.Update(3 * a.TotalDuration())
			if a.Position() != c.start {
				t.Fatalf("expected frame %d after three cycles, got %d", c.start, a.Position())
			}
			if len(loops) != 2 || loops[1] != 3 {
				t.Fatalf("expected a 3-loop callback, got %v", loops)
			}
		})
	}
}

func TestAnimationRewind(t *testing.T) {
	var got int
	a := mustAnimation(t, stripFrames(t, 4), Uniform(100*ms), WithOnLoop(func(_ *Animation, n int) { got = n }))

	a.Update(-50 * ms)
	if got != -1 {
		t.Fatalf("expected loops -1, got %d", got)
	}
	if a.Timer() != 350*ms || a.Position() != 3 {
		t.Fatalf("expected timer 350ms on frame 3, got %v on %d", a.Timer(), a.Position())
	}
}

func TestAnimationPauseResume(t *testing.T) {
	a := mustAnimation(t, stripFrames(t, 3), Uniform(100*ms))

	a.Update(150 * ms)
	a.Pause()
	a.Update(time.Second)
	if a.Status() != Paused || a.Position() != 1 || a.Timer() != 150*ms {
		t.Fatalf("paused animation moved: %v pos=%d timer=%v", a.Status(), a.Position(), a.Timer())
	}

	a.Resume()
	a.Update(100 * ms)
	if a.Status() != Playing || a.Position() != 2 {
		t.Fatalf("expected playing on frame 2, got %v on %d", a.Status(), a.Position())
	}

	a.PauseAtEnd()
	if a.Position() != 2 || a.Timer() != a.TotalDuration() || a.Status() != Paused {
		t.Fatalf("PauseAtEnd: pos=%d timer=%v status=%v", a.Position(), a.Timer(), a.Status())
	}

	a.PauseAtStart()
	if a.Position() != 0 || a.Timer() != 0 || a.Status() != Paused {
		t.Fatalf("PauseAtStart: pos=%d timer=%v status=%v", a.Position(), a.Timer(), a.Status())
	}
}

func TestAnimationPlayOnce(t *testing.T) {
	a := mustAnimation(t, stripFrames(t, 3), Uniform(100*ms), WithOnLoop(PauseAtEndOnLoop))

	a.Update(250 * ms)
	if a.Position() != 2 {
		t.Fatalf("expected frame 2, got %d", a.Position())
	}
	a.Update(100 * ms)
	if a.Status() != Paused || a.Position() != 2 {
		t.Fatalf("expected to rest on the last frame, got %v on %d", a.Status(), a.Position())
	}

	b := mustAnimation(t, stripFrames(t, 3), Uniform(100*ms), WithOnLoop(PauseAtStartOnLoop))
	b.Update(350 * ms)
	if b.Status() != Paused || b.Position() != 0 {
		t.Fatalf("expected to rest on the first frame, got %v on %d", b.Status(), b.Position())
	}
}

func TestAnimationGotoFrame(t *testing.T) {
	a := mustAnimation(t, stripFrames(t, 3), PerFrame{100 * ms, 200 * ms, 300 * ms})

	if err := a.GotoFrame(2); err != nil {
		t.Fatalf("GotoFrame error: %v", err)
	}
	if a.Position() != 2 || a.Timer() != 300*ms {
		t.Fatalf("expected frame 2 at 300ms, got %d at %v", a.Position(), a.Timer())
	}
	for _, i := range []int{-1, 3} {
		if err := a.GotoFrame(i); !errors.Is(err, ErrFrameOutOfRange) {
			t.Fatalf("GotoFrame(%d): expected ErrFrameOutOfRange, got %v", i, err)
		}
	}
}

func TestAnimationDraw(t *testing.T) {
	frames := stripFrames(t, 3)
	a := mustAnimation(t, frames, Uniform(100*ms))
	a.FlipH()
	a.Update(120 * ms)

	var got []DrawParams
	a.Draw(DrawerFunc(func(p DrawParams) { got = append(got, p) }), 10, 20)

	if len(got) != 1 {
		t.Fatalf("expected one draw call, got %d", len(got))
	}
	p := got[0]
	if p.Frame != frames[1] || p.X != 10 || p.Y != 20 || !p.FlipH || p.FlipV {
		t.Fatalf("unexpected draw params %+v", p)
	}
}

func TestAnimationClone(t *testing.T) {
	calls := 0
	a := mustAnimation(t, stripFrames(t, 2), Uniform(100*ms), WithOnLoop(func(*Animation, int) { calls++ }))
	a.FlipV().FlipH().FlipH()
	a.Update(150 * ms)
	a.Pause()

	c := a.Clone()
	if c.Position() != 0 || c.Timer() != 0 || c.Status() != Playing {
		t.Fatalf("clone should be rewound and playing, got pos=%d timer=%v status=%v", c.Position(), c.Timer(), c.Status())
	}
	if !c.FlippedV() || c.FlippedH() {
		t.Fatalf("clone should keep flips")
	}
	if c.TotalDuration() != a.TotalDuration() || c.Len() != a.Len() {
		t.Fatalf("clone should keep frames and durations")
	}
	c.Update(200 * ms)
	if calls != 1 {
		t.Fatalf("clone should keep the loop callback, got %d calls", calls)
	}
	if a.Position() != 1 {
		t.Fatalf("updating the clone moved the original")
	}
}

func TestAnimationCloneReplacesCallbacks(t *testing.T) {
	origCalls, cloneCalls := 0, 0
	a := mustAnimation(t, stripFrames(t, 2), Uniform(100*ms), WithOnLoop(func(*Animation, int) { origCalls++ }))

	c := a.Clone(WithOnLoop(func(*Animation, int) { cloneCalls++ }))
	c.Update(200 * ms)
	if origCalls != 0 || cloneCalls != 1 {
		t.Fatalf("expected only the clone callback, got original=%d clone=%d", origCalls, cloneCalls)
	}

	a.Update(200 * ms)
	if origCalls != 1 || cloneCalls != 1 {
		t.Fatalf("expected the original callback to stay, got original=%d clone=%d", origCalls, cloneCalls)
	}
}

func TestNewAnimationRejects(t *testing.T) {
	frames := stripFrames(t, 2)

	cases := []struct {
		name   string
		frames []*Frame
		d      Durations
		want   error
	}{
		{"no_frames", nil, Uniform(ms), ErrNoFrames},
		{"zero_duration", frames, Uniform(0), ErrInvalidDuration},
		{"negative_duration", frames, PerFrame{ms, -ms}, ErrInvalidDuration},
		{"nil_durations", frames, nil, ErrInvalidDuration},
		{"count_mismatch", frames, PerFrame{ms}, ErrDurationCount},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewAnimation(c.frames, c.d); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestAnimationOnFrame(t *testing.T) {
	var seen []int
	a := mustAnimation(t, stripFrames(t, 3), Uniform(100*ms), WithOnFrame(func(_ *Animation, pos int) {
		seen = append(seen, pos)
	}))

	a.Update(50 * ms)  // still frame 0
	a.Update(60 * ms)  // frame 1
	a.Update(100 * ms) // frame 2
	a.Update(100 * ms) // wrapped to frame 0
	a.Update(300 * ms) // a whole cycle lands back on frame 0

	want := []int{1, 2, 0}
	if len(seen) != len(want) {
		t.Fatalf("expected frame changes %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected frame changes %v, got %v", want, seen)
		}
	}
}
