package prefabs

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/milk9111/anim8/anim"
)

const (
	OnLoopPauseAtEnd   = "pause_at_end"
	OnLoopPauseAtStart = "pause_at_start"
)

// Sheet is a built SheetSpec: the grid plus ready-to-play animations.
type Sheet struct {
	Name       string
	Image      string
	Tint       color.Color
	Grid       *anim.Grid
	Animations map[string]*anim.Animation

	// scripts holds the loop script behind each scripted animation.
	scripts map[string]*LoopScript
}

// Clone returns an independent copy of the named animation, rewound and
// playing. A scripted on_loop hook gets its own script state, so loops of
// the copy never count towards the original.
func (s *Sheet) Clone(name string) (*anim.Animation, error) {
	if s == nil {
		return nil, fmt.Errorf("prefabs: nil sheet")
	}
	a, ok := s.Animations[name]
	if !ok {
		return nil, fmt.Errorf("prefabs: sheet %s has no animation %s", s.Name, name)
	}
	if script, ok := s.scripts[name]; ok {
		return a.Clone(anim.WithOnLoop(script.Clone().Hook())), nil
	}
	return a.Clone(), nil
}

// Names returns the animation names in sorted order.
func (s *Sheet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Animations))
	for name := range s.Animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build validates the spec and constructs its grid and animations.
func (s *SheetSpec) Build() (*Sheet, error) {
	if s == nil {
		return nil, fmt.Errorf("prefabs: nil sheet spec")
	}
	g := s.Grid
	grid, err := anim.NewGrid(g.FrameW, g.FrameH, g.SheetW, g.SheetH,
		anim.WithOffset(g.Left, g.Top), anim.WithBorder(g.Border))
	if err != nil {
		return nil, fmt.Errorf("prefabs: sheet %s: %w", s.Name, err)
	}

	sheet := &Sheet{
		Name:       s.Name,
		Image:      s.Image,
		Grid:       grid,
		Animations: make(map[string]*anim.Animation, len(s.Animations)),
		scripts:    make(map[string]*LoopScript),
	}
	if s.Tint != nil {
		sheet.Tint = s.Tint.Color
	}

	names := make([]string, 0, len(s.Animations))
	for name := range s.Animations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		a, script, err := s.Animations[name].build(grid)
		if err != nil {
			return nil, fmt.Errorf("prefabs: sheet %s animation %s: %w", s.Name, name, err)
		}
		sheet.Animations[name] = a
		if script != nil {
			sheet.scripts[name] = script
		}
	}
	return sheet, nil
}

func (a AnimationSpec) build(grid *anim.Grid) (*anim.Animation, *LoopScript, error) {
	frames, err := grid.Frames(a.Frames...)
	if err != nil {
		return nil, nil, err
	}
	durations, err := a.Durations.Durations()
	if err != nil {
		return nil, nil, err
	}

	var (
		opts   []anim.Option
		script *LoopScript
	)
	if a.OnLoop != "" {
		var hook anim.LoopFunc
		hook, script, err = loopHook(a.OnLoop)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, anim.WithOnLoop(hook))
	}

	out, err := anim.NewAnimation(frames, durations, opts...)
	if err != nil {
		return nil, nil, err
	}
	if a.FlipH {
		out.FlipH()
	}
	if a.FlipV {
		out.FlipV()
	}
	return out, script, nil
}

// loopHook resolves an on_loop value. The script is nil for the presets.
func loopHook(name string) (anim.LoopFunc, *LoopScript, error) {
	switch strings.TrimSpace(name) {
	case OnLoopPauseAtEnd:
		return anim.PauseAtEndOnLoop, nil, nil
	case OnLoopPauseAtStart:
		return anim.PauseAtStartOnLoop, nil, nil
	}
	if !isScriptFile(name) {
		return nil, nil, fmt.Errorf("unknown on_loop %q", name)
	}
	script, err := LoadLoopScript(name)
	if err != nil {
		return nil, nil, err
	}
	return script.Hook(), script, nil
}
