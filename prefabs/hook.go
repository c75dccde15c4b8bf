package prefabs

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/anim8/anim"
)

// Actions a loop script may request by assigning to `action`.
const (
	LoopActionNone         = ""
	LoopActionPause        = "pause"
	LoopActionPauseAtEnd   = "pause_at_end"
	LoopActionPauseAtStart = "pause_at_start"
	LoopActionGoto         = "goto"
)

// LoopScript runs a tengo script every time an animation loops.
//
// The script sees `loops` (cycles crossed), `position` (1-based frame
// shown before the wrap), `frames` (frame count) and a `state` map that
// persists between runs. It may set `action` to one of the LoopAction
// values and, for "goto", `goto_frame` (1-based).
type LoopScript struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// LoadLoopScript compiles an embedded (or on-disk) script under scripts/.
func LoadLoopScript(path string) (*LoopScript, error) {
	src, err := LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return NewLoopScript(path, src)
}

// NewLoopScript compiles src. path is only used in log messages.
func NewLoopScript(path string, src []byte) (*LoopScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("loops", 0)
	_ = script.Add("position", 0)
	_ = script.Add("frames", 0)
	_ = script.Add("state", map[string]any{})
	_ = script.Add("action", LoopActionNone)
	_ = script.Add("goto_frame", 0)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile script %s: %w", path, err)
	}
	return &LoopScript{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Clone returns a copy of the script with its own globals and an empty
// state map. The compiled bytecode is shared.
func (s *LoopScript) Clone() *LoopScript {
	if s == nil || s.compiled == nil {
		return s
	}
	return &LoopScript{
		path:     s.path,
		compiled: s.compiled.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
}

// Run executes the script once and returns the requested action.
func (s *LoopScript) Run(loops, position, frames int) (action string, gotoFrame int, err error) {
	if s == nil || s.compiled == nil {
		return "", 0, fmt.Errorf("nil loop script")
	}
	vars := map[string]any{
		"loops":      loops,
		"position":   position,
		"frames":     frames,
		"state":      s.state,
		"action":     LoopActionNone,
		"goto_frame": 0,
	}
	for name, v := range vars {
		if err := s.compiled.Set(name, v); err != nil {
			return "", 0, err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return "", 0, err
	}
	action = strings.TrimSpace(s.compiled.Get("action").String())
	gotoFrame = s.compiled.Get("goto_frame").Int()
	return action, gotoFrame, nil
}

// Hook adapts the script to an anim.LoopFunc. Script errors are logged and
// leave the animation playing.
func (s *LoopScript) Hook() anim.LoopFunc {
	return func(a *anim.Animation, loops int) {
		action, gotoFrame, err := s.Run(loops, a.Position()+1, a.Len())
		if err != nil {
			log.Printf("prefabs: loop script %s: %v", s.path, err)
			return
		}
		if err := applyLoopAction(a, action, gotoFrame); err != nil {
			log.Printf("prefabs: loop script %s: %v", s.path, err)
		}
	}
}

func applyLoopAction(a *anim.Animation, action string, gotoFrame int) error {
	switch action {
	case LoopActionNone:
	case LoopActionPause:
		a.Pause()
	case LoopActionPauseAtEnd:
		a.PauseAtEnd()
	case LoopActionPauseAtStart:
		a.PauseAtStart()
	case LoopActionGoto:
		return a.GotoFrame(gotoFrame - 1)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}
