package render

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/anim8/anim"
	"github.com/milk9111/anim8/prefabs"
)

// AnimationClip is an animation together with the sheet image it is cut from.
type AnimationClip struct {
	Sheet string
	Name  string
	Image string
	Tint  color.Color
	Anim  *anim.Animation
}

// AnimationLibrary stores animation clips by "sheet/name" key.
type AnimationLibrary struct {
	clips map[string]AnimationClip
}

// ClipKey builds the library key for an animation of a sheet.
func ClipKey(sheet, name string) string {
	return sheet + "/" + name
}

// NewAnimationLibrary creates an empty library.
func NewAnimationLibrary() *AnimationLibrary {
	return &AnimationLibrary{clips: make(map[string]AnimationClip)}
}

// Register adds an animation clip to the library.
func (l *AnimationLibrary) Register(key string, clip AnimationClip) {
	if l == nil || key == "" || clip.Anim == nil {
		return
	}
	l.clips[key] = clip
}

// RegisterSheet registers every animation of a built sheet, replacing
// clips left over from an earlier version of the same sheet.
func (l *AnimationLibrary) RegisterSheet(s *prefabs.Sheet) {
	if l == nil || s == nil {
		return
	}
	l.RemoveSheet(s.Name)
	for name, a := range s.Animations {
		l.Register(ClipKey(s.Name, name), AnimationClip{
			Sheet: s.Name,
			Name:  name,
			Image: s.Image,
			Tint:  s.Tint,
			Anim:  a,
		})
	}
}

// RemoveSheet drops every clip belonging to sheet.
func (l *AnimationLibrary) RemoveSheet(sheet string) {
	if l == nil {
		return
	}
	prefix := ClipKey(sheet, "")
	for key := range l.clips {
		if strings.HasPrefix(key, prefix) {
			delete(l.clips, key)
		}
	}
}

// Get returns an animation clip by key.
func (l *AnimationLibrary) Get(key string) (AnimationClip, bool) {
	if l == nil || key == "" {
		return AnimationClip{}, false
	}
	clip, ok := l.clips[key]
	return clip, ok
}

// Keys returns all clip keys in sorted order.
func (l *AnimationLibrary) Keys() []string {
	if l == nil {
		return nil
	}
	keys := make([]string, 0, len(l.clips))
	for key := range l.clips {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Update advances every clip by dt.
func (l *AnimationLibrary) Update(dt time.Duration) {
	if l == nil {
		return
	}
	for _, clip := range l.clips {
		clip.Anim.Update(dt)
	}
}

// UpdateSheet advances only the clips belonging to sheet.
func (l *AnimationLibrary) UpdateSheet(sheet string, dt time.Duration) {
	if l == nil {
		return
	}
	for _, clip := range l.clips {
		if clip.Sheet == sheet {
			clip.Anim.Update(dt)
		}
	}
}

// Draw draws the current frame of the clip at key onto target.
func (l *AnimationLibrary) Draw(target *ebiten.Image, key string, x, y, scale float64) error {
	clip, ok := l.Get(key)
	if !ok {
		return fmt.Errorf("unknown animation %q", key)
	}
	sheet, err := LoadImage(clip.Image)
	if err != nil {
		return err
	}
	clip.Anim.Draw(&SheetDrawer{Target: target, Sheet: sheet, Scale: scale, Tint: clip.Tint}, x, y)
	return nil
}
