package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/anim8/anim"
)

// SheetDrawer draws animation frames cut from Sheet onto Target.
type SheetDrawer struct {
	Target *ebiten.Image
	Sheet  *ebiten.Image
	// Scale applies uniformly to both axes; zero means 1.
	Scale float64
	// Tint multiplies the frame colors when set.
	Tint color.Color
}

// DrawFrame implements anim.Drawer.
func (d *SheetDrawer) DrawFrame(p anim.DrawParams) {
	if d == nil || d.Target == nil || d.Sheet == nil || p.Frame == nil {
		return
	}
	sub, ok := d.Sheet.SubImage(p.Frame.Viewport()).(*ebiten.Image)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM = FrameGeoM(p, d.Scale)
	op.Filter = ebiten.FilterNearest
	if d.Tint != nil {
		op.ColorScale.ScaleWithColor(d.Tint)
	}
	d.Target.DrawImage(sub, op)
}

// FrameGeoM places a frame at (p.X, p.Y), mirrored inside its own bounds
// when flipped, so a flipped frame covers the same screen rectangle.
func FrameGeoM(p anim.DrawParams, scale float64) ebiten.GeoM {
	var m ebiten.GeoM
	if p.Frame == nil {
		return m
	}
	if scale == 0 {
		scale = 1
	}
	w, h := float64(p.Frame.Width), float64(p.Frame.Height)
	if p.FlipH {
		m.Scale(-1, 1)
		m.Translate(w, 0)
	}
	if p.FlipV {
		m.Scale(1, -1)
		m.Translate(0, h)
	}
	m.Scale(scale, scale)
	m.Translate(p.X, p.Y)
	return m
}
