package render

import (
	"math"
	"testing"

	"github.com/milk9111/anim8/anim"
)

func TestFrameGeoM(t *testing.T) {
	frame := &anim.Frame{X: 64, Y: 32, Width: 32, Height: 16}

	cases := []struct {
		name   string
		params anim.DrawParams
		scale  float64
		// where the frame's local top-left and bottom-right corners land
		tl, br [2]float64
	}{
		{"plain", anim.DrawParams{Frame: frame, X: 10, Y: 20}, 0, [2]float64{10, 20}, [2]float64{42, 36}},
		{"scaled", anim.DrawParams{Frame: frame, X: 10, Y: 20}, 2, [2]float64{10, 20}, [2]float64{74, 52}},
		{"flip_h", anim.DrawParams{Frame: frame, X: 10, Y: 20, FlipH: true}, 1, [2]float64{42, 20}, [2]float64{10, 36}},
		{"flip_v", anim.DrawParams{Frame: frame, X: 10, Y: 20, FlipV: true}, 1, [2]float64{10, 36}, [2]float64{42, 20}},
		{"flip_both_scaled", anim.DrawParams{Frame: frame, FlipH: true, FlipV: true}, 3, [2]float64{96, 48}, [2]float64{0, 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := FrameGeoM(c.params, c.scale)
			x, y := m.Apply(0, 0)
			if !near(x, c.tl[0]) || !near(y, c.tl[1]) {
				t.Fatalf("top-left: expected %v, got %v,%v", c.tl, x, y)
			}
			x, y = m.Apply(float64(frame.Width), float64(frame.Height))
			if !near(x, c.br[0]) || !near(y, c.br[1]) {
				t.Fatalf("bottom-right: expected %v, got %v,%v", c.br, x, y)
			}
		})
	}
}

func TestSheetDrawerIgnoresIncompleteSetup(t *testing.T) {
	var nilDrawer *SheetDrawer
	nilDrawer.DrawFrame(anim.DrawParams{Frame: &anim.Frame{Width: 1, Height: 1}})

	d := &SheetDrawer{}
	d.DrawFrame(anim.DrawParams{})
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
