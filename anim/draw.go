package anim

// DrawParams is everything a backend needs to draw the current frame.
type DrawParams struct {
	Frame *Frame
	X, Y  float64
	FlipH bool
	FlipV bool
}

// Drawer is implemented by rendering backends. The animation never
// touches pixels itself.
type Drawer interface {
	DrawFrame(p DrawParams)
}

// DrawerFunc adapts a plain function to the Drawer interface.
type DrawerFunc func(p DrawParams)

// DrawFrame calls f(p).
func (f DrawerFunc) DrawFrame(p DrawParams) { f(p) }
