package anim

import "image"

// Frame is a rectangular region of a sprite sheet.
type Frame struct {
	X      int
	Y      int
	Width  int
	Height int

	// SheetWidth and SheetHeight are the size of the full sheet, for
	// backends that address frames in normalized coordinates.
	SheetWidth  int
	SheetHeight int
}

// Viewport returns the frame's region in sheet pixel coordinates.
func (f *Frame) Viewport() image.Rectangle {
	if f == nil {
		return image.Rectangle{}
	}
	return image.Rect(f.X, f.Y, f.X+f.Width, f.Y+f.Height)
}
