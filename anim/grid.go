package anim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrid is returned by NewGrid for impossible geometry.
	ErrInvalidGrid = errors.New("anim: invalid grid")
	// ErrFrameOutOfRange is returned when a cell or frame index is outside its bounds.
	ErrFrameOutOfRange = errors.New("anim: frame out of range")
)

// Grid slices a sprite sheet into equally sized cells laid out in rows
// and columns. Cell 1,1 is the first column of the first row.
type Grid struct {
	FrameWidth  int
	FrameHeight int
	SheetWidth  int
	SheetHeight int
	Left        int
	Top         int
	Border      int

	// Cols and Rows are the number of cells along each axis.
	Cols int
	Rows int

	frames map[cell]*Frame
}

type cell struct{ col, row int }

// GridOption configures optional grid geometry.
type GridOption func(*Grid)

// WithOffset moves the grid origin to (left, top) within the sheet.
func WithOffset(left, top int) GridOption {
	return func(g *Grid) {
		g.Left = left
		g.Top = top
	}
}

// WithBorder sets the gap in pixels between neighbouring cells.
func WithBorder(border int) GridOption {
	return func(g *Grid) { g.Border = border }
}

// NewGrid creates a grid of frameW x frameH cells over a sheetW x sheetH image.
func NewGrid(frameW, frameH, sheetW, sheetH int, opts ...GridOption) (*Grid, error) {
	if frameW <= 0 || frameH <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d", ErrInvalidGrid, frameW, frameH)
	}
	if sheetW <= 0 || sheetH <= 0 {
		return nil, fmt.Errorf("%w: sheet size %dx%d", ErrInvalidGrid, sheetW, sheetH)
	}

	g := &Grid{
		FrameWidth:  frameW,
		FrameHeight: frameH,
		SheetWidth:  sheetW,
		SheetHeight: sheetH,
		frames:      make(map[cell]*Frame),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if g.Left < 0 || g.Top < 0 || g.Border < 0 {
		return nil, fmt.Errorf("%w: negative offset or border", ErrInvalidGrid)
	}

	g.Cols = sheetW / frameW
	g.Rows = sheetH / frameH
	if g.Cols == 0 || g.Rows == 0 {
		return nil, fmt.Errorf("%w: sheet %dx%d smaller than one %dx%d cell", ErrInvalidGrid, sheetW, sheetH, frameW, frameH)
	}
	return g, nil
}

// Frames returns the frames picked by pairs of column and row selectors.
// Each selector is an int or a range string, so
//
//	g.Frames("1-3", 1)              // row 1, columns 1..3
//	g.Frames(1, "1-3", "2-4", 3)    // column 1 rows 1..3, then row 3 columns 2..4
//	g.Frames("1-3", 5, 2, 5)        // ping-pong: 1,2,3 then 2 on row 5
//
// Within a pair rows form the outer loop and columns the inner loop.
func (g *Grid) Frames(args ...any) ([]*Frame, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("%w: selectors must come in column/row pairs, got %d", ErrInvalidInterval, len(args))
	}

	var out []*Frame
	for i := 0; i < len(args); i += 2 {
		cols, err := ParseInterval(args[i])
		if err != nil {
			return nil, fmt.Errorf("column selector %d: %w", i/2+1, err)
		}
		rows, err := ParseInterval(args[i+1])
		if err != nil {
			return nil, fmt.Errorf("row selector %d: %w", i/2+1, err)
		}
		if !cols.Within(g.Cols) || !rows.Within(g.Rows) {
			return nil, fmt.Errorf("%w: selector %d picks column %d, row %d outside %dx%d grid",
				ErrFrameOutOfRange, i/2+1, max(cols.First, cols.Last)+1, max(rows.First, rows.Last)+1, g.Cols, g.Rows)
		}
		for _, row := range rows.Indices() {
			for _, col := range cols.Indices() {
				f, err := g.frameAt(col, row)
				if err != nil {
					return nil, err
				}
				out = append(out, f)
			}
		}
	}
	return out, nil
}

// MustFrames is like Frames but panics on error. Useful for static tables.
func (g *Grid) MustFrames(args ...any) []*Frame {
	frames, err := g.Frames(args...)
	if err != nil {
		panic(err)
	}
	return frames
}

// frameAt returns the cached frame for a zero-based cell, creating it on first use.
func (g *Grid) frameAt(col, row int) (*Frame, error) {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return nil, fmt.Errorf("%w: cell %d,%d outside %dx%d grid", ErrFrameOutOfRange, col+1, row+1, g.Cols, g.Rows)
	}
	key := cell{col: col, row: row}
	if f, ok := g.frames[key]; ok {
		return f, nil
	}
	if g.frames == nil {
		g.frames = make(map[cell]*Frame)
	}
	f := &Frame{
		X:           g.Left + col*g.FrameWidth + (col+1)*g.Border,
		Y:           g.Top + row*g.FrameHeight + (row+1)*g.Border,
		Width:       g.FrameWidth,
		Height:      g.FrameHeight,
		SheetWidth:  g.SheetWidth,
		SheetHeight: g.SheetHeight,
	}
	g.frames[key] = f
	return f, nil
}
