// Package layout computes overlay placement within the visible display.
package layout

import "github.com/nd70/bigclock/internal/render"

// Placement positions a surface on the display, in cells.
type Placement struct {
	Row    int
	Col    int
	Width  int
	Height int
}

// Place centers frame within the visible area, applies the given offsets
// and shifts the result inward so it stays fully on screen. Width and
// height are clamped to the visible dimension minus 2 so at least one
// cell of margin remains on each axis.
func Place(frame render.Frame, visibleCols, visibleRows, rowOffset, colOffset int) Placement {
	width := frame.Width()
	height := frame.Height()
	if max := visibleCols - 2; width > max {
		width = max
	}
	if max := visibleRows - 2; height > max {
		height = max
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	col := (visibleCols-width)/2 + colOffset
	row := (visibleRows-height)/2 + rowOffset
	if col+width > visibleCols {
		col = visibleCols - width
	}
	if row+height > visibleRows {
		row = visibleRows - height
	}
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}

	return Placement{Row: row, Col: col, Width: width, Height: height}
}
