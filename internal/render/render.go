// Package render turns a clock string into block-art rows.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/nd70/bigclock/internal/font"
)

// Frame is the full multi-row rendering of a clock string. All rows have
// the same display width.
type Frame []string

// Width returns the display width of the frame's rows.
func (f Frame) Width() int {
	if len(f) == 0 {
		return 0
	}
	return runewidth.StringWidth(f[0])
}

// Height returns the number of rows in the frame.
func (f Frame) Height() int {
	return len(f)
}

// Render produces the block-art frame for s at the given scale, with
// padding space columns on both margins. Adjacent glyphs are separated
// by a single space column. Scale magnifies glyphs nearest-neighbor:
// each rune is repeated scale times per row and each row scale times.
func Render(s string, scale, padding int) Frame {
	if scale < 1 {
		scale = 1
	}
	if padding < 0 {
		padding = 0
	}
	if s == "" {
		return nil
	}

	cells := make([][]string, 0, len(s))
	for _, ch := range s {
		cells = append(cells, scaledGlyph(ch, scale))
	}

	margin := strings.Repeat(" ", padding)
	height := font.Height * scale
	frame := make(Frame, height)
	for row := 0; row < height; row++ {
		var b strings.Builder
		b.WriteString(margin)
		for i, cell := range cells {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cell[row])
		}
		b.WriteString(margin)
		frame[row] = b.String()
	}
	return frame
}

func scaledGlyph(ch rune, scale int) []string {
	g := font.Glyph(ch)
	if scale == 1 {
		return g
	}
	out := make([]string, 0, len(g)*scale)
	for _, row := range g {
		var b strings.Builder
		for _, r := range row {
			for i := 0; i < scale; i++ {
				b.WriteRune(r)
			}
		}
		line := b.String()
		for i := 0; i < scale; i++ {
			out = append(out, line)
		}
	}
	return out
}
