package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nd70/bigclock/internal/host"
)

type cell struct {
	ch    rune
	style string
}

// canvas is the full-screen cell grid the floating windows are
// composited onto, bottom to top.
type canvas struct {
	cols  int
	rows  int
	cells [][]cell
}

func newCanvas(cols, rows int) *canvas {
	cells := make([][]cell, rows)
	for r := range cells {
		row := make([]cell, cols)
		for c := range row {
			row[c] = cell{ch: ' '}
		}
		cells[r] = row
	}
	return &canvas{cols: cols, rows: rows, cells: cells}
}

func (c *canvas) set(row, col int, ch rune, style string) {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return
	}
	c.cells[row][col] = cell{ch: ch, style: style}
}

// drawWindow paints one window's border and buffer content. With a
// non-zero blend, space cells are left transparent so lower surfaces
// show through.
func (c *canvas) drawWindow(w *window) {
	cfg := w.cfg
	transparent := cfg.Blend > 0

	if border, ok := borderSet(cfg.Border); ok {
		c.drawBorder(cfg, border)
	}

	for r := 0; r < cfg.Height && r < len(w.buf.lines); r++ {
		col := 0
		for _, ch := range w.buf.lines[r] {
			width := runewidth.RuneWidth(ch)
			if col+width > cfg.Width {
				break
			}
			if !(transparent && ch == ' ') {
				c.set(cfg.Row+r, cfg.Col+col, ch, cfg.Style)
			}
			col += width
		}
	}
}

func (c *canvas) drawBorder(cfg host.WindowConfig, b lipgloss.Border) {
	top, bottom := cfg.Row-1, cfg.Row+cfg.Height
	left, right := cfg.Col-1, cfg.Col+cfg.Width

	for col := cfg.Col; col < cfg.Col+cfg.Width; col++ {
		c.set(top, col, firstRune(b.Top), cfg.Style)
		c.set(bottom, col, firstRune(b.Bottom), cfg.Style)
	}
	for row := cfg.Row; row < cfg.Row+cfg.Height; row++ {
		c.set(row, left, firstRune(b.Left), cfg.Style)
		c.set(row, right, firstRune(b.Right), cfg.Style)
	}
	c.set(top, left, firstRune(b.TopLeft), cfg.Style)
	c.set(top, right, firstRune(b.TopRight), cfg.Style)
	c.set(bottom, left, firstRune(b.BottomLeft), cfg.Style)
	c.set(bottom, right, firstRune(b.BottomRight), cfg.Style)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

func borderSet(name string) (lipgloss.Border, bool) {
	switch name {
	case "normal":
		return lipgloss.NormalBorder(), true
	case "rounded":
		return lipgloss.RoundedBorder(), true
	case "double":
		return lipgloss.DoubleBorder(), true
	case "thick":
		return lipgloss.ThickBorder(), true
	default:
		return lipgloss.Border{}, false
	}
}

// render turns the canvas into terminal output, styling runs of cells
// that share a registered style.
func (c *canvas) render(styles map[string]host.StyleSpec) string {
	var out strings.Builder
	for r := 0; r < c.rows; r++ {
		if r > 0 {
			out.WriteByte('\n')
		}
		col := 0
		for col < c.cols {
			name := c.cells[r][col].style
			var run strings.Builder
			for col < c.cols && c.cells[r][col].style == name {
				run.WriteRune(c.cells[r][col].ch)
				col++
			}
			if spec, ok := styles[name]; ok && name != "" {
				out.WriteString(styleFor(spec).Render(run.String()))
			} else {
				out.WriteString(run.String())
			}
		}
	}
	return out.String()
}

func styleFor(spec host.StyleSpec) lipgloss.Style {
	style := lipgloss.NewStyle()
	if spec.Foreground != "" {
		style = style.Foreground(lipgloss.Color(spec.Foreground))
	}
	if spec.Bold {
		style = style.Bold(true)
	}
	return style
}
