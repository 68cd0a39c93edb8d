// Package font holds the block glyphs used to draw clock characters.
package font

// Height is the number of rows in every glyph.
const Height = 5

// Glyphs are built from full-block and space runes. Rows within a glyph
// share one width; widths differ between digits and the colon.
var glyphs = map[rune][]string{
	'0': {
		"█████",
		"█   █",
		"█   █",
		"█   █",
		"█████",
	},
	'1': {
		"  █  ",
		" ██  ",
		"  █  ",
		"  █  ",
		"█████",
	},
	'2': {
		"█████",
		"    █",
		"█████",
		"█    ",
		"█████",
	},
	'3': {
		"█████",
		"    █",
		"█████",
		"    █",
		"█████",
	},
	'4': {
		"█   █",
		"█   █",
		"█████",
		"    █",
		"    █",
	},
	'5': {
		"█████",
		"█    ",
		"█████",
		"    █",
		"█████",
	},
	'6': {
		"█████",
		"█    ",
		"█████",
		"█   █",
		"█████",
	},
	'7': {
		"█████",
		"    █",
		"   █ ",
		"  █  ",
		" █   ",
	},
	'8': {
		"█████",
		"█   █",
		"█████",
		"█   █",
		"█████",
	},
	'9': {
		"█████",
		"█   █",
		"█████",
		"    █",
		"█████",
	},
	':': {
		"   ",
		" █ ",
		"   ",
		" █ ",
		"   ",
	},
	' ': {
		"   ",
		"   ",
		"   ",
		"   ",
		"   ",
	},
}

// Glyph returns the rows for ch. Unmapped runes fall back to the space
// glyph, so lookup never fails.
func Glyph(ch rune) []string {
	if g, ok := glyphs[ch]; ok {
		return g
	}
	return glyphs[' ']
}

// Supported lists every rune with a dedicated glyph.
func Supported() []rune {
	out := make([]rune, 0, len(glyphs))
	for ch := range glyphs {
		out = append(out, ch)
	}
	return out
}
