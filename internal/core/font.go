package core

import "unicode"

const (
	glyphWidth  = 3
	glyphHeight = 5
)

// glyphs holds a 3x5 bitmap per character, one byte per row, most
// significant of the low three bits is the leftmost column.
var glyphs = map[rune][glyphHeight]uint8{
	'0': {7, 5, 5, 5, 7},
	'1': {2, 6, 2, 2, 7},
	'2': {7, 1, 7, 4, 7},
	'3': {7, 1, 3, 1, 7},
	'4': {5, 5, 7, 1, 1},
	'5': {7, 4, 7, 1, 7},
	'6': {7, 4, 7, 5, 7},
	'7': {7, 1, 2, 2, 2},
	'8': {7, 5, 7, 5, 7},
	'9': {7, 5, 7, 1, 7},
	'A': {2, 5, 7, 5, 5},
	'B': {6, 5, 6, 5, 6},
	'C': {3, 4, 4, 4, 3},
	'D': {6, 5, 5, 5, 6},
	'E': {7, 4, 6, 4, 7},
	'F': {7, 4, 6, 4, 4},
	'G': {3, 4, 5, 5, 3},
	'H': {5, 5, 7, 5, 5},
	'I': {7, 2, 2, 2, 7},
	'J': {1, 1, 1, 5, 2},
	'K': {5, 5, 6, 5, 5},
	'L': {4, 4, 4, 4, 7},
	'M': {5, 7, 7, 5, 5},
	'N': {6, 5, 5, 5, 5},
	'O': {2, 5, 5, 5, 2},
	'P': {6, 5, 6, 4, 4},
	'Q': {2, 5, 5, 6, 3},
	'R': {6, 5, 6, 5, 5},
	'S': {3, 4, 2, 1, 6},
	'T': {7, 2, 2, 2, 2},
	'U': {5, 5, 5, 5, 7},
	'V': {5, 5, 5, 5, 2},
	'W': {5, 5, 7, 7, 5},
	'X': {5, 5, 2, 5, 5},
	'Y': {5, 5, 2, 2, 2},
	'Z': {7, 1, 2, 4, 7},
	':': {0, 2, 0, 2, 0},
	'-': {0, 0, 7, 0, 0},
	'.': {0, 0, 0, 0, 2},
	'!': {2, 2, 2, 0, 2},
	'/': {1, 1, 2, 4, 4},
	'#': {5, 7, 5, 7, 5},
}

// glyph returns the bitmap for r; lowercase letters use the uppercase glyph.
func glyph(r rune) [glyphHeight]uint8 {
	return glyphs[unicode.ToUpper(r)]
}

// TextWidth returns the rendered width of text in frame pixels.
func TextWidth(text string, scale int) int {
	if scale < 1 {
		scale = 1
	}
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	return (n*(glyphWidth+1) - 1) * scale
}
