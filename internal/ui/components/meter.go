package components

import (
	"strings"
)

// levelGlyphs are block heights from quietest to loudest.
var levelGlyphs = []rune("▁▂▃▄▅▆▇█")

// Waveform renders the last width mic levels (each 0-100) as block glyphs,
// padding on the left with the quietest glyph.
func Waveform(levels []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(levels) > width {
		levels = levels[len(levels)-width:]
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(levels)))
	for _, l := range levels {
		b.WriteRune(LevelGlyph(l))
	}
	return b.String()
}

// LevelGlyph maps a level in [0,100) to a block glyph.
func LevelGlyph(level float64) rune {
	i := int(level / 100 * float64(len(levelGlyphs)))
	if i < 0 {
		i = 0
	}
	if i >= len(levelGlyphs) {
		i = len(levelGlyphs) - 1
	}
	return levelGlyphs[i]
}
