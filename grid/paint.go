package grid

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Paint renders a grid as one string of 24-bit ANSI color runs, one line
// per row, with a trailing reset. Consecutive cells sharing a color reuse
// the previous escape sequence. Transparent cells paint as plain spaces. A
// double-width glyph covers the following cell, which is skipped.
func Paint(g Grid) string {
	var b strings.Builder
	b.Grow(g.Cols*g.Rows + g.Rows*16)

	for row := 0; row < g.Rows; row++ {
		var cur RGB
		active := false
		for col := 0; col < g.Cols; {
			c := g.At(row, col)
			if c.Empty() {
				b.WriteByte(' ')
				col++
				continue
			}
			if !active || c.Color != cur {
				fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm", c.Color.R, c.Color.G, c.Color.B)
				cur = c.Color
				active = true
			}
			b.WriteRune(c.Glyph)
			if w := runewidth.RuneWidth(c.Glyph); w > 1 {
				col += w
			} else {
				col++
			}
		}
		if row < g.Rows-1 {
			b.WriteByte('\n')
		}
	}

	b.WriteString("\x1b[0m")
	return b.String()
}
