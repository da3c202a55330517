package grid

// palette orders glyphs darkest to brightest; a cell's luminance bucket
// indexes into it.
const palette = " .'`^\",:;Il!i><~+_-?][}{1)(|\\tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$"

var paletteRunes = []rune(palette)

// Luminance returns the perceptual brightness of a color (ITU-R BT.601
// weights).
func Luminance(c RGB) uint8 {
	y := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return uint8(y)
}

// GlyphFor picks the palette glyph for a color's luminance bucket.
func GlyphFor(c RGB) rune {
	idx := int(Luminance(c)) * (len(paletteRunes) - 1) / 255
	return paletteRunes[idx]
}

// Convert downsamples an RGB24 pixel buffer to a cols×rows cell grid. Each
// destination cell box-averages its source pixel block and takes the
// palette glyph for the averaged luminance; the cell color is the averaged
// RGB, unquantized. Frames smaller than the grid replicate their nearest
// pixel instead. A zero-area target returns an empty grid.
func Convert(rgb []byte, width, height, cols, rows int) Grid {
	if cols <= 0 || rows <= 0 || width <= 0 || height <= 0 {
		return New(0, 0)
	}

	g := New(cols, rows)
	for row := 0; row < rows; row++ {
		y0 := row * height / rows
		y1 := (row + 1) * height / rows
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for col := 0; col < cols; col++ {
			x0 := col * width / cols
			x1 := (col + 1) * width / cols
			if x1 <= x0 {
				x1 = x0 + 1
			}

			var sr, sg, sb, n uint64
			for y := y0; y < y1; y++ {
				i := (y*width + x0) * 3
				for x := x0; x < x1; x++ {
					sr += uint64(rgb[i])
					sg += uint64(rgb[i+1])
					sb += uint64(rgb[i+2])
					i += 3
					n++
				}
			}

			c := RGB{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n)}
			g.Set(row, col, Cell{Glyph: GlyphFor(c), Color: c})
		}
	}
	return g
}
