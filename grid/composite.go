package grid

import "fmt"

// DimensionMismatchError reports background and foreground grids of unequal
// shape handed to Composite. Callers recover by regenerating both grids at
// the current terminal size; unequal shapes are never truncated or
// stretched.
type DimensionMismatchError struct {
	BGCols, BGRows int
	FGCols, FGRows int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("grid dimension mismatch: background %dx%d, foreground %dx%d",
		e.BGCols, e.BGRows, e.FGCols, e.FGRows)
}

// ClampOpacity forces an opacity value into [0, 1]. Out-of-range startup
// flags are clamped rather than rejected.
func ClampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Composite layers the foreground over the opacity-dimmed background.
// Transparent foreground cells show the background cell with its color
// channels multiplied by opacity and its glyph unchanged; written
// foreground cells pass through as-is, so UI panels stay fully opaque over
// the video.
func Composite(bg, fg Grid, opacity float64) (Grid, error) {
	if bg.Cols != fg.Cols || bg.Rows != fg.Rows {
		return Grid{}, &DimensionMismatchError{
			BGCols: bg.Cols, BGRows: bg.Rows,
			FGCols: fg.Cols, FGRows: fg.Rows,
		}
	}

	out := New(bg.Cols, bg.Rows)
	for i, f := range fg.Cells {
		if !f.Empty() {
			out.Cells[i] = f
			continue
		}
		b := bg.Cells[i]
		if b.Empty() {
			continue
		}
		out.Cells[i] = Cell{
			Glyph: b.Glyph,
			Color: RGB{
				R: uint8(float64(b.Color.R) * opacity),
				G: uint8(float64(b.Color.G) * opacity),
				B: uint8(float64(b.Color.B) * opacity),
			},
		}
	}
	return out, nil
}
