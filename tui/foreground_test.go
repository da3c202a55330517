package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lalomorales22/megacli/chat"
	"github.com/lalomorales22/megacli/grid"
)

func testModel(width, height int) Model {
	m := NewModel(nil, Config{Opacity: 0.5, Provider: chat.Claude})
	m.width = width
	m.height = height
	return m
}

func TestForegroundGridMatchesViewport(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{80, 24}, {120, 40}, {20, 10}} {
		m := testModel(tc.w, tc.h)
		g := m.foregroundGrid()
		require.True(t, g.Is(tc.w, tc.h), "viewport %dx%d", tc.w, tc.h)
	}
}

func TestForegroundLeavesTransparentCells(t *testing.T) {
	m := testModel(80, 24)
	g := m.foregroundGrid()

	transparent := 0
	for _, cell := range g.Cells {
		if cell.Empty() {
			transparent++
		}
	}
	// The video must be able to show through between the panels.
	require.Greater(t, transparent, 0)
}

func TestForegroundTinyViewportStaysEmpty(t *testing.T) {
	m := testModel(3, 2)
	g := m.foregroundGrid()
	require.True(t, g.Is(3, 2))
	for _, cell := range g.Cells {
		require.True(t, cell.Empty())
	}
}

func TestResizeRegeneratesGridsNextTick(t *testing.T) {
	m := testModel(80, 24)
	fg := m.foregroundGrid()
	require.True(t, fg.Is(80, 24))

	m.width, m.height = 100, 30
	fg = m.foregroundGrid()
	require.True(t, fg.Is(100, 30))
}

func TestDrawTextClipsAtRightEdge(t *testing.T) {
	g := grid.New(5, 1)
	end := drawText(g, 0, 0, "hello world", grid.RGB{R: 1})
	require.Equal(t, 5, end)
	require.Equal(t, 'o', g.At(0, 4).Glyph)
}

func TestDrawTextWideRuneShadowsTrailingCell(t *testing.T) {
	g := grid.New(4, 1)
	drawText(g, 0, 0, "世x", grid.RGB{G: 1})

	require.Equal(t, '世', g.At(0, 0).Glyph)
	require.Equal(t, ' ', g.At(0, 1).Glyph)
	require.False(t, g.At(0, 1).Empty())
	require.Equal(t, 'x', g.At(0, 2).Glyph)
}

func TestWrapText(t *testing.T) {
	lines := wrapText("alpha beta gamma", 7)
	require.Equal(t, []string{"alpha", "beta", "gamma"}, lines)

	lines = wrapText("superlongunbrokenword", 6)
	require.GreaterOrEqual(t, len(lines), 3)
	for _, line := range lines {
		require.LessOrEqual(t, len(line), 6)
	}
}

func TestTruncateLeftKeepsTail(t *testing.T) {
	require.Equal(t, "world", truncateLeft("hello world", 5))
	require.Equal(t, "short", truncateLeft("short", 10))
}
