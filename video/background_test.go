package video

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lalomorales22/megacli/grid"
)

func uniformFrame(width, height int, r, g, b byte) *RawFrame {
	rgb := make([]byte, width*height*3)
	for i := 0; i < len(rgb); i += 3 {
		rgb[i], rgb[i+1], rgb[i+2] = r, g, b
	}
	return &RawFrame{RGB: rgb, Width: width, Height: height, Seq: 1}
}

func TestBackgroundAdvanceConvertsNewFrame(t *testing.T) {
	b := &Background{slot: NewFrameSlot()}
	b.slot.Publish(uniformFrame(4, 4, 200, 100, 50))

	g := b.Advance(10, 5)
	require.True(t, g.Is(10, 5))
	require.Equal(t, grid.RGB{R: 200, G: 100, B: 50}, g.At(0, 0).Color)
}

func TestBackgroundAdvanceReusesGridWithoutNewFrame(t *testing.T) {
	b := &Background{slot: NewFrameSlot()}
	b.slot.Publish(uniformFrame(4, 4, 10, 20, 30))

	first := b.Advance(8, 4)
	second := b.Advance(8, 4)
	require.Equal(t, first, second)
}

func TestBackgroundResizeRegeneratesFromLastFrame(t *testing.T) {
	b := &Background{slot: NewFrameSlot()}
	b.slot.Publish(uniformFrame(6, 6, 99, 88, 77))
	require.True(t, b.Advance(10, 5).Is(10, 5))

	// No new frame, but the viewport changed: the next grid matches the
	// new dimensions exactly, re-converted from the last frame.
	g := b.Advance(7, 3)
	require.True(t, g.Is(7, 3))
	require.Equal(t, grid.RGB{R: 99, G: 88, B: 77}, g.At(2, 6).Color)
}

func TestBackgroundZeroViewport(t *testing.T) {
	b := &Background{slot: NewFrameSlot()}
	require.True(t, b.Advance(0, 0).Is(0, 0))

	b.slot.Publish(uniformFrame(4, 4, 1, 1, 1))
	require.True(t, b.Advance(0, 0).Is(0, 0))
}

func TestBackgroundBeforeFirstFrame(t *testing.T) {
	b := &Background{slot: NewFrameSlot()}
	g := b.Advance(5, 2)
	require.True(t, g.Is(5, 2))
	for _, cell := range g.Cells {
		require.True(t, cell.Empty())
	}
}
