package video

import "github.com/lalomorales22/megacli/grid"

// Background owns the decode worker and turns its frames into the cell
// grid painted beneath the UI. Advance is called once per UI tick from the
// render loop and never blocks; a stalled or dead worker just freezes the
// picture.
type Background struct {
	worker *Worker
	slot   *FrameSlot

	last    *RawFrame // newest frame seen, re-converted on resize
	current grid.Grid
}

// NewBackground opens the video at path and starts the decode worker.
func NewBackground(path string, targetFPS float64) (*Background, error) {
	slot := NewFrameSlot()
	worker, err := NewWorker(path, targetFPS, slot)
	if err != nil {
		return nil, err
	}

	b := &Background{worker: worker, slot: slot}
	go worker.Run()
	return b, nil
}

// Advance polls for a newer frame and returns the background grid at the
// given viewport size. A new frame is converted at that size; without one,
// a size change re-converts the last frame, and otherwise the cached grid
// is returned unchanged. A zero-area viewport yields an empty grid.
func (b *Background) Advance(cols, rows int) grid.Grid {
	if f := b.slot.Take(); f != nil {
		b.last = f
		b.current = grid.Convert(f.RGB, f.Width, f.Height, cols, rows)
		return b.current
	}

	if !b.current.Is(cols, rows) {
		if b.last != nil {
			b.current = grid.Convert(b.last.RGB, b.last.Width, b.last.Height, cols, rows)
		} else {
			b.current = grid.New(cols, rows)
		}
	}
	return b.current
}

// Static reports whether the decode worker has stopped and the background
// is frozen on its last frame.
func (b *Background) Static() bool {
	select {
	case <-b.worker.Done():
		return true
	default:
		return false
	}
}

// Err returns the fatal stream error that stopped the worker, if any.
func (b *Background) Err() error {
	return b.worker.Err()
}

// Drops reports how many decoded frames were superseded before the render
// loop consumed them.
func (b *Background) Drops() uint64 {
	return b.slot.Drops()
}

// Stop shuts the worker down and waits for its goroutine to exit.
func (b *Background) Stop() {
	b.worker.Stop()
	<-b.worker.Done()
}
