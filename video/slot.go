package video

import (
	"sync"
	"sync/atomic"
)

// FrameSlot is a single-slot latest-wins hand-off between the decode
// worker and the render loop. Publish never blocks: an unconsumed frame is
// overwritten and counted as dropped. Take never blocks: an empty slot
// returns nil and the render loop keeps the grid it already has. Only the
// most recently published frame is ever observable, so frames cannot be
// consumed out of order.
type FrameSlot struct {
	mu    sync.Mutex
	frame *RawFrame
	drops atomic.Uint64
}

func NewFrameSlot() *FrameSlot {
	return &FrameSlot{}
}

// Publish stores f as the latest frame, dropping any unconsumed
// predecessor.
func (s *FrameSlot) Publish(f *RawFrame) {
	s.mu.Lock()
	if s.frame != nil {
		s.drops.Add(1)
	}
	s.frame = f
	s.mu.Unlock()
}

// Take removes and returns the latest frame, or nil when nothing has been
// published since the last call.
func (s *FrameSlot) Take() *RawFrame {
	s.mu.Lock()
	f := s.frame
	s.frame = nil
	s.mu.Unlock()
	return f
}

// Drops returns how many published frames were overwritten before being
// consumed.
func (s *FrameSlot) Drops() uint64 {
	return s.drops.Load()
}
