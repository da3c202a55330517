package video

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stubSource plays a fixed number of synthetic frames per pass, with
// optional corrupt and fatal frames, and records everything it served.
type stubSource struct {
	mu sync.Mutex

	frames    int // frames per pass
	pos       int
	corruptAt int // 1-based index within a pass, 0 disables
	fatalAt   int // 1-based global index, 0 disables

	total  int // frames served across passes
	loops  int
	served []uint64 // seq of every served frame, per-pass numbering
	closed bool
}

func (s *stubSource) NextFrame() (*RawFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos >= s.frames {
		return nil, io.EOF
	}
	s.pos++
	s.total++

	if s.fatalAt > 0 && s.total >= s.fatalAt {
		return nil, &StreamIOError{Err: fmt.Errorf("disk gone")}
	}
	if s.corruptAt > 0 && s.pos == s.corruptAt {
		return nil, &DecodeFrameError{Err: fmt.Errorf("bad frame")}
	}

	seq := uint64(s.pos)
	s.served = append(s.served, seq)
	return testFrame(seq), nil
}

func (s *stubSource) SeekStart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = 0
	s.loops++
	return nil
}

func (s *stubSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *stubSource) snapshot() (loops int, served []uint64, closed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loops, append([]uint64(nil), s.served...), s.closed
}

func TestWorkerLoopsAtEndOfStream(t *testing.T) {
	source := &stubSource{frames: 3}
	worker := newWorker(source, 1000, NewFrameSlot())
	go worker.Run()
	defer func() {
		worker.Stop()
		<-worker.Done()
	}()

	require.Eventually(t, func() bool {
		loops, _, _ := source.snapshot()
		return loops >= 2
	}, 2*time.Second, time.Millisecond)

	// After the 3-frame pass ends, the next served frame is frame 1 again.
	_, served, _ := source.snapshot()
	require.GreaterOrEqual(t, len(served), 4)
	require.Equal(t, served[0], served[3])
	require.Equal(t, uint64(1), served[3])
}

func TestWorkerSkipsCorruptFrames(t *testing.T) {
	source := &stubSource{frames: 4, corruptAt: 2}
	worker := newWorker(source, 1000, NewFrameSlot())
	go worker.Run()
	defer func() {
		worker.Stop()
		<-worker.Done()
	}()

	// The corrupt frame never stops the loop: frames after it still play
	// and the stream still loops.
	require.Eventually(t, func() bool {
		loops, served, _ := source.snapshot()
		if loops < 1 {
			return false
		}
		for _, seq := range served {
			if seq == 3 {
				return true
			}
		}
		return false
	}, 2*time.Second, time.Millisecond)

	require.NoError(t, worker.Err())
}

func TestWorkerFatalErrorStopsAndFreezes(t *testing.T) {
	slot := NewFrameSlot()
	source := &stubSource{frames: 10, fatalAt: 3}
	worker := newWorker(source, 1000, slot)
	go worker.Run()

	select {
	case <-worker.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on fatal error")
	}

	var streamErr *StreamIOError
	require.ErrorAs(t, worker.Err(), &streamErr)

	// The last good frame is still available for the render side.
	last := slot.Take()
	require.NotNil(t, last)
	require.Equal(t, uint64(2), last.Seq)

	_, _, closed := source.snapshot()
	require.True(t, closed)
}

func TestWorkerStopExitsCleanly(t *testing.T) {
	source := &stubSource{frames: 1000}
	worker := newWorker(source, 30, NewFrameSlot())
	go worker.Run()

	worker.Stop()
	select {
	case <-worker.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not observe stop signal")
	}

	require.NoError(t, worker.Err())
	_, _, closed := source.snapshot()
	require.True(t, closed)
}

func TestWorkerStopIsIdempotent(t *testing.T) {
	source := &stubSource{frames: 5}
	worker := newWorker(source, 100, NewFrameSlot())
	go worker.Run()

	worker.Stop()
	worker.Stop()
	<-worker.Done()
}

func TestWorkerRespectsTargetFPS(t *testing.T) {
	source := &stubSource{frames: 1 << 30}
	worker := newWorker(source, 50, NewFrameSlot())
	go worker.Run()
	defer func() {
		worker.Stop()
		<-worker.Done()
	}()

	time.Sleep(200 * time.Millisecond)
	_, served, _ := source.snapshot()

	// 50 fps over 200ms is ~10 frames; allow generous headroom but reject
	// free-running.
	require.LessOrEqual(t, len(served), 30)
}

func TestWorkerClassify(t *testing.T) {
	worker := newWorker(&stubSource{}, 24, NewFrameSlot())

	require.Equal(t, stateSeeking, worker.classify(io.EOF))
	require.Equal(t, stateDecoding, worker.classify(&DecodeFrameError{Err: errors.New("x")}))
	require.Equal(t, stateStopped, worker.classify(errors.New("boom")))

	var streamErr *StreamIOError
	require.ErrorAs(t, worker.Err(), &streamErr)
}
