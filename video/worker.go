package video

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"
)

// workerState tracks the decode loop's position in its lifecycle.
type workerState int

const (
	stateDecoding workerState = iota
	stateSeeking
	stateStopped
)

// DefaultFPS caps the decode rate when no explicit target is configured.
const DefaultFPS = 24.0

// Worker decodes frames on its own goroutine and publishes them to a
// FrameSlot, seeking back to the first frame at end of stream so the video
// loops forever. It never outpaces the target rate: when decoding runs hot
// it sleeps out the remainder of the frame interval.
type Worker struct {
	source   frameSource
	slot     *FrameSlot
	interval time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
	doneCh   chan struct{}

	errMu sync.Mutex
	err   error
}

// NewWorker opens the video at path. An unreadable file or a container
// without a video stream is reported as *OpenError, fatal to the caller.
func NewWorker(path string, targetFPS float64, slot *FrameSlot) (*Worker, error) {
	source, err := openFileSource(path)
	if err != nil {
		return nil, err
	}
	return newWorker(source, targetFPS, slot), nil
}

func newWorker(source frameSource, targetFPS float64, slot *FrameSlot) *Worker {
	if targetFPS <= 0 {
		targetFPS = DefaultFPS
	}
	return &Worker{
		source:   source,
		slot:     slot,
		interval: time.Duration(float64(time.Second) / targetFPS),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Run drives the decode loop until Stop or a fatal stream error. Call it
// on its own goroutine.
func (w *Worker) Run() {
	defer close(w.doneCh)
	defer w.source.Close()

	state := stateDecoding
	next := time.Now()

	for state != stateStopped {
		select {
		case <-w.stopCh:
			state = stateStopped
			continue
		default:
		}

		switch state {
		case stateDecoding:
			frame, err := w.source.NextFrame()
			if err != nil {
				state = w.classify(err)
				continue
			}
			w.slot.Publish(frame)

			// Clamp to the target cadence but stay responsive to Stop.
			next = next.Add(w.interval)
			if d := time.Until(next); d > 0 {
				select {
				case <-time.After(d):
				case <-w.stopCh:
					state = stateStopped
				}
			} else {
				next = time.Now()
			}

		case stateSeeking:
			if err := w.source.SeekStart(); err != nil {
				w.fail(err)
				state = stateStopped
				continue
			}
			log.Printf("video: end of stream, looping back to start")
			state = stateDecoding
		}
	}
}

// classify maps a NextFrame error to the next state: end of stream starts
// the loop seek, a corrupt frame is skipped, anything else is fatal.
func (w *Worker) classify(err error) workerState {
	var decodeErr *DecodeFrameError
	switch {
	case errors.Is(err, io.EOF):
		return stateSeeking
	case errors.As(err, &decodeErr):
		log.Printf("video: skipping corrupt frame: %v", err)
		return stateDecoding
	default:
		w.fail(err)
		return stateStopped
	}
}

func (w *Worker) fail(err error) {
	var streamErr *StreamIOError
	if !errors.As(err, &streamErr) {
		err = &StreamIOError{Err: err}
	}
	w.errMu.Lock()
	w.err = err
	w.errMu.Unlock()
	log.Printf("video: worker stopped: %v", err)
}

// Stop asks the worker to exit at its next loop boundary. The in-flight
// decode is allowed to finish; Stop does not wait for it.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// Done is closed once the worker goroutine has exited.
func (w *Worker) Done() <-chan struct{} {
	return w.doneCh
}

// Err returns the fatal error that stopped the worker, or nil after a
// clean Stop.
func (w *Worker) Err() error {
	w.errMu.Lock()
	defer w.errMu.Unlock()
	return w.err
}
