package video

import "fmt"

// OpenError is fatal at startup: the file is missing, contains no video
// stream, or its codec is unsupported.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open video %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// DecodeFrameError covers a single corrupt frame. The worker logs it and
// advances to the next frame; it is never surfaced to the user.
type DecodeFrameError struct {
	Err error
}

func (e *DecodeFrameError) Error() string {
	return fmt.Sprintf("decode frame: %v", e.Err)
}

func (e *DecodeFrameError) Unwrap() error { return e.Err }

// StreamIOError is fatal mid-run: the stream can no longer produce frames.
// The worker stops and the background freezes on its last grid while the
// chat keeps working.
type StreamIOError struct {
	Err error
}

func (e *StreamIOError) Error() string {
	return fmt.Sprintf("video stream: %v", e.Err)
}

func (e *StreamIOError) Unwrap() error { return e.Err }
