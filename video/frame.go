// Package video decodes a looping video file on a background worker and
// hands the latest frame to the render loop through a single-slot,
// latest-wins exchange.
package video

import "github.com/asticode/go-astiav"

func init() {
	// FFmpeg writes warnings to stderr, which would tear the alt screen.
	astiav.SetLogLevel(astiav.LogLevelQuiet)
}

// RawFrame is one decoded video frame as packed RGB24 at the source
// resolution. The worker owns it until Publish; after that it belongs to
// whoever takes it from the slot.
type RawFrame struct {
	RGB    []byte
	Width  int
	Height int
	PTS    float64 // presentation time in seconds, informational only
	Seq    uint64  // decode order, monotonic across loop restarts
}
