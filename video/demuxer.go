package video

import (
	"fmt"
	"sync"

	"github.com/asticode/go-astiav"
)

// Demuxer owns the container handle and reads packets for the video
// stream. The handle is opened once for the process lifetime; looping seeks
// back to the start instead of reopening.
type Demuxer struct {
	formatCtx *astiav.FormatContext
	stream    *astiav.Stream
	streamIdx int
	timeBase  astiav.Rational

	mu     sync.Mutex
	closed bool
}

// NewDemuxer opens the container at path and locates its video stream.
func NewDemuxer(path string) (*Demuxer, error) {
	d := &Demuxer{streamIdx: -1}

	d.formatCtx = astiav.AllocFormatContext()
	if d.formatCtx == nil {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("failed to allocate format context")}
	}

	if err := d.formatCtx.OpenInput(path, nil, nil); err != nil {
		d.formatCtx.Free()
		return nil, &OpenError{Path: path, Err: err}
	}

	if err := d.formatCtx.FindStreamInfo(nil); err != nil {
		d.Close()
		return nil, &OpenError{Path: path, Err: fmt.Errorf("find stream info: %w", err)}
	}

	for _, stream := range d.formatCtx.Streams() {
		if stream.CodecParameters().MediaType() == astiav.MediaTypeVideo {
			d.streamIdx = stream.Index()
			d.stream = stream
			d.timeBase = stream.TimeBase()
			break
		}
	}

	if d.streamIdx == -1 {
		d.Close()
		return nil, &OpenError{Path: path, Err: fmt.Errorf("no video stream found")}
	}

	return d, nil
}

// CodecParameters returns the video stream's codec parameters.
func (d *Demuxer) CodecParameters() *astiav.CodecParameters {
	return d.stream.CodecParameters()
}

// TimeBase returns the video stream's time base.
func (d *Demuxer) TimeBase() astiav.Rational {
	return d.timeBase
}

// ReadPacket returns the next packet belonging to the video stream,
// discarding packets from other streams. Returns astiav.ErrEof at end of
// stream.
func (d *Demuxer) ReadPacket() (*astiav.Packet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, fmt.Errorf("demuxer closed")
	}

	for {
		pkt := astiav.AllocPacket()
		if pkt == nil {
			return nil, fmt.Errorf("failed to allocate packet")
		}

		if err := d.formatCtx.ReadFrame(pkt); err != nil {
			pkt.Free()
			return nil, err
		}

		if pkt.StreamIndex() == d.streamIdx {
			return pkt, nil
		}
		pkt.Free()
	}
}

// SeekStart rewinds the stream to its first frame for loop playback.
func (d *Demuxer) SeekStart() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return fmt.Errorf("demuxer closed")
	}
	return d.formatCtx.SeekFrame(d.streamIdx, 0, astiav.NewSeekFlags(astiav.SeekFlagBackward))
}

// Close releases the container handle.
func (d *Demuxer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true

	if d.formatCtx != nil {
		d.formatCtx.CloseInput()
		d.formatCtx.Free()
		d.formatCtx = nil
	}
}
