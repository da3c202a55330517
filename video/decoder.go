package video

import (
	"fmt"
	"sync"

	"github.com/asticode/go-astiav"
)

// Decoder turns video packets into RGB24 RawFrames at the source
// resolution. Downsampling to terminal cells happens later against the live
// viewport, so the only conversion here is pixel format.
type Decoder struct {
	codecCtx *astiav.CodecContext
	swsCtx   *astiav.SoftwareScaleContext
	frame    *astiav.Frame
	rgbFrame *astiav.Frame

	width    int
	height   int
	timeBase astiav.Rational
	seq      uint64
	draining bool

	mu     sync.Mutex
	closed bool
}

// NewDecoder creates a decoder from the stream's codec parameters.
func NewDecoder(codecParams *astiav.CodecParameters, timeBase astiav.Rational) (*Decoder, error) {
	dec := &Decoder{
		timeBase: timeBase,
		width:    codecParams.Width(),
		height:   codecParams.Height(),
	}

	codec := astiav.FindDecoder(codecParams.CodecID())
	if codec == nil {
		return nil, fmt.Errorf("video codec not found: %s", codecParams.CodecID())
	}

	dec.codecCtx = astiav.AllocCodecContext(codec)
	if dec.codecCtx == nil {
		return nil, fmt.Errorf("failed to allocate video codec context")
	}

	if err := codecParams.ToCodecContext(dec.codecCtx); err != nil {
		dec.Close()
		return nil, fmt.Errorf("failed to copy video codec params: %w", err)
	}

	if err := dec.codecCtx.Open(codec, nil); err != nil {
		dec.Close()
		return nil, fmt.Errorf("failed to open video codec: %w", err)
	}

	dec.frame = astiav.AllocFrame()
	dec.rgbFrame = astiav.AllocFrame()

	return dec, nil
}

func (dec *Decoder) initSwsContext() error {
	// Source pixel format -> RGB24 at the same dimensions.
	var err error
	dec.swsCtx, err = astiav.CreateSoftwareScaleContext(
		dec.width, dec.height, dec.codecCtx.PixelFormat(),
		dec.width, dec.height, astiav.PixelFormatRgb24,
		astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBilinear),
	)
	if err != nil {
		return fmt.Errorf("failed to create sws context: %w", err)
	}

	dec.rgbFrame.SetWidth(dec.width)
	dec.rgbFrame.SetHeight(dec.height)
	dec.rgbFrame.SetPixelFormat(astiav.PixelFormatRgb24)

	if err := dec.rgbFrame.AllocBuffer(1); err != nil {
		return fmt.Errorf("failed to allocate RGB frame buffer: %w", err)
	}

	return nil
}

// DecodePacket sends one packet to the codec and receives at most one
// frame. A nil RawFrame with nil error means the codec needs more input.
func (dec *Decoder) DecodePacket(pkt *astiav.Packet) (*RawFrame, error) {
	dec.mu.Lock()
	defer dec.mu.Unlock()

	if dec.closed {
		return nil, fmt.Errorf("video decoder closed")
	}

	if err := dec.codecCtx.SendPacket(pkt); err != nil {
		return nil, fmt.Errorf("failed to send video packet: %w", err)
	}

	return dec.receiveRGB()
}

// Drain pulls the frames still buffered inside the codec at end of stream,
// one call per frame. Returns nil, nil once the codec is empty.
func (dec *Decoder) Drain() (*RawFrame, error) {
	dec.mu.Lock()
	defer dec.mu.Unlock()

	if dec.closed {
		return nil, fmt.Errorf("video decoder closed")
	}

	if !dec.draining {
		if err := dec.codecCtx.SendPacket(nil); err != nil {
			return nil, fmt.Errorf("failed to flush video codec: %w", err)
		}
		dec.draining = true
	}

	return dec.receiveRGB()
}

func (dec *Decoder) receiveRGB() (*RawFrame, error) {
	if err := dec.codecCtx.ReceiveFrame(dec.frame); err != nil {
		if err == astiav.ErrEof || err == astiav.ErrEagain {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to receive video frame: %w", err)
	}

	pts := float64(dec.frame.Pts()) * float64(dec.timeBase.Num()) / float64(dec.timeBase.Den())

	if dec.swsCtx == nil {
		if err := dec.initSwsContext(); err != nil {
			dec.frame.Unref()
			return nil, err
		}
	}

	if err := dec.swsCtx.ScaleFrame(dec.frame, dec.rgbFrame); err != nil {
		dec.frame.Unref()
		return nil, fmt.Errorf("failed to scale frame: %w", err)
	}

	data := dec.rgbFrame.Data()
	rgbBytes, err := data.Bytes(1)
	if err != nil {
		dec.frame.Unref()
		return nil, fmt.Errorf("failed to get RGB bytes: %w", err)
	}

	// Copy the data since the frame buffer will be reused
	rgb := make([]byte, len(rgbBytes))
	copy(rgb, rgbBytes)

	dec.frame.Unref()
	dec.seq++

	return &RawFrame{
		RGB:    rgb,
		Width:  dec.width,
		Height: dec.height,
		PTS:    pts,
		Seq:    dec.seq,
	}, nil
}

// FlushBuffers resets codec state after a loop seek so reference frames
// from the previous pass are not reused.
func (dec *Decoder) FlushBuffers() {
	dec.mu.Lock()
	defer dec.mu.Unlock()

	if dec.closed {
		return
	}
	dec.codecCtx.FlushBuffers()
	dec.draining = false
}

// Close releases all resources
func (dec *Decoder) Close() {
	dec.mu.Lock()
	defer dec.mu.Unlock()

	if dec.closed {
		return
	}
	dec.closed = true

	if dec.frame != nil {
		dec.frame.Free()
		dec.frame = nil
	}
	if dec.rgbFrame != nil {
		dec.rgbFrame.Free()
		dec.rgbFrame = nil
	}
	if dec.swsCtx != nil {
		dec.swsCtx.Free()
		dec.swsCtx = nil
	}
	if dec.codecCtx != nil {
		dec.codecCtx.Free()
		dec.codecCtx = nil
	}
}
