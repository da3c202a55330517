package video

import (
	"errors"
	"io"

	"github.com/asticode/go-astiav"
)

// frameSource is the worker's view of a decodable stream. The file-backed
// implementation wraps a Demuxer and a Decoder; tests substitute a stub.
type frameSource interface {
	// NextFrame returns the next decoded frame, io.EOF at end of stream,
	// a *DecodeFrameError for a single corrupt frame, or a fatal error.
	NextFrame() (*RawFrame, error)

	// SeekStart rewinds to the first frame after end of stream.
	SeekStart() error

	Close()
}

type fileSource struct {
	demuxer *Demuxer
	decoder *Decoder
	eof     bool // demuxer exhausted, draining the codec
}

func openFileSource(path string) (*fileSource, error) {
	demuxer, err := NewDemuxer(path)
	if err != nil {
		return nil, err
	}

	decoder, err := NewDecoder(demuxer.CodecParameters(), demuxer.TimeBase())
	if err != nil {
		demuxer.Close()
		return nil, &OpenError{Path: path, Err: err}
	}

	return &fileSource{demuxer: demuxer, decoder: decoder}, nil
}

func (s *fileSource) NextFrame() (*RawFrame, error) {
	for {
		if s.eof {
			frame, err := s.decoder.Drain()
			if err != nil {
				return nil, &DecodeFrameError{Err: err}
			}
			if frame == nil {
				return nil, io.EOF
			}
			return frame, nil
		}

		pkt, err := s.demuxer.ReadPacket()
		if err != nil {
			if errors.Is(err, astiav.ErrEof) {
				s.eof = true
				continue
			}
			return nil, &StreamIOError{Err: err}
		}

		frame, err := s.decoder.DecodePacket(pkt)
		pkt.Free()
		if err != nil {
			return nil, &DecodeFrameError{Err: err}
		}
		if frame == nil {
			continue // codec needs more input
		}
		return frame, nil
	}
}

func (s *fileSource) SeekStart() error {
	if err := s.demuxer.SeekStart(); err != nil {
		return &StreamIOError{Err: err}
	}
	s.decoder.FlushBuffers()
	s.eof = false
	return nil
}

func (s *fileSource) Close() {
	s.decoder.Close()
	s.demuxer.Close()
}
