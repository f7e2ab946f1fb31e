package player

import (
	"errors"
	"fmt"
	"io"
)

// VideoSource decodes any container FFmpeg understands
type VideoSource struct {
	demuxer *Demuxer
	video   *VideoDecoder
	eof     bool
}

// OpenVideo opens path with FFmpeg and prepares its first video stream
func OpenVideo(path string) (*VideoSource, error) {
	demuxer, err := NewDemuxer(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open media: %w", err)
	}

	video, err := NewVideoDecoder(demuxer.VideoCodecParameters())
	if err != nil {
		demuxer.Close()
		return nil, fmt.Errorf("failed to create video decoder: %w", err)
	}

	return &VideoSource{demuxer: demuxer, video: video}, nil
}

// NextFrame reads packets until the decoder yields a frame.
// At end of input the decoder is drained before io.EOF is returned.
func (s *VideoSource) NextFrame() (*Frame, error) {
	for {
		frame, err := s.video.ReceiveFrame()
		if err == nil {
			return frame, nil
		}
		if !errors.Is(err, errNeedPacket) {
			return nil, err
		}
		if s.eof {
			// Draining decoders report EOF, never EAGAIN; guard anyway
			return nil, io.EOF
		}

		pkt, isVideo, err := s.demuxer.ReadPacket()
		if errors.Is(err, io.EOF) {
			s.eof = true
			if err := s.video.Drain(); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		if !isVideo {
			pkt.Free()
			continue
		}

		err = s.video.SendPacket(pkt)
		pkt.Free()
		if err != nil {
			return nil, err
		}
	}
}

// FrameCount returns the container's frame count, 0 if unknown
func (s *VideoSource) FrameCount() int {
	return s.demuxer.FrameCount()
}

// FrameRate returns the stream's native frame rate, 0 if unknown
func (s *VideoSource) FrameRate() float64 {
	return s.demuxer.FrameRate()
}

// Close releases the decoder and closes the file
func (s *VideoSource) Close() error {
	s.video.Close()
	s.demuxer.Close()
	return nil
}
