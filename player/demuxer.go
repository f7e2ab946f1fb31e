package player

import (
	"errors"
	"fmt"
	"io"

	"github.com/asticode/go-astiav"
)

// Demuxer opens a media file and reads its video packets
type Demuxer struct {
	formatCtx   *astiav.FormatContext
	videoStream *astiav.Stream
	videoIdx    int

	closed bool
}

// NewDemuxer creates a demuxer for the given file
func NewDemuxer(path string) (*Demuxer, error) {
	d := &Demuxer{
		videoIdx: -1,
	}

	// Allocate format context
	d.formatCtx = astiav.AllocFormatContext()
	if d.formatCtx == nil {
		return nil, fmt.Errorf("failed to allocate format context")
	}

	if err := d.formatCtx.OpenInput(path, nil, nil); err != nil {
		d.formatCtx.Free()
		d.formatCtx = nil
		return nil, fmt.Errorf("failed to open input: %w", err)
	}

	if err := d.formatCtx.FindStreamInfo(nil); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to find stream info: %w", err)
	}

	// First video stream wins, the rest are ignored
	for _, stream := range d.formatCtx.Streams() {
		if stream.CodecParameters().MediaType() == astiav.MediaTypeVideo {
			d.videoIdx = stream.Index()
			d.videoStream = stream
			break
		}
	}

	if d.videoIdx == -1 {
		d.Close()
		return nil, fmt.Errorf("no video stream found")
	}

	return d, nil
}

// VideoCodecParameters returns the video codec parameters
func (d *Demuxer) VideoCodecParameters() *astiav.CodecParameters {
	return d.videoStream.CodecParameters()
}

// FrameRate returns the stream's average frame rate, falling back to the
// real base rate. 0 means unknown.
func (d *Demuxer) FrameRate() float64 {
	if fps := rationalToFloat(d.videoStream.AvgFrameRate()); fps > 0 {
		return fps
	}
	return rationalToFloat(d.videoStream.RFrameRate())
}

// FrameCount returns the frame count stored in the container, 0 if absent
func (d *Demuxer) FrameCount() int {
	return int(d.videoStream.NbFrames())
}

// ReadPacket reads the next packet from the file.
// Returns whether it belongs to the video stream, and io.EOF when the file ends.
func (d *Demuxer) ReadPacket() (*astiav.Packet, bool, error) {
	if d.closed {
		return nil, false, fmt.Errorf("demuxer closed")
	}

	pkt := astiav.AllocPacket()
	if pkt == nil {
		return nil, false, fmt.Errorf("failed to allocate packet")
	}

	if err := d.formatCtx.ReadFrame(pkt); err != nil {
		pkt.Free()
		if errors.Is(err, astiav.ErrEof) {
			return nil, false, io.EOF
		}
		return nil, false, fmt.Errorf("failed to read packet: %w", err)
	}

	return pkt, pkt.StreamIndex() == d.videoIdx, nil
}

// Close releases all resources
func (d *Demuxer) Close() {
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

func rationalToFloat(r astiav.Rational) float64 {
	if r.Den() == 0 {
		return 0
	}
	return float64(r.Num()) / float64(r.Den())
}
