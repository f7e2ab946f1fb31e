package player

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/asticode/go-astiav"
)

func init() {
	// Suppress FFmpeg log messages, they would land on top of the frames
	astiav.SetLogLevel(astiav.LogLevelQuiet)
}

// errNeedPacket means the decoder has nothing buffered and wants more input
var errNeedPacket = errors.New("decoder needs another packet")

// VideoDecoder decodes video packets and converts frames to RGBA at the
// source resolution
type VideoDecoder struct {
	codecCtx *astiav.CodecContext
	swsCtx   *astiav.SoftwareScaleContext
	frame    *astiav.Frame
	rgbFrame *astiav.Frame

	// Geometry the sws context was built for
	swsWidth  int
	swsHeight int
	swsFormat astiav.PixelFormat

	draining bool
	closed   bool
}

// NewVideoDecoder creates a video decoder from codec parameters
func NewVideoDecoder(codecParams *astiav.CodecParameters) (*VideoDecoder, error) {
	v := &VideoDecoder{}

	codec := astiav.FindDecoder(codecParams.CodecID())
	if codec == nil {
		return nil, fmt.Errorf("video codec not found: %s", codecParams.CodecID())
	}

	v.codecCtx = astiav.AllocCodecContext(codec)
	if v.codecCtx == nil {
		return nil, fmt.Errorf("failed to allocate video codec context")
	}

	if err := codecParams.ToCodecContext(v.codecCtx); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to copy video codec params: %w", err)
	}

	if err := v.codecCtx.Open(codec, nil); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to open video codec: %w", err)
	}

	v.frame = astiav.AllocFrame()
	v.rgbFrame = astiav.AllocFrame()

	return v, nil
}

// SendPacket feeds one packet to the decoder. Corrupt packets are dropped.
func (v *VideoDecoder) SendPacket(pkt *astiav.Packet) error {
	if v.closed {
		return fmt.Errorf("video decoder closed")
	}

	if err := v.codecCtx.SendPacket(pkt); err != nil {
		if errors.Is(err, astiav.ErrInvaliddata) {
			return nil
		}
		return fmt.Errorf("failed to send video packet: %w", err)
	}
	return nil
}

// Drain tells the decoder no more packets are coming so buffered frames
// can be received
func (v *VideoDecoder) Drain() error {
	if v.closed || v.draining {
		return nil
	}
	v.draining = true

	if err := v.codecCtx.SendPacket(nil); err != nil && !errors.Is(err, astiav.ErrEof) {
		return fmt.Errorf("failed to drain video decoder: %w", err)
	}
	return nil
}

// ReceiveFrame returns the next decoded frame.
// Returns errNeedPacket when more input is required and io.EOF once drained.
func (v *VideoDecoder) ReceiveFrame() (*Frame, error) {
	if v.closed {
		return nil, fmt.Errorf("video decoder closed")
	}

	if err := v.codecCtx.ReceiveFrame(v.frame); err != nil {
		switch {
		case errors.Is(err, astiav.ErrEagain):
			return nil, errNeedPacket
		case errors.Is(err, astiav.ErrEof):
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to receive video frame: %w", err)
	}
	defer v.frame.Unref()

	img, err := v.toRGBA()
	if err != nil {
		return nil, err
	}

	return &Frame{Image: img}, nil
}

// toRGBA converts the current decoded frame to a packed RGBA image
func (v *VideoDecoder) toRGBA() (*image.RGBA, error) {
	w, h := v.frame.Width(), v.frame.Height()
	if w <= 0 || h <= 0 {
		// Let the caller decide what to do with a frame that has no pixels
		return image.NewRGBA(image.Rect(0, 0, 0, 0)), nil
	}

	if v.swsCtx == nil || w != v.swsWidth || h != v.swsHeight || v.frame.PixelFormat() != v.swsFormat {
		if err := v.initSwsContext(w, h, v.frame.PixelFormat()); err != nil {
			return nil, err
		}
	}

	if err := v.swsCtx.ScaleFrame(v.frame, v.rgbFrame); err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}

	rgbaBytes, err := v.rgbFrame.Data().Bytes(1)
	if err != nil {
		return nil, fmt.Errorf("failed to get RGBA bytes: %w", err)
	}

	// Copy the data since the frame buffer will be reused
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, rgbaBytes)
	return img, nil
}

func (v *VideoDecoder) initSwsContext(w, h int, format astiav.PixelFormat) error {
	if v.swsCtx != nil {
		v.swsCtx.Free()
		v.swsCtx = nil
	}

	// Same size on both sides: sws only converts the pixel format here,
	// downsampling happens in the ascii package
	var err error
	v.swsCtx, err = astiav.CreateSoftwareScaleContext(
		w, h, format,
		w, h, astiav.PixelFormatRgba,
		astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBilinear),
	)
	if err != nil {
		return fmt.Errorf("failed to create sws context: %w", err)
	}

	v.rgbFrame.Unref()
	v.rgbFrame.SetWidth(w)
	v.rgbFrame.SetHeight(h)
	v.rgbFrame.SetPixelFormat(astiav.PixelFormatRgba)
	if err := v.rgbFrame.AllocBuffer(1); err != nil {
		return fmt.Errorf("failed to allocate RGBA frame buffer: %w", err)
	}

	v.swsWidth, v.swsHeight, v.swsFormat = w, h, format
	return nil
}

// Close releases all resources
func (v *VideoDecoder) Close() {
	if v.closed {
		return
	}
	v.closed = true

	if v.frame != nil {
		v.frame.Free()
		v.frame = nil
	}
	if v.rgbFrame != nil {
		v.rgbFrame.Free()
		v.rgbFrame = nil
	}
	if v.swsCtx != nil {
		v.swsCtx.Free()
		v.swsCtx = nil
	}
	if v.codecCtx != nil {
		v.codecCtx.Free()
		v.codecCtx = nil
	}
}
