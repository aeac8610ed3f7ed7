package capture

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/soocke/region-capture/domain/region"
)

// Color is a normalized RGB color with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// RGBA8 converts c to an opaque 8-bit color, clamping out-of-range channels.
func (c Color) RGBA8() color.RGBA {
	conv := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{R: conv(c.R), G: conv(c.G), B: conv(c.B), A: 255}
}

// Viewport reports the render surface size in layout pixels (ClientSize) and
// in backing-buffer pixels (BufferSize).
type Viewport interface {
	ClientSize() (width, height int)
	BufferSize() (width, height int)
}

// Renderer controls the offscreen render path. RenderFrame forces one render
// and returns only after that frame has completed.
type Renderer interface {
	StartOffscreen(width, height int) error
	EndOffscreen()
	OverlaysVisible() bool
	SetOverlaysVisible(bool)
	GizmosEnabled() bool
	SetGizmosEnabled(bool)
	ClearColor() Color
	SetClearColor(Color)
	RenderFrame(ctx context.Context) error
}

// Readback copies an RGBA8 rectangle of the last rendered frame into dst.
// len(dst) is rect.Dx()*rect.Dy()*4.
type Readback interface {
	ReadPixels(ctx context.Context, rect image.Rectangle, dst []byte) error
}

// Encoder compresses interleaved 8-bit pixels (channels 3 or 4) into an image.
type Encoder interface {
	Encode(ctx context.Context, pix []byte, channels, width, height int) ([]byte, error)
}

// BackgroundSource reports the background color captures are composited on.
// transparent=true requests a capture that keeps its alpha channel.
type BackgroundSource interface {
	BackgroundColor() (c Color, transparent bool)
}

// RegionSource supplies the current capture region in viewport-local layout pixels.
type RegionSource interface {
	CurrentRegion() region.Rect
}

// Listener is notified once per capture with its outcome.
type Listener interface {
	OnCaptureComplete(Result)
	OnCaptureFailed(error)
}

// Request describes one capture after the background and geometry were resolved.
type Request struct {
	Source      image.Rectangle
	Background  color.RGBA
	Transparent bool
}
