package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	kscreenshot "github.com/kbinani/screenshot"
	"github.com/vova616/screenshot"
)

const (
	liveFrameInterval       = 50 * time.Millisecond
	captureStatsLogInterval = 5 * time.Second
)

// FrameSnapshot carries the latest live frame and metadata.
type FrameSnapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// GrabFunc captures the given screen rectangle.
type GrabFunc func(image.Rectangle) (*image.RGBA, error)

// Concealer hides the host window so it does not appear in a screen grab.
// Conceal blocks until the window is hidden. Reveal may return before the
// window is shown again.
type Concealer interface {
	Conceal(ctx context.Context) error
	Reveal()
}

// DisplayBounds returns the screen bounds of display index. Out-of-range
// indexes fall back to the primary display.
func DisplayBounds(index int) image.Rectangle {
	n := kscreenshot.NumActiveDisplays()
	if n <= 0 {
		if r, err := screenshot.ScreenRect(); err == nil {
			return r
		}
		return image.Rectangle{}
	}
	if index < 0 || index >= n {
		index = 0
	}
	return kscreenshot.GetDisplayBounds(index)
}

// ScreenRenderer uses one display as the rendered viewport. A live loop keeps
// a preview frame fresh; offscreen mode pauses it and RenderFrame grabs one
// full-resolution frame for readback. The preview is shown scaled to fit a
// limit, so layout pixels (ClientSize) and buffer pixels (BufferSize) differ.
type ScreenRenderer struct {
	logger *slog.Logger
	grab   GrabFunc

	mu         sync.Mutex
	bounds     image.Rectangle
	limitW     int
	limitH     int
	offscreen  bool
	overlays   bool
	gizmos     bool
	clearColor Color
	frame      *image.RGBA // offscreen render target
	concealer  Concealer
	concealed  bool // Reveal owed when offscreen mode ends

	loopMu   sync.Mutex
	stop     chan struct{}
	running  atomic.Bool
	latest   atomic.Pointer[FrameSnapshot]
	grabs    atomic.Uint64
	skipped  atomic.Uint64
	sequence atomic.Uint64
}

// NewScreenRenderer builds a renderer over bounds. A nil grab uses the
// system screenshot backend.
func NewScreenRenderer(bounds image.Rectangle, previewW, previewH int, grab GrabFunc, logger *slog.Logger) *ScreenRenderer {
	if grab == nil {
		grab = platformGrab
	}
	return &ScreenRenderer{
		logger:     logger,
		grab:       grab,
		bounds:     bounds,
		limitW:     previewW,
		limitH:     previewH,
		overlays:   true,
		gizmos:     true,
		clearColor: defaultBackground,
	}
}

// SetBounds switches the renderer to another screen rectangle.
func (s *ScreenRenderer) SetBounds(r image.Rectangle) {
	s.mu.Lock()
	s.bounds = r
	s.mu.Unlock()
}

// SetConcealer installs the hook that hides the host window around offscreen
// grabs. A nil c grabs with the window as it is.
func (s *ScreenRenderer) SetConcealer(c Concealer) {
	s.mu.Lock()
	s.concealer = c
	s.mu.Unlock()
}

// SetPreviewLimit changes the maximum layout size of the preview.
func (s *ScreenRenderer) SetPreviewLimit(w, h int) {
	s.mu.Lock()
	s.limitW, s.limitH = w, h
	s.mu.Unlock()
}

// BufferSize implements Viewport: the display size in pixels.
func (s *ScreenRenderer) BufferSize() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds.Dx(), s.bounds.Dy()
}

// ClientSize implements Viewport: the display scaled to fit the preview limit.
func (s *ScreenRenderer) ClientSize() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fitSize(s.bounds.Dx(), s.bounds.Dy(), s.limitW, s.limitH)
}

func fitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return w, h
	}
	ratio := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(1, int(float64(w)*ratio+0.5)), max(1, int(float64(h)*ratio+0.5))
}

func (s *ScreenRenderer) StartOffscreen(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offscreen {
		return errors.New("offscreen mode already active")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid offscreen size %dx%d", width, height)
	}
	s.offscreen = true
	s.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

func (s *ScreenRenderer) EndOffscreen() {
	s.mu.Lock()
	s.offscreen = false
	s.frame = nil
	reveal := s.concealed
	s.concealed = false
	c := s.concealer
	s.mu.Unlock()
	if reveal && c != nil {
		c.Reveal()
	}
}

// Offscreen reports whether offscreen mode is active.
func (s *ScreenRenderer) Offscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offscreen
}

func (s *ScreenRenderer) OverlaysVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlays
}

func (s *ScreenRenderer) SetOverlaysVisible(v bool) {
	s.mu.Lock()
	s.overlays = v
	s.mu.Unlock()
}

func (s *ScreenRenderer) GizmosEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gizmos
}

func (s *ScreenRenderer) SetGizmosEnabled(v bool) {
	s.mu.Lock()
	s.gizmos = v
	s.mu.Unlock()
}

func (s *ScreenRenderer) ClearColor() Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearColor
}

func (s *ScreenRenderer) SetClearColor(c Color) {
	s.mu.Lock()
	s.clearColor = c
	s.mu.Unlock()
}

// RenderFrame hides the host window, grabs one frame and draws it over the
// clear color into the offscreen target. The window stays hidden until
// offscreen mode ends. The grab runs without the lock held, so the UI thread
// can keep querying sizes while it is in flight.
func (s *ScreenRenderer) RenderFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if !s.offscreen || s.frame == nil {
		s.mu.Unlock()
		return errors.New("render requested outside offscreen mode")
	}
	target := s.frame
	bounds := s.bounds
	c := s.concealer
	if c != nil {
		s.concealed = true
	}
	s.mu.Unlock()

	if c != nil {
		if err := c.Conceal(ctx); err != nil {
			return fmt.Errorf("hide window: %w", err)
		}
	}
	img, err := s.grab(bounds)
	if err != nil {
		return err
	}
	if img == nil {
		return errors.New("screen grab returned no image")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame != target {
		return errors.New("offscreen mode ended during render")
	}
	draw.Draw(target, target.Bounds(), image.NewUniform(s.clearColor.RGBA8()), image.Point{}, draw.Src)
	draw.Draw(target, target.Bounds(), img, img.Bounds().Min, draw.Over)
	return nil
}

// ReadPixels implements Readback against the offscreen target.
func (s *ScreenRenderer) ReadPixels(ctx context.Context, rect image.Rectangle, dst []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return errors.New("no rendered frame to read")
	}
	if !rect.In(s.frame.Bounds()) {
		return fmt.Errorf("read rect %v outside frame %v", rect, s.frame.Bounds())
	}
	row := rect.Dx() * 4
	if len(dst) < row*rect.Dy() {
		return fmt.Errorf("destination holds %d bytes, need %d", len(dst), row*rect.Dy())
	}
	for y := 0; y < rect.Dy(); y++ {
		off := s.frame.PixOffset(rect.Min.X, rect.Min.Y+y)
		copy(dst[y*row:(y+1)*row], s.frame.Pix[off:off+row])
	}
	return nil
}

// Start launches the live preview loop. It is a no-op while a loop runs.
func (s *ScreenRenderer) Start() {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.running.Store(true)
	go s.loop(s.stop)
}

// Stop ends the live preview loop. A grab in flight finishes first.
func (s *ScreenRenderer) Stop() {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.stop = nil
	s.running.Store(false)
}

// Running reports whether the live loop is active.
func (s *ScreenRenderer) Running() bool { return s.running.Load() }

// LatestFrame returns the freshest live frame.
func (s *ScreenRenderer) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (s *ScreenRenderer) loop(stop <-chan struct{}) {
	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()
	wait := time.NewTimer(0)
	defer wait.Stop()
	for {
		select {
		case <-stop:
			return
		case <-wait.C:
		}
		wait.Reset(liveFrameInterval)
		if s.Offscreen() {
			s.skipped.Add(1)
			continue
		}
		s.mu.Lock()
		bounds := s.bounds
		s.mu.Unlock()
		img, err := s.grab(bounds)
		if err != nil || img == nil {
			if err != nil && s.logger != nil {
				s.logger.Error("live grab", "error", err)
			}
			s.skipped.Add(1)
			continue
		}
		s.grabs.Add(1)
		seq := s.sequence.Add(1)
		s.latest.Store(&FrameSnapshot{Image: img, CapturedAt: time.Now(), Sequence: seq})

		select {
		case <-logTicker.C:
			if s.logger != nil {
				s.logger.Debug("live.stats", "grabs", s.grabs.Load(), "skipped", s.skipped.Load())
			}
		default:
		}
	}
}
