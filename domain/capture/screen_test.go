package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync/atomic"
	"testing"
	"time"
)

func solidGrab(c color.RGBA) GrabFunc {
	return func(r image.Rectangle) (*image.RGBA, error) {
		img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
		}
		return img, nil
	}
}

func TestScreenRenderer_ClientSizeFitsPreview(t *testing.T) {
	s := NewScreenRenderer(image.Rect(0, 0, 1920, 1080), 960, 960, solidGrab(color.RGBA{}), discardLogger)
	if w, h := s.ClientSize(); w != 960 || h != 540 {
		t.Fatalf("expected 960x540 got %dx%d", w, h)
	}
	if w, h := s.BufferSize(); w != 1920 || h != 1080 {
		t.Fatalf("expected 1920x1080 got %dx%d", w, h)
	}
	s.SetPreviewLimit(4000, 4000)
	if w, h := s.ClientSize(); w != 1920 || h != 1080 {
		t.Fatalf("small displays should not be upscaled, got %dx%d", w, h)
	}
}

func TestScreenRenderer_RenderRequiresOffscreen(t *testing.T) {
	s := NewScreenRenderer(image.Rect(0, 0, 4, 4), 0, 0, solidGrab(color.RGBA{A: 255}), discardLogger)
	if err := s.RenderFrame(context.Background()); err == nil {
		t.Fatalf("expected error rendering outside offscreen mode")
	}
	if err := s.StartOffscreen(4, 4); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.StartOffscreen(4, 4); err == nil {
		t.Fatalf("expected error on nested offscreen")
	}
	s.EndOffscreen()
	if s.Offscreen() {
		t.Fatalf("offscreen still active")
	}
}

func TestScreenRenderer_ReadPixels(t *testing.T) {
	s := NewScreenRenderer(image.Rect(100, 100, 110, 110), 0, 0, solidGrab(color.RGBA{R: 9, G: 8, B: 7, A: 255}), discardLogger)
	if err := s.StartOffscreen(10, 10); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.EndOffscreen()
	if err := s.RenderFrame(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}
	dst := make([]byte, 2*3*4)
	if err := s.ReadPixels(context.Background(), image.Rect(4, 4, 6, 7), dst); err != nil {
		t.Fatalf("read: %v", err)
	}
	for i := 0; i < len(dst); i += 4 {
		if dst[i] != 9 || dst[i+1] != 8 || dst[i+2] != 7 || dst[i+3] != 255 {
			t.Fatalf("unexpected pixel at %d: %v", i/4, dst[i:i+4])
		}
	}
	if err := s.ReadPixels(context.Background(), image.Rect(8, 8, 12, 12), make([]byte, 64)); err == nil {
		t.Fatalf("expected error for rect outside frame")
	}
}

func TestScreenRenderer_TransparentGrabShowsClearColor(t *testing.T) {
	s := NewScreenRenderer(image.Rect(0, 0, 2, 2), 0, 0, solidGrab(color.RGBA{}), discardLogger)
	s.SetClearColor(Color{R: 1, G: 0, B: 0})
	if err := s.StartOffscreen(2, 2); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.EndOffscreen()
	if err := s.RenderFrame(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}
	dst := make([]byte, 4)
	if err := s.ReadPixels(context.Background(), image.Rect(0, 0, 1, 1), dst); err != nil {
		t.Fatalf("read: %v", err)
	}
	if dst[0] != 255 || dst[1] != 0 || dst[2] != 0 || dst[3] != 255 {
		t.Fatalf("expected clear color, got %v", dst)
	}
}

func TestPipeline_WithScreenRenderer(t *testing.T) {
	s := NewScreenRenderer(image.Rect(0, 0, 200, 100), 100, 100, solidGrab(color.RGBA{R: 1, G: 2, B: 3, A: 255}), discardLogger)
	p := NewPipeline(Dependencies{
		Viewport: s,
		Renderer: s,
		Readback: s,
		Encoder:  NewPNGEncoder(ParseCompression("speed")),
		Region:   fixedRegion{Left: 10, Top: 10, Width: 20, Height: 20},
	}, discardLogger)
	res, err := p.Capture(context.Background())
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	// preview is 100x50 for a 200x100 display, so the region doubles
	if res.Source != image.Rect(20, 20, 60, 60) {
		t.Fatalf("unexpected source %v", res.Source)
	}
	if s.Offscreen() || !s.OverlaysVisible() || !s.GizmosEnabled() {
		t.Fatalf("renderer state not restored")
	}
}

type fakeConcealer struct {
	hidden   atomic.Bool
	conceals atomic.Int32
	reveals  atomic.Int32
	err      error
}

func (f *fakeConcealer) Conceal(ctx context.Context) error {
	f.conceals.Add(1)
	if f.err != nil {
		return f.err
	}
	f.hidden.Store(true)
	return nil
}

func (f *fakeConcealer) Reveal() {
	f.reveals.Add(1)
	f.hidden.Store(false)
}

// hiddenOnlyGrab fails unless the concealer reports the window hidden.
func hiddenOnlyGrab(f *fakeConcealer) GrabFunc {
	grab := solidGrab(color.RGBA{R: 4, G: 5, B: 6, A: 255})
	return func(r image.Rectangle) (*image.RGBA, error) {
		if !f.hidden.Load() {
			return nil, errors.New("window visible during grab")
		}
		return grab(r)
	}
}

func TestScreenRenderer_HidesWindowForCapture(t *testing.T) {
	f := &fakeConcealer{}
	s := NewScreenRenderer(image.Rect(0, 0, 200, 100), 100, 100, hiddenOnlyGrab(f), discardLogger)
	s.SetConcealer(f)
	p := NewPipeline(Dependencies{
		Viewport: s,
		Renderer: s,
		Readback: s,
		Encoder:  NewPNGEncoder(ParseCompression("speed")),
		Region:   fixedRegion{Left: 10, Top: 10, Width: 20, Height: 20},
	}, discardLogger)
	if _, err := p.Capture(context.Background()); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if f.conceals.Load() != 1 || f.reveals.Load() != 1 {
		t.Fatalf("conceals=%d reveals=%d", f.conceals.Load(), f.reveals.Load())
	}
	if f.hidden.Load() {
		t.Fatalf("window left hidden after capture")
	}
}

func TestScreenRenderer_ConcealFailureFailsRender(t *testing.T) {
	f := &fakeConcealer{err: errors.New("no ack")}
	s := NewScreenRenderer(image.Rect(0, 0, 4, 4), 0, 0, hiddenOnlyGrab(f), discardLogger)
	s.SetConcealer(f)
	if err := s.StartOffscreen(4, 4); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.RenderFrame(context.Background()); err == nil {
		t.Fatalf("expected render to fail without the hidden acknowledgement")
	}
	s.EndOffscreen()
	if f.reveals.Load() != 1 {
		t.Fatalf("window not revealed after failed render")
	}
}

func TestScreenRenderer_GrabRunsWithoutLock(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	grab := solidGrab(color.RGBA{A: 255})
	s := NewScreenRenderer(image.Rect(0, 0, 8, 8), 4, 4, func(r image.Rectangle) (*image.RGBA, error) {
		close(entered)
		<-release
		return grab(r)
	}, discardLogger)
	if err := s.StartOffscreen(8, 8); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.EndOffscreen()
	rendered := make(chan error, 1)
	go func() { rendered <- s.RenderFrame(context.Background()) }()
	<-entered

	sized := make(chan struct{})
	go func() {
		s.ClientSize()
		s.OverlaysVisible()
		close(sized)
	}()
	select {
	case <-sized:
	case <-time.After(time.Second):
		t.Fatalf("ClientSize blocked by an in-flight grab")
	}
	close(release)
	if err := <-rendered; err != nil {
		t.Fatalf("render: %v", err)
	}
}

func TestScreenRenderer_StartTwiceRunsOneLoop(t *testing.T) {
	var entered atomic.Int32
	release := make(chan struct{})
	grab := solidGrab(color.RGBA{A: 255})
	s := NewScreenRenderer(image.Rect(0, 0, 4, 4), 0, 0, func(r image.Rectangle) (*image.RGBA, error) {
		entered.Add(1)
		<-release
		return grab(r)
	}, discardLogger)
	s.Start()
	s.Start()
	time.Sleep(100 * time.Millisecond)
	if n := entered.Load(); n != 1 {
		t.Fatalf("expected one live loop, %d grabs in flight", n)
	}
	s.Stop()
	close(release)
	time.Sleep(150 * time.Millisecond)
	n := entered.Load()
	time.Sleep(150 * time.Millisecond)
	if entered.Load() != n || s.Running() {
		t.Fatalf("live loop kept running after Stop")
	}

	s.Start()
	defer s.Stop()
	if !s.Running() {
		t.Fatalf("restart after Stop did not run")
	}
}
