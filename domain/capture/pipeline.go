package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/soocke/region-capture/domain/region"
)

// StageSetup tags failures caused by missing pipeline dependencies.
const StageSetup = "setup"

var defaultBackground = Color{R: 1, G: 1, B: 1}

// Dependencies are the collaborators a Pipeline drives.
type Dependencies struct {
	Viewport   Viewport
	Renderer   Renderer
	Readback   Readback
	Encoder    Encoder
	Background BackgroundSource // optional; white when nil
	Region     RegionSource
	Listener   Listener // optional
}

func (d Dependencies) validate() error {
	switch {
	case d.Viewport == nil:
		return errors.New("missing viewport")
	case d.Renderer == nil:
		return errors.New("missing renderer")
	case d.Readback == nil:
		return errors.New("missing readback")
	case d.Encoder == nil:
		return errors.New("missing encoder")
	case d.Region == nil:
		return errors.New("missing region source")
	}
	return nil
}

// Pipeline renders the viewport offscreen, reads back the region, composites
// it over the background and encodes it as PNG. Only one capture runs at a
// time; overlapping calls fail fast with ErrCaptureInFlight.
type Pipeline struct {
	deps   Dependencies
	logger *slog.Logger

	inFlight     atomic.Bool
	captures     atomic.Uint64
	failures     atomic.Uint64
	rejected     atomic.Uint64
	captureNanos atomic.Uint64
	lastCapture  atomic.Int64 // unix nanos
}

// NewPipeline constructs a pipeline over deps.
func NewPipeline(deps Dependencies, logger *slog.Logger) *Pipeline {
	return &Pipeline{deps: deps, logger: logger}
}

// SetListener replaces the outcome listener. Call before the first capture.
func (p *Pipeline) SetListener(l Listener) { p.deps.Listener = l }

// InFlight reports whether a capture is running.
func (p *Pipeline) InFlight() bool { return p.inFlight.Load() }

// Capture runs one capture to completion. Every failure, including a panic in
// a collaborator, is returned as an *Error and reported once to the listener.
// The renderer is restored to its previous state on every path.
func (p *Pipeline) Capture(ctx context.Context) (res Result, err error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.rejected.Add(1)
		return Result{}, ErrCaptureInFlight
	}
	defer p.inFlight.Store(false)

	start := time.Now()
	stage := StageSetup
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Error("capture panic", "stage", stage, "error", r, "stack", string(debug.Stack()))
			}
			err = &Error{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
			res = Result{}
		}
		p.finish(res, err)
	}()

	if err := p.deps.validate(); err != nil {
		return Result{}, &Error{Stage: StageSetup, Err: err}
	}

	stage = StageBackground
	bg, transparent := defaultBackground, false
	if p.deps.Background != nil {
		bg, transparent = p.deps.Background.BackgroundColor()
	}

	stage = StageGeometry
	cw, ch := p.deps.Viewport.ClientSize()
	bw, bh := p.deps.Viewport.BufferSize()
	src, err := SourceRect(p.deps.Region.CurrentRegion(), cw, ch, bw, bh)
	if err != nil {
		return Result{}, stageErr(stage, err)
	}
	req := Request{Source: src, Background: bg.RGBA8(), Transparent: transparent}

	stage = StageOffscreen
	release, err := acquireOffscreen(p.deps.Renderer, bw, bh, bg, transparent)
	if err != nil {
		return Result{}, stageErr(stage, err)
	}
	defer release()

	stage = StageRender
	if err := p.deps.Renderer.RenderFrame(ctx); err != nil {
		return Result{}, stageErr(stage, err)
	}

	stage = StageReadback
	w, h := req.Source.Dx(), req.Source.Dy()
	pix := acquirePixels(w * h * 4)
	defer recyclePixels(pix)
	if err := p.deps.Readback.ReadPixels(ctx, req.Source, pix); err != nil {
		return Result{}, stageErr(stage, err)
	}
	release()

	stage = StageComposite
	out, channels := pix, 4
	if !req.Transparent {
		out, err = Composite(pix, w, h, req.Background)
		if err != nil {
			return Result{}, stageErr(stage, err)
		}
		channels = 3
	}

	stage = StageEncode
	encoded, err := p.deps.Encoder.Encode(ctx, out, channels, w, h)
	if err != nil {
		return Result{}, stageErr(stage, err)
	}

	now := time.Now()
	return Result{
		DataURI:    DataURI(encoded),
		PNG:        encoded,
		Source:     req.Source,
		Width:      w,
		Height:     h,
		CapturedAt: now,
		Duration:   now.Sub(start),
	}, nil
}

func (p *Pipeline) finish(res Result, err error) {
	if err != nil {
		p.failures.Add(1)
		if p.logger != nil {
			var ce *Error
			stage := ""
			if errors.As(err, &ce) {
				stage = ce.Stage
			}
			p.logger.Error("capture.failed", "stage", stage, "error", err)
		}
		if p.deps.Listener != nil {
			p.deps.Listener.OnCaptureFailed(err)
		}
		return
	}
	p.captures.Add(1)
	p.captureNanos.Add(uint64(res.Duration.Nanoseconds()))
	p.lastCapture.Store(res.CapturedAt.UnixNano())
	if p.logger != nil {
		p.logger.Info("capture.complete",
			"width", res.Width,
			"height", res.Height,
			"bytes", len(res.PNG),
			"duration", res.Duration,
		)
	}
	if p.deps.Listener != nil {
		p.deps.Listener.OnCaptureComplete(res)
	}
}

// Stats returns pipeline counters.
func (p *Pipeline) Stats() CaptureStats {
	captures := p.captures.Load()
	total := p.captureNanos.Load()
	var avg time.Duration
	if captures > 0 {
		avg = time.Duration(total / captures)
	}
	var last time.Time
	var age time.Duration
	if ns := p.lastCapture.Load(); ns != 0 {
		last = time.Unix(0, ns)
		age = time.Since(last)
	}
	return CaptureStats{
		Captures:       captures,
		Failures:       p.failures.Load(),
		Rejected:       p.rejected.Load(),
		AvgCapture:     avg,
		AvgCaptureMS:   float64(avg) / float64(time.Millisecond),
		LastCapture:    last,
		LastCaptureAge: age,
		InFlight:       p.inFlight.Load(),
	}
}

// SourceRect converts a region in layout pixels into a backing-buffer
// rectangle, clamped so it never reaches outside the buffer.
func SourceRect(r region.Rect, clientW, clientH, bufferW, bufferH int) (image.Rectangle, error) {
	if bufferW <= 0 || bufferH <= 0 {
		return image.Rectangle{}, ErrEmptyRegion
	}
	sx, sy := 1.0, 1.0
	if clientW > 0 {
		sx = float64(bufferW) / float64(clientW)
	}
	if clientH > 0 {
		sy = float64(bufferH) / float64(clientH)
	}
	x := max(0, int(math.Round(r.Left*sx)))
	y := max(0, int(math.Round(r.Top*sy)))
	w := min(int(math.Round(r.Width*sx)), bufferW-x)
	h := min(int(math.Round(r.Height*sy)), bufferH-y)
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, ErrEmptyRegion
	}
	return image.Rect(x, y, x+w, y+h), nil
}
