package presenter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/region-capture/domain/capture"
	"github.com/soocke/region-capture/ui/model"
)

// Capturer runs one capture to completion.
type Capturer interface {
	Capture(ctx context.Context) (capture.Result, error)
}

// CaptureGate admits one capture at a time.
type CaptureGate interface {
	TryBegin() bool
	End()
	InFlight() bool
}

// Saver persists encoded captures and returns the written path.
type Saver interface {
	Save(pngBytes []byte, at time.Time) (string, error)
}

// CaptureView updates UI elements affected by a capture.
type CaptureView interface {
	ShowCapture(pngBytes []byte, width, height int)
	SetStatus(text string)
	SetCaptureEnabled(enabled bool)
}

type captureOutcome struct {
	res       capture.Result
	err       error
	savedPath string
	saveErr   error
}

// CapturePresenter runs captures on a worker goroutine and reflects their
// outcome on the UI tick. Trigger is safe to call from any goroutine; all
// other methods run on the UI thread.
type CapturePresenter struct {
	ctx     context.Context
	gate    CaptureGate
	capture Capturer
	results *model.ResultModel
	view    CaptureView
	saver   Saver // optional
	logger  *slog.Logger

	workerOnce sync.Once
	mu         sync.Mutex // guards workCh against send after close
	closed     bool
	workCh     chan struct{}
	resultCh   chan captureOutcome

	busyShown bool
}

// NewCapturePresenter constructs a capture presenter. saver may be nil.
func NewCapturePresenter(ctx context.Context, gate CaptureGate, c Capturer, results *model.ResultModel, view CaptureView, saver Saver, logger *slog.Logger) *CapturePresenter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &CapturePresenter{
		ctx:      ctx,
		gate:     gate,
		capture:  c,
		results:  results,
		view:     view,
		saver:    saver,
		logger:   logger,
		workCh:   make(chan struct{}, 1),
		resultCh: make(chan captureOutcome, 1),
	}
}

// Trigger requests a capture. It reports false when a capture is already in
// flight or the presenter is closed.
func (p *CapturePresenter) Trigger() bool {
	if p == nil || p.gate == nil || p.capture == nil {
		return false
	}
	if !p.gate.TryBegin() {
		if p.logger != nil {
			p.logger.Debug("capture.skip", "reason", "in flight")
		}
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.gate.End()
		return false
	}
	p.ensureWorker()
	p.workCh <- struct{}{}
	return true
}

func (p *CapturePresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *CapturePresenter) runWorker() {
	for range p.workCh {
		res, err := p.capture.Capture(p.ctx)
		out := captureOutcome{res: res, err: err}
		if err == nil && p.saver != nil {
			out.savedPath, out.saveErr = p.saver.Save(res.PNG, res.CapturedAt)
		}
		p.resultCh <- out
	}
}

// Tick drains finished captures and updates the view.
func (p *CapturePresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	select {
	case out := <-p.resultCh:
		p.handle(out)
	default:
	}
	busy := p.gate != nil && p.gate.InFlight()
	if busy != p.busyShown {
		p.busyShown = busy
		p.view.SetCaptureEnabled(!busy)
		if busy {
			p.view.SetStatus("Capturing...")
		}
	}
}

func (p *CapturePresenter) handle(out captureOutcome) {
	if p.gate != nil {
		p.gate.End()
	}
	if out.err != nil {
		if errors.Is(out.err, capture.ErrCaptureInFlight) {
			p.view.SetStatus("Capture already in progress")
			return
		}
		p.results.SetError(out.err)
		p.view.SetStatus("Capture failed: " + out.err.Error())
		return
	}
	res := out.res
	p.results.SetResult(res.PNG, res.Source, res.CapturedAt)
	p.view.ShowCapture(res.PNG, res.Width, res.Height)
	status := fmt.Sprintf("Captured %dx%d in %s", res.Width, res.Height, res.Duration.Round(time.Millisecond))
	switch {
	case out.saveErr != nil:
		status += " (save failed: " + out.saveErr.Error() + ")"
		if p.logger != nil {
			p.logger.Error("capture save", "error", out.saveErr)
		}
	case out.savedPath != "":
		p.results.SetSavedPath(out.savedPath)
		status += " -> " + out.savedPath
	}
	p.view.SetStatus(status)
}

// Close stops the worker after any running capture.
func (p *CapturePresenter) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.workCh)
	}
}
