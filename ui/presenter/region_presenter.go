package presenter

import (
	"image"
	"log/slog"

	"github.com/soocke/region-capture/domain/capture"
	"github.com/soocke/region-capture/domain/region"
	"github.com/soocke/region-capture/ui/images"
)

// RegionController is the subset of region.Controller the presenter drives.
type RegionController interface {
	ModifierDown()
	ModifierUp()
	PointerEnter(x, y float64)
	PointerLeave()
	PointerMove(x, y float64)
	PointerDown(x, y float64) bool
	PointerUp(x, y float64) bool
	Reset()
	SetSize(w, h float64)
	OnViewportResize()
	Snapshot() region.Snapshot
}

// Surface supplies the live viewport frame and the renderer flags that decide
// whether the region overlay is drawn.
type Surface interface {
	LatestFrame() capture.FrameSnapshot
	ClientSize() (int, int)
	OverlaysVisible() bool
	GizmosEnabled() bool
}

// RegionView displays the viewport with its overlay and reflects pointer state.
type RegionView interface {
	ShowViewport(img image.Image)
	SetCursor(name string)
	SetResetVisible(visible bool)
}

// RegionPresenter routes overlay input to the region controller and renders
// the viewport with the region drawn on top. All methods run on the UI thread.
type RegionPresenter struct {
	ctrl    RegionController
	surface Surface
	view    RegionView
	style   images.OverlayStyle
	logger  *slog.Logger

	modifierKeys map[string]bool
	keysDown     map[string]bool

	sizeKnown bool
	lastW     int
	lastH     int
	lastSeq   uint64
	lastSnap  region.Snapshot
	synced    bool
	dirty     bool
}

// NewRegionPresenter constructs a presenter drawing the region in style.
// modifierKeys are the Tk keysyms that count as the region modifier.
func NewRegionPresenter(ctrl RegionController, surface Surface, view RegionView, style images.OverlayStyle, modifierKeys []string, logger *slog.Logger) *RegionPresenter {
	keys := make(map[string]bool, len(modifierKeys))
	for _, k := range modifierKeys {
		keys[k] = true
	}
	return &RegionPresenter{
		ctrl:         ctrl,
		surface:      surface,
		view:         view,
		style:        style,
		logger:       logger,
		modifierKeys: keys,
		keysDown:     make(map[string]bool),
		dirty:        true,
	}
}

// KeyPress handles a key press by keysym. Only configured modifier keys matter.
func (p *RegionPresenter) KeyPress(keysym string) {
	if p == nil || p.ctrl == nil || !p.modifierKeys[keysym] {
		return
	}
	first := len(p.keysDown) == 0
	p.keysDown[keysym] = true
	if first {
		p.ctrl.ModifierDown()
		p.sync()
	}
}

// KeyRelease handles a key release. The modifier is released once every
// configured modifier key is up.
func (p *RegionPresenter) KeyRelease(keysym string) {
	if p == nil || p.ctrl == nil || !p.keysDown[keysym] {
		return
	}
	delete(p.keysDown, keysym)
	if len(p.keysDown) == 0 {
		p.ctrl.ModifierUp()
		p.sync()
	}
}

// FocusLost drops any held modifier; its key release will never arrive.
func (p *RegionPresenter) FocusLost() {
	if p == nil || p.ctrl == nil || len(p.keysDown) == 0 {
		return
	}
	clear(p.keysDown)
	p.ctrl.ModifierUp()
	p.sync()
}

func (p *RegionPresenter) Enter(x, y int) {
	if p == nil || p.ctrl == nil {
		return
	}
	p.ctrl.PointerEnter(float64(x), float64(y))
	p.sync()
}

func (p *RegionPresenter) Leave() {
	if p == nil || p.ctrl == nil {
		return
	}
	p.ctrl.PointerLeave()
	p.sync()
}

func (p *RegionPresenter) Motion(x, y int) {
	if p == nil || p.ctrl == nil {
		return
	}
	p.ctrl.PointerMove(float64(x), float64(y))
	p.sync()
}

// ButtonPress reports whether the press was consumed by the region.
func (p *RegionPresenter) ButtonPress(x, y int) bool {
	if p == nil || p.ctrl == nil {
		return false
	}
	consumed := p.ctrl.PointerDown(float64(x), float64(y))
	p.sync()
	return consumed
}

// ButtonRelease reports whether the release ended a drag or resize.
func (p *RegionPresenter) ButtonRelease(x, y int) bool {
	if p == nil || p.ctrl == nil {
		return false
	}
	consumed := p.ctrl.PointerUp(float64(x), float64(y))
	p.sync()
	return consumed
}

// Reset restores the default region.
func (p *RegionPresenter) Reset() {
	if p == nil || p.ctrl == nil {
		return
	}
	p.ctrl.Reset()
	p.sync()
}

// SetSize applies a size preset.
func (p *RegionPresenter) SetSize(w, h float64) {
	if p == nil || p.ctrl == nil {
		return
	}
	p.ctrl.SetSize(w, h)
	p.sync()
}

// OnRegionReset implements region.Listener.
func (p *RegionPresenter) OnRegionReset() {
	if p == nil {
		return
	}
	p.dirty = true
	if p.logger != nil {
		p.logger.Debug("region.reset.view")
	}
}

// Tick follows viewport size changes and redraws when the frame or the
// region changed.
func (p *RegionPresenter) Tick() {
	if p == nil || p.ctrl == nil || p.surface == nil || p.view == nil {
		return
	}
	w, h := p.surface.ClientSize()
	if !p.sizeKnown || w != p.lastW || h != p.lastH {
		if p.sizeKnown {
			p.ctrl.OnViewportResize()
			if p.logger != nil {
				p.logger.Debug("viewport.resize", "width", w, "height", h)
			}
		}
		p.sizeKnown = true
		p.lastW, p.lastH = w, h
		p.dirty = true
	}
	if w <= 0 || h <= 0 {
		return
	}
	frame := p.surface.LatestFrame()
	snap := p.ctrl.Snapshot()
	if !p.dirty && frame.Sequence == p.lastSeq && snap == p.lastSnap {
		return
	}
	p.dirty = false
	p.lastSeq = frame.Sequence

	var base *image.RGBA
	if frame.Image != nil {
		base = images.ScaleTo(frame.Image, w, h)
	} else {
		base = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	if p.surface.OverlaysVisible() {
		style := p.style
		style.ShowHandles = style.ShowHandles && p.surface.GizmosEnabled()
		images.RenderOverlay(base, snap, style)
	}
	p.view.ShowViewport(base)
	p.apply(snap)
}

// sync pushes cursor and reset affordance immediately after input; the
// viewport image itself waits for the next tick.
func (p *RegionPresenter) sync() {
	if p.view == nil {
		return
	}
	snap := p.ctrl.Snapshot()
	if snap.Rect != p.lastSnap.Rect || snap.Mode != p.lastSnap.Mode || snap.Emphasized != p.lastSnap.Emphasized {
		p.dirty = true
	}
	p.apply(snap)
}

func (p *RegionPresenter) apply(snap region.Snapshot) {
	if !p.synced || snap.Cursor != p.lastSnap.Cursor {
		p.view.SetCursor(snap.Cursor)
	}
	if !p.synced || snap.ResetVisible != p.lastSnap.ResetVisible {
		p.view.SetResetVisible(snap.ResetVisible)
	}
	p.synced = true
	p.lastSnap = snap
}
