package region

import (
	"log/slog"
	"math"
)

const (
	DefaultSize          = 512
	DefaultMinSize       = 64
	DefaultEdgeThreshold = 10

	// defaultTolerance is how far (px) the region may drift from its default
	// geometry and still count as unmodified.
	defaultTolerance = 1.0
)

// Options configures a Controller. Zero fields take the package defaults.
type Options struct {
	DefaultWidth  float64
	DefaultHeight float64
	MinSize       float64
	EdgeThreshold float64
}

func (o Options) withDefaults() Options {
	if o.DefaultWidth <= 0 {
		o.DefaultWidth = DefaultSize
	}
	if o.DefaultHeight <= 0 {
		o.DefaultHeight = DefaultSize
	}
	if o.MinSize <= 0 {
		o.MinSize = DefaultMinSize
	}
	if o.EdgeThreshold <= 0 {
		o.EdgeThreshold = DefaultEdgeThreshold
	}
	return o
}

// Controller owns the capture region geometry and its pointer interaction
// state. All methods are expected to run on the UI goroutine; none of them
// block.
type Controller struct {
	vp       Viewport
	opts     Options
	logger   *slog.Logger
	listener Listener

	rect Rect
	def  Rect // where Reset would put the region for the current viewport

	modifierHeld bool
	pointerKnown bool
	pointerX     float64 // viewport-local
	pointerY     float64

	dragging  bool
	resizing  bool
	handle    Handle // latched at press while resizing
	startX    float64
	startY    float64
	startRect Rect

	disposed bool
}

// NewController builds a controller whose region starts at the default size,
// centered in vp.
func NewController(vp Viewport, opts Options, logger *slog.Logger) *Controller {
	c := &Controller{vp: vp, opts: opts.withDefaults(), logger: logger}
	c.rect = c.centeredDefault()
	c.def = c.rect
	return c
}

// SetListener registers the receiver of reset notifications.
func (c *Controller) SetListener(l Listener) { c.listener = l }

// Options returns the effective options.
func (c *Controller) Options() Options { return c.opts }

// CurrentRegion returns the authoritative region in viewport-local pixels.
func (c *Controller) CurrentRegion() Rect { return c.rect }

// DefaultRegion returns the geometry Reset would restore for the current viewport.
func (c *Controller) DefaultRegion() Rect { return c.def }

// IsModifying reports whether a drag or resize is in progress.
func (c *Controller) IsModifying() bool { return c.dragging || c.resizing }

// ModifierHeld reports whether the interaction modifier is down.
func (c *Controller) ModifierHeld() bool { return c.modifierHeld }

// SetSize sets the region dimensions and re-centers it. Default-position
// bookkeeping follows only when the new size is the configured default.
func (c *Controller) SetSize(width, height float64) {
	if c.disposed {
		return
	}
	if c.IsModifying() {
		c.release()
	}
	vw, vh := c.viewportSize()
	c.rect = Centered(width, height, vw, vh, c.opts.MinSize)
	if width == c.opts.DefaultWidth && height == c.opts.DefaultHeight {
		c.def = c.rect
	}
	c.debug("region.size", "width", c.rect.Width, "height", c.rect.Height)
}

// Reset restores the default size, re-centers and notifies the listener.
func (c *Controller) Reset() {
	if c.disposed {
		return
	}
	if c.IsModifying() {
		c.release()
	}
	c.rect = c.centeredDefault()
	c.def = c.rect
	c.debug("region.reset", "left", c.rect.Left, "top", c.rect.Top)
	if c.listener != nil {
		c.listener.OnRegionReset()
	}
}

// OnViewportResize keeps a region that still has its default size centered;
// a user-sized region keeps its geometry and is only pulled back into bounds.
func (c *Controller) OnViewportResize() {
	if c.disposed {
		return
	}
	vw, vh := c.viewportSize()
	atDefault := math.Abs(c.rect.Width-c.def.Width) <= defaultTolerance &&
		math.Abs(c.rect.Height-c.def.Height) <= defaultTolerance
	c.def = c.centeredDefault()
	if atDefault && !c.IsModifying() {
		c.rect = c.def
	} else {
		c.rect = Fit(c.rect, vw, vh, c.opts.MinSize)
		if c.IsModifying() {
			c.startRect = Fit(c.startRect, vw, vh, c.opts.MinSize)
		}
	}
	c.debug("region.viewport", "width", vw, "height", vh, "recentred", atDefault)
}

// ModifierDown enables interaction with the region.
func (c *Controller) ModifierDown() {
	if c.disposed {
		return
	}
	c.modifierHeld = true
}

// ModifierUp makes the region pointer-transparent again. An interaction in
// progress ends as if the pointer had been released.
func (c *Controller) ModifierUp() {
	if c.disposed {
		return
	}
	c.modifierHeld = false
	if c.IsModifying() {
		c.release()
	}
}

// PointerEnter records where the pointer entered the viewport surface.
func (c *Controller) PointerEnter(screenX, screenY float64) { c.PointerMove(screenX, screenY) }

// PointerLeave forgets the pointer position unless an interaction is running.
func (c *Controller) PointerLeave() {
	if c.disposed || c.IsModifying() {
		return
	}
	c.pointerKnown = false
}

// PointerMove updates hover state, or the geometry while dragging/resizing.
// Coordinates are in screen space.
func (c *Controller) PointerMove(screenX, screenY float64) {
	if c.disposed {
		return
	}
	x, y := c.toLocal(screenX, screenY)
	c.pointerX, c.pointerY, c.pointerKnown = x, y, true
	vw, vh := c.viewportSize()
	switch {
	case c.dragging:
		c.rect = Drag(c.startRect, x-c.startX, y-c.startY, vw, vh)
	case c.resizing:
		c.rect = Resize(c.startRect, c.handle, x-c.startX, y-c.startY, c.opts.MinSize, vw, vh)
	}
}

// PointerDown starts a drag or resize when the modifier is held and the
// pointer is over the region. It reports whether the event was consumed;
// unconsumed events belong to whatever is beneath the region.
func (c *Controller) PointerDown(screenX, screenY float64) bool {
	if c.disposed || !c.modifierHeld || c.IsModifying() {
		return false
	}
	x, y := c.toLocal(screenX, screenY)
	c.pointerX, c.pointerY, c.pointerKnown = x, y, true
	if !c.rect.Contains(x, y) {
		return false
	}
	h := HitTest(c.rect, x, y, c.opts.EdgeThreshold)
	c.startX, c.startY = x, y
	c.startRect = c.rect
	c.handle = h
	if h == HandleNone {
		c.dragging = true
		c.debug("region.drag.start", "x", x, "y", y)
	} else {
		c.resizing = true
		c.debug("region.resize.start", "handle", h.String(), "x", x, "y", y)
	}
	return true
}

// PointerUp finishes a drag or resize. It reports whether the event was consumed.
func (c *Controller) PointerUp(screenX, screenY float64) bool {
	if c.disposed || !c.IsModifying() {
		return false
	}
	c.PointerMove(screenX, screenY)
	c.release()
	return true
}

func (c *Controller) release() {
	c.dragging = false
	c.resizing = false
	c.handle = HandleNone
	c.debug("region.release",
		"left", c.rect.Left, "top", c.rect.Top,
		"width", c.rect.Width, "height", c.rect.Height)
}

// Dispose tears the controller down. Later calls are ignored.
func (c *Controller) Dispose() {
	c.disposed = true
	c.listener = nil
	c.modifierHeld = false
	c.pointerKnown = false
	c.dragging = false
	c.resizing = false
	c.handle = HandleNone
}

func (c *Controller) hovering() bool {
	return c.pointerKnown && c.rect.Contains(c.pointerX, c.pointerY)
}

// Mode projects the current flags onto a ModifierMode.
func (c *Controller) Mode() ModifierMode {
	return ProjectMode(c.modifierHeld, c.hovering(), c.IsModifying())
}

// State returns the interaction state.
func (c *Controller) State() InteractionState {
	switch {
	case c.dragging:
		return StateDragging
	case c.resizing:
		return StateResizing
	case c.modifierHeld && c.hovering():
		return StateHovering
	default:
		return StateIdle
	}
}

// ActiveHandle returns the handle being resized, or the one under the pointer
// while hovering. Hit-testing is skipped while the region is transparent.
func (c *Controller) ActiveHandle() Handle {
	switch {
	case c.resizing:
		return c.handle
	case c.dragging || !c.modifierHeld || !c.hovering():
		return HandleNone
	default:
		return HitTest(c.rect, c.pointerX, c.pointerY, c.opts.EdgeThreshold)
	}
}

// Cursor returns the Tk cursor for the pointer, or "" to keep the default.
func (c *Controller) Cursor() string {
	if c.IsModifying() || c.State() == StateHovering {
		return c.ActiveHandle().Cursor()
	}
	return ""
}

// PointerTransparent reports whether pointer events should pass through the region.
func (c *Controller) PointerTransparent() bool { return c.Mode() == ModeNormal }

// ResetVisible reports whether the reset affordance should be offered.
func (c *Controller) ResetVisible() bool {
	return c.modifierHeld && c.rect.Differs(c.def, defaultTolerance)
}

// Snapshot returns all view-facing projections at once.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Rect:               c.rect,
		State:              c.State(),
		Handle:             c.ActiveHandle(),
		Mode:               c.Mode(),
		Cursor:             c.Cursor(),
		PointerTransparent: c.PointerTransparent(),
		Emphasized:         c.IsModifying(),
		ResetVisible:       c.ResetVisible(),
	}
}

func (c *Controller) centeredDefault() Rect {
	vw, vh := c.viewportSize()
	return Centered(c.opts.DefaultWidth, c.opts.DefaultHeight, vw, vh, c.opts.MinSize)
}

func (c *Controller) viewportSize() (float64, float64) {
	if c.vp == nil {
		return 0, 0
	}
	return c.vp.Size()
}

func (c *Controller) toLocal(x, y float64) (float64, float64) {
	if c.vp == nil {
		return x, y
	}
	ox, oy := c.vp.Origin()
	return x - ox, y - oy
}

func (c *Controller) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
