package region

import "math"

// Rect is an axis-aligned rectangle in viewport-local layout pixels.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Contains reports whether (x, y) lies inside r. Edges are inclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right() && y >= r.Top && y <= r.Bottom()
}

// Differs reports whether any field of r differs from o by more than tol.
func (r Rect) Differs(o Rect, tol float64) bool {
	return math.Abs(r.Left-o.Left) > tol ||
		math.Abs(r.Top-o.Top) > tol ||
		math.Abs(r.Width-o.Width) > tol ||
		math.Abs(r.Height-o.Height) > tol
}

// Handle identifies the resize affordance under the pointer. HandleNone means
// the pointer is over the move zone.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
	HandleLeft
	HandleRight
	HandleTop
	HandleBottom
)

func (h Handle) String() string {
	switch h {
	case HandleNone:
		return "none"
	case HandleTopLeft:
		return "top-left"
	case HandleTopRight:
		return "top-right"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleBottomRight:
		return "bottom-right"
	case HandleLeft:
		return "left"
	case HandleRight:
		return "right"
	case HandleTop:
		return "top"
	case HandleBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Cursor returns the Tk cursor name shown while the pointer is over h.
func (h Handle) Cursor() string {
	switch h {
	case HandleTopLeft:
		return "top_left_corner"
	case HandleTopRight:
		return "top_right_corner"
	case HandleBottomLeft:
		return "bottom_left_corner"
	case HandleBottomRight:
		return "bottom_right_corner"
	case HandleLeft:
		return "left_side"
	case HandleRight:
		return "right_side"
	case HandleTop:
		return "top_side"
	case HandleBottom:
		return "bottom_side"
	default:
		return "fleur"
	}
}

// AllHandles lists every zone, move zone included.
var AllHandles = []Handle{
	HandleNone,
	HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight,
	HandleLeft, HandleRight, HandleTop, HandleBottom,
}

// InteractionState enumerates what the pointer is doing with the region.
type InteractionState int

const (
	StateIdle InteractionState = iota
	StateHovering
	StateDragging
	StateResizing
)

func (s InteractionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHovering:
		return "hovering"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// ModifierMode governs pointer transparency and border emphasis.
type ModifierMode int

const (
	ModeNormal ModifierMode = iota
	ModeModifierHeld
	ModeModifierHeldHovering
	ModeActivelyModifying
)

func (m ModifierMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeModifierHeld:
		return "modifier-held"
	case ModeModifierHeldHovering:
		return "modifier-held-hovering"
	case ModeActivelyModifying:
		return "actively-modifying"
	default:
		return "unknown"
	}
}

// ProjectMode derives the modifier mode from the three input flags.
func ProjectMode(modifierHeld, hovering, modifying bool) ModifierMode {
	switch {
	case !modifierHeld:
		return ModeNormal
	case modifying:
		return ModeActivelyModifying
	case hovering:
		return ModeModifierHeldHovering
	default:
		return ModeModifierHeld
	}
}

// Viewport supplies the layout size of the render surface and its position
// on screen.
type Viewport interface {
	Size() (width, height float64)
	Origin() (x, y float64)
}

// Listener receives region notifications.
type Listener interface {
	OnRegionReset()
}

// Snapshot is a consistent read of everything a view needs to draw the region.
type Snapshot struct {
	Rect               Rect
	State              InteractionState
	Handle             Handle
	Mode               ModifierMode
	Cursor             string
	PointerTransparent bool
	Emphasized         bool
	ResetVisible       bool
}
