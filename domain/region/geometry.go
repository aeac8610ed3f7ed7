package region

import "math"

// HitTest classifies (x, y) against r. Every point maps to exactly one zone:
// corners win over edges, and when the rectangle is narrower than twice the
// threshold the nearer edge wins. HandleNone is the move zone.
func HitTest(r Rect, x, y, threshold float64) Handle {
	dl, dr := x-r.Left, r.Right()-x
	dt, db := y-r.Top, r.Bottom()-y
	nearL, nearR := dl < threshold, dr < threshold
	if nearL && nearR {
		nearL = dl <= dr
		nearR = !nearL
	}
	nearT, nearB := dt < threshold, db < threshold
	if nearT && nearB {
		nearT = dt <= db
		nearB = !nearT
	}
	switch {
	case nearT && nearL:
		return HandleTopLeft
	case nearT && nearR:
		return HandleTopRight
	case nearB && nearL:
		return HandleBottomLeft
	case nearB && nearR:
		return HandleBottomRight
	case nearL:
		return HandleLeft
	case nearR:
		return HandleRight
	case nearT:
		return HandleTop
	case nearB:
		return HandleBottom
	default:
		return HandleNone
	}
}

// Centered returns a w×h rectangle centered in a vw×vh viewport, with the size
// fitted to the viewport first.
func Centered(w, h, vw, vh, minSize float64) Rect {
	w = clampDim(w, minSize, vw)
	h = clampDim(h, minSize, vh)
	return Rect{Left: (vw - w) / 2, Top: (vh - h) / 2, Width: w, Height: h}
}

// Drag translates start by (dx, dy) and clamps each axis independently so the
// rectangle stays inside the viewport.
func Drag(start Rect, dx, dy, vw, vh float64) Rect {
	r := start
	r.Left = clamp(start.Left+dx, 0, vw-start.Width)
	r.Top = clamp(start.Top+dy, 0, vh-start.Height)
	return r
}

// Resize applies the pointer delta for handle h to start. The edge opposite to
// the handle stays put; sizes never drop below minSize nor exceed the viewport.
func Resize(start Rect, h Handle, dx, dy, minSize, vw, vh float64) Rect {
	r := start
	right, bottom := start.Right(), start.Bottom()
	switch h {
	case HandleRight, HandleTopRight, HandleBottomRight:
		r.Width = clampDim(start.Width+dx, minSize, vw)
	case HandleLeft, HandleTopLeft, HandleBottomLeft:
		r.Width = clampDim(start.Width-dx, minSize, vw)
		r.Left = right - r.Width
	}
	switch h {
	case HandleBottom, HandleBottomLeft, HandleBottomRight:
		r.Height = clampDim(start.Height+dy, minSize, vh)
	case HandleTop, HandleTopLeft, HandleTopRight:
		r.Height = clampDim(start.Height-dy, minSize, vh)
		r.Top = bottom - r.Height
	}
	// Left/top handles clipped at the viewport keep their anchored edge.
	if r.Left < 0 {
		r.Width += r.Left
		r.Left = 0
	}
	if r.Top < 0 {
		r.Height += r.Top
		r.Top = 0
	}
	if r.Left+r.Width > vw {
		r.Width = vw - r.Left
	}
	if r.Top+r.Height > vh {
		r.Height = vh - r.Top
	}
	return r
}

// Fit shrinks r only as far as needed to fit the viewport and then moves it
// back inside the bounds.
func Fit(r Rect, vw, vh, minSize float64) Rect {
	r.Width = clampDim(r.Width, minSize, vw)
	r.Height = clampDim(r.Height, minSize, vh)
	r.Left = clamp(r.Left, 0, vw-r.Width)
	r.Top = clamp(r.Top, 0, vh-r.Height)
	return r
}

// clampDim bounds a dimension to [minSize, limit]. A viewport smaller than
// minSize wins over the minimum.
func clampDim(v, minSize, limit float64) float64 {
	if limit < minSize {
		return math.Max(0, limit)
	}
	return math.Max(minSize, math.Min(limit, v))
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
