package images

import (
	"image"
	"image/color"
	"math"

	"github.com/soocke/region-capture/domain/region"
	"golang.org/x/image/draw"
)

// OverlayStyle controls how the region is drawn over the viewport image.
type OverlayStyle struct {
	Border      [4]color.RGBA // indexed by region.ModifierMode
	Shade       color.RGBA    // drawn over everything outside the region
	Handle      color.RGBA
	Thickness   int
	Emphasized  int // border thickness while hovering or modifying
	HandleSize  int
	ShowHandles bool
}

// NewOverlayStyle returns the stock overlay geometry with the given border
// color per modifier mode.
func NewOverlayStyle(borders [4]color.RGBA) OverlayStyle {
	return OverlayStyle{
		Border:      borders,
		Shade:       color.RGBA{A: 0x60},
		Handle:      color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Thickness:   1,
		Emphasized:  3,
		HandleSize:  7,
		ShowHandles: true,
	}
}

// RenderOverlay draws the region described by snap onto dst in place.
// dst is the viewport image in layout pixels.
func RenderOverlay(dst *image.RGBA, snap region.Snapshot, style OverlayStyle) {
	if dst == nil {
		return
	}
	b := dst.Bounds()
	r := PixelRect(snap.Rect).Add(b.Min).Intersect(b)
	if r.Empty() {
		return
	}
	if style.Shade.A > 0 {
		shade := image.NewUniform(style.Shade)
		for _, part := range outside(b, r) {
			draw.Draw(dst, part, shade, image.Point{}, draw.Over)
		}
	}
	mode := snap.Mode
	if mode < 0 || int(mode) >= len(style.Border) {
		mode = region.ModeNormal
	}
	t := style.Thickness
	if snap.Emphasized && style.Emphasized > t {
		t = style.Emphasized
	}
	strokeRect(dst, r, max(t, 1), style.Border[mode])
	if style.ShowHandles && snap.Mode != region.ModeNormal && style.HandleSize > 0 {
		for _, p := range handlePoints(r) {
			hs := style.HandleSize / 2
			box := image.Rect(p.X-hs, p.Y-hs, p.X+hs+1, p.Y+hs+1).Intersect(b)
			draw.Draw(dst, box, image.NewUniform(style.Handle), image.Point{}, draw.Src)
			strokeRect(dst, box, 1, style.Border[mode])
		}
	}
}

// PixelRect rounds a layout-space region to whole pixels.
func PixelRect(r region.Rect) image.Rectangle {
	x0 := int(math.Round(r.Left))
	y0 := int(math.Round(r.Top))
	return image.Rect(x0, y0, x0+int(math.Round(r.Width)), y0+int(math.Round(r.Height)))
}

func outside(b, r image.Rectangle) []image.Rectangle {
	return []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, r.Min.Y),
		image.Rect(b.Min.X, r.Max.Y, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, r.Min.Y, r.Min.X, r.Max.Y),
		image.Rect(r.Max.X, r.Min.Y, b.Max.X, r.Max.Y),
	}
}

func strokeRect(dst *image.RGBA, r image.Rectangle, t int, c color.RGBA) {
	u := image.NewUniform(c)
	t = min(t, r.Dx(), r.Dy())
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
		image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y),
		image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, edge, u, image.Point{}, draw.Src)
	}
}

func handlePoints(r image.Rectangle) []image.Point {
	cx, cy := (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2
	x1, y1 := r.Max.X-1, r.Max.Y-1
	return []image.Point{
		{r.Min.X, r.Min.Y}, {x1, r.Min.Y}, {r.Min.X, y1}, {x1, y1},
		{r.Min.X, cy}, {x1, cy}, {cx, r.Min.Y}, {cx, y1},
	}
}
