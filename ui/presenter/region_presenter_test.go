package presenter

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/soocke/region-capture/domain/capture"
	"github.com/soocke/region-capture/domain/region"
	"github.com/soocke/region-capture/ui/images"
)

var testBorders = [4]color.RGBA{
	region.ModeNormal:               {R: 0x64, G: 0x74, B: 0x8b, A: 0xff},
	region.ModeModifierHeld:         {R: 0x25, G: 0x63, B: 0xeb, A: 0xff},
	region.ModeModifierHeldHovering: {R: 0x10, G: 0xb9, B: 0x81, A: 0xff},
	region.ModeActivelyModifying:    {R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff},
}

type fakeSurface struct {
	w, h     int
	frame    capture.FrameSnapshot
	overlays bool
	gizmos   bool
}

func (s *fakeSurface) LatestFrame() capture.FrameSnapshot { return s.frame }
func (s *fakeSurface) ClientSize() (int, int) { return s.w, s.h }
func (s *fakeSurface) OverlaysVisible() bool { return s.overlays }
func (s *fakeSurface) GizmosEnabled() bool { return s.gizmos }

// Size and Origin let the surface double as the controller viewport.
func (s *fakeSurface) Size() (float64, float64) { return float64(s.w), float64(s.h) }
func (s *fakeSurface) Origin() (float64, float64) { return 0, 0 }

type fakeRegionView struct {
	frames  int
	last    image.Image
	cursors []string
	reset   []bool
}

func (v *fakeRegionView) ShowViewport(img image.Image) { v.frames++; v.last = img }
func (v *fakeRegionView) SetCursor(name string) { v.cursors = append(v.cursors, name) }
func (v *fakeRegionView) SetResetVisible(b bool) { v.reset = append(v.reset, b) }

func (v *fakeRegionView) cursor() string {
	if len(v.cursors) == 0 {
		return ""
	}
	return v.cursors[len(v.cursors)-1]
}

func newRegionHarness() (*RegionPresenter, *region.Controller, *fakeSurface, *fakeRegionView) {
	surface := &fakeSurface{w: 800, h: 600, overlays: true, gizmos: true}
	ctrl := region.NewController(surface, region.Options{}, discardLogger)
	view := &fakeRegionView{}
	p := NewRegionPresenter(ctrl, surface, view, images.NewOverlayStyle(testBorders), []string{"Shift_L", "Shift_R"}, discardLogger)
	ctrl.SetListener(p)
	return p, ctrl, surface, view
}

func TestRegionPresenter_DragWithModifier(t *testing.T) {
	p, ctrl, _, view := newRegionHarness()
	p.KeyPress("Shift_L")
	p.Enter(300, 300)
	if view.cursor() != "fleur" {
		t.Fatalf("expected move cursor got %q", view.cursor())
	}
	if !p.ButtonPress(300, 300) {
		t.Fatalf("press inside region with modifier not consumed")
	}
	p.Motion(350, 320)
	if !p.ButtonRelease(350, 320) {
		t.Fatalf("release after drag not consumed")
	}
	r := ctrl.CurrentRegion()
	if r.Left != 194 || r.Top != 64 {
		t.Fatalf("unexpected region after drag %+v", r)
	}
	if len(view.reset) == 0 || !view.reset[len(view.reset)-1] {
		t.Fatalf("reset affordance not shown after moving region")
	}
}

func TestRegionPresenter_NoModifierPassesThrough(t *testing.T) {
	p, ctrl, _, view := newRegionHarness()
	p.Enter(300, 300)
	if p.ButtonPress(300, 300) {
		t.Fatalf("press without modifier consumed")
	}
	if view.cursor() != "" {
		t.Fatalf("cursor set without modifier: %q", view.cursor())
	}
	if ctrl.IsModifying() {
		t.Fatalf("controller modifying without modifier")
	}
}

func TestRegionPresenter_IgnoresOtherKeys(t *testing.T) {
	p, ctrl, _, _ := newRegionHarness()
	p.KeyPress("Control_L")
	if ctrl.ModifierHeld() {
		t.Fatalf("non-modifier key treated as modifier")
	}
	p.KeyRelease("Control_L")
}

func TestRegionPresenter_BothShiftKeys(t *testing.T) {
	p, ctrl, _, _ := newRegionHarness()
	p.KeyPress("Shift_L")
	p.KeyPress("Shift_R")
	p.KeyRelease("Shift_L")
	if !ctrl.ModifierHeld() {
		t.Fatalf("modifier released while Shift_R still down")
	}
	p.KeyRelease("Shift_R")
	if ctrl.ModifierHeld() {
		t.Fatalf("modifier still held after both keys released")
	}
}

func TestRegionPresenter_FocusLostReleasesDrag(t *testing.T) {
	p, ctrl, _, _ := newRegionHarness()
	p.KeyPress("Shift_L")
	p.Enter(300, 300)
	p.ButtonPress(300, 300)
	p.FocusLost()
	if ctrl.ModifierHeld() || ctrl.IsModifying() {
		t.Fatalf("focus loss did not release interaction")
	}
}

func TestRegionPresenter_TickRendersOverlay(t *testing.T) {
	p, _, surface, view := newRegionHarness()
	frame := image.NewRGBA(image.Rect(0, 0, 1600, 1200))
	surface.frame = capture.FrameSnapshot{Image: frame, Sequence: 1}

	p.Tick()
	if view.frames != 1 {
		t.Fatalf("expected one frame got %d", view.frames)
	}
	img := view.last.(*image.RGBA)
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Fatalf("viewport image %v", b)
	}
	want := testBorders[region.ModeNormal]
	if got := img.RGBAAt(400, 44); got != want {
		t.Fatalf("top border pixel %+v want %+v", got, want)
	}

	p.Tick()
	if view.frames != 1 {
		t.Fatalf("redrew without changes")
	}
	surface.frame.Sequence = 2
	p.Tick()
	if view.frames != 2 {
		t.Fatalf("new frame not drawn")
	}
}

func TestRegionPresenter_HiddenOverlaysSkipBorder(t *testing.T) {
	p, _, surface, view := newRegionHarness()
	surface.overlays = false
	p.Tick()
	img := view.last.(*image.RGBA)
	if got := img.RGBAAt(400, 44); got != (color.RGBA{}) {
		t.Fatalf("border drawn while overlays hidden: %+v", got)
	}
}

func TestRegionPresenter_ViewportResizeRecenters(t *testing.T) {
	p, ctrl, surface, _ := newRegionHarness()
	p.Tick()
	surface.w, surface.h = 1000, 800
	p.Tick()
	r := ctrl.CurrentRegion()
	if r.Left != 244 || r.Top != 144 {
		t.Fatalf("region not re-centered after resize: %+v", r)
	}
}

func TestRegionPresenter_ResetNotifies(t *testing.T) {
	p, ctrl, _, view := newRegionHarness()
	p.SetSize(200, 100)
	p.Tick()
	frames := view.frames
	p.Reset()
	p.Tick()
	if ctrl.CurrentRegion() != ctrl.DefaultRegion() {
		t.Fatalf("reset did not restore default")
	}
	if view.frames != frames+1 {
		t.Fatalf("reset did not trigger redraw")
	}
}

type fakeModeSource struct{ m region.ModifierMode }

func (f *fakeModeSource) Mode() region.ModifierMode { return f.m }

type fakeModeView struct{ got []region.ModifierMode }

func (v *fakeModeView) SetMode(m region.ModifierMode) { v.got = append(v.got, m) }

func TestModePresenter_ReflectsChangesOnly(t *testing.T) {
	src := &fakeModeSource{}
	view := &fakeModeView{}
	p := NewModePresenter(src, view)
	now := time.Now()
	p.Tick(now)
	p.Tick(now)
	src.m = region.ModeModifierHeld
	p.Tick(now)
	if len(view.got) != 2 || view.got[0] != region.ModeNormal || view.got[1] != region.ModeModifierHeld {
		t.Fatalf("unexpected mode updates %v", view.got)
	}
}

type fakeStatsSource struct{ s capture.CaptureStats }

func (f *fakeStatsSource) Stats() capture.CaptureStats { return f.s }

type fakeStatsView struct {
	calls    int
	captures uint64
}

func (v *fakeStatsView) SetStats(c, f uint64, avg time.Duration) { v.calls++; v.captures = c }

func TestStatsPresenter_Throttles(t *testing.T) {
	src := &fakeStatsSource{s: capture.CaptureStats{Captures: 3}}
	view := &fakeStatsView{}
	p := NewStatsPresenter(src, view)
	t0 := time.Unix(1000, 0)
	p.Tick(t0)
	p.Tick(t0.Add(100 * time.Millisecond))
	p.Tick(t0.Add(600 * time.Millisecond))
	if view.calls != 2 || view.captures != 3 {
		t.Fatalf("unexpected stats updates calls=%d captures=%d", view.calls, view.captures)
	}
}

func TestLoop_TickSchedules(t *testing.T) {
	scheduled := 0
	var l *Loop
	l.Tick()
	l = NewLoop(nil, nil, nil, nil, func() { scheduled++ })
	l.Tick()
	if scheduled != 1 {
		t.Fatalf("schedule not invoked")
	}
}
