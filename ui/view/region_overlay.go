package view

import (
	"image"

	"github.com/soocke/region-capture/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// RegionInput receives overlay input in label-local pixels.
type RegionInput interface {
	KeyPress(keysym string)
	KeyRelease(keysym string)
	FocusLost()
	Enter(x, y int)
	Leave()
	Motion(x, y int)
	ButtonPress(x, y int) bool
	ButtonRelease(x, y int) bool
}

// RegionOverlay displays the viewport image with the region drawn on it and
// forwards pointer and key events.
type RegionOverlay interface {
	ShowViewport(img image.Image)
	SetCursor(name string)
	Bind(in RegionInput)
}

type regionOverlay struct {
	label  *LabelWidget
	photo  *Img
	cursor string
}

// NewRegionOverlay creates the viewport label inside parent at row. The label
// has no border or padding, so event coordinates equal image pixels.
func NewRegionOverlay(parent *FrameWidget, row int) RegionOverlay {
	photo := NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 320, 200)))))
	label := Label(Image(photo), Borderwidth(0), Padx(0), Pady(0))
	Grid(label, In(parent), Row(row), Column(0), Sticky("nw"))
	return &regionOverlay{label: label, photo: photo}
}

func (v *regionOverlay) ShowViewport(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.photo))
}

// SetCursor sets the Tk cursor over the viewport; "" restores the default.
func (v *regionOverlay) SetCursor(name string) {
	if v == nil || v.label == nil || name == v.cursor {
		return
	}
	v.cursor = name
	v.label.Configure(Cursor(name))
}

// Bind routes label pointer events and application key events to in.
func (v *regionOverlay) Bind(in RegionInput) {
	if v == nil || v.label == nil || in == nil {
		return
	}
	Bind(v.label, "<Enter>", Command(func(e *Event) { in.Enter(e.X, e.Y) }))
	Bind(v.label, "<Leave>", Command(func() { in.Leave() }))
	Bind(v.label, "<Motion>", Command(func(e *Event) { in.Motion(e.X, e.Y) }))
	Bind(v.label, "<ButtonPress-1>", Command(func(e *Event) { in.ButtonPress(e.X, e.Y) }))
	Bind(v.label, "<ButtonRelease-1>", Command(func(e *Event) { in.ButtonRelease(e.X, e.Y) }))
	Bind(App, "<KeyPress>", Command(func(e *Event) { in.KeyPress(e.Keysym) }))
	Bind(App, "<KeyRelease>", Command(func(e *Event) { in.KeyRelease(e.Keysym) }))
	Bind(App, "<FocusOut>", Command(func() { in.FocusLost() }))
}
