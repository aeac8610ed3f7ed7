package view

import (
	"image"

	"github.com/soocke/region-capture/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CapturePreview shows a thumbnail of the last capture.
type CapturePreview interface {
	Show(pngBytes []byte)
	Reset()
}

const (
	maxThumbW = 320
	maxThumbH = 240
)

type capturePreview struct {
	label *LabelWidget
	photo *Img // current Tk photo, deleted before replacement
}

// NewCapturePreview creates the preview label inside parent at row.
func NewCapturePreview(parent *FrameWidget, row int) CapturePreview {
	photo := NewPhoto(Data(placeholderPNG()))
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return &capturePreview{label: label, photo: photo}
}

func placeholderPNG() []byte {
	return images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 200, 120)))
}

// Show decodes the capture and displays it scaled to the thumbnail size.
func (v *capturePreview) Show(pngBytes []byte) {
	if v == nil || v.label == nil || len(pngBytes) == 0 {
		return
	}
	img, err := images.DecodePNG(pngBytes)
	if err != nil {
		return
	}
	thumb := pngBytes
	if b := img.Bounds(); b.Dx() > maxThumbW || b.Dy() > maxThumbH {
		thumb = images.EncodePNG(images.ScaleToFit(img, maxThumbW, maxThumbH))
	}
	v.replace(thumb)
}

func (v *capturePreview) Reset() {
	if v == nil || v.label == nil {
		return
	}
	v.replace(placeholderPNG())
}

func (v *capturePreview) replace(pngBytes []byte) {
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.photo))
}
