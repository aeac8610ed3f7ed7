package capture

import (
	"bytes"
	"image/color"
	"math/rand"
	"testing"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestCompositePixel_HalfAlphaOverWhite(t *testing.T) {
	r, g, b := CompositePixel(200, 100, 50, 128, white)
	if r != 227 || g != 177 || b != 152 {
		t.Fatalf("expected (227,177,152) got (%d,%d,%d)", r, g, b)
	}
}

func TestCompositePixel_Extremes(t *testing.T) {
	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	if r, g, b := CompositePixel(200, 100, 50, 0, bg); r != 10 || g != 20 || b != 30 {
		t.Fatalf("alpha 0 should yield background, got (%d,%d,%d)", r, g, b)
	}
	if r, g, b := CompositePixel(200, 100, 50, 255, bg); r != 200 || g != 100 || b != 50 {
		t.Fatalf("alpha 255 should yield source, got (%d,%d,%d)", r, g, b)
	}
}

func TestComposite_OutputLayout(t *testing.T) {
	src := []byte{
		255, 0, 0, 255, 0, 0, 0, 0,
		200, 100, 50, 128, 0, 0, 255, 255,
	}
	out, err := Composite(src, 2, 2, white)
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	want := []byte{255, 0, 0, 255, 255, 255, 227, 177, 152, 0, 0, 255}
	if !bytes.Equal(out, want) {
		t.Fatalf("unexpected output %v", out)
	}
}

func TestComposite_ParallelMatchesSerial(t *testing.T) {
	const w, h = 300, 300
	src := make([]byte, w*h*4)
	rand.New(rand.NewSource(7)).Read(src)
	bg := color.RGBA{R: 30, G: 60, B: 90, A: 255}

	got, err := Composite(src, w, h, bg)
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	want := make([]byte, w*h*3)
	compositeRows(src, want, w, 0, h, bg)
	if !bytes.Equal(got, want) {
		t.Fatalf("parallel composite differs from serial")
	}
}

func TestComposite_RejectsShortBuffer(t *testing.T) {
	if _, err := Composite(make([]byte, 10), 2, 2, white); err == nil {
		t.Fatalf("expected error for short buffer")
	}
	if _, err := Composite(nil, 0, 2, white); err == nil {
		t.Fatalf("expected error for zero width")
	}
}
